package commands

import (
	"fmt"
	"os"

	"utcatalog-backend/lib/scrapers/utcatalog"
	"utcatalog-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchPage    *int
	searchAll     *bool
	searchFaculty *int
)

func init() {
	searchPage = searchCmd.Flags().Int("page", 1, "The result page to fetch.")
	searchAll = searchCmd.Flags().Bool("all", false, "Walk every result page instead of one.")
	searchFaculty = searchCmd.Flags().Int("faculty", 0, "Restrict results to a faculty id (1-26).")
	rootCmd.AddCommand(searchCmd)
}

func renderItems(items []utcatalog.SearchResultItem) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Code", "Common Code", "Title", "Lecturer", "Semesters", "Periods"})

	for _, item := range items {
		t.AppendRow(table.Row{
			item.Code,
			string(item.CommonCode),
			item.Title,
			item.Lecturer,
			formatSemesters(item.Semesters),
			formatPeriods(item.Periods),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

var searchCmd = &cobra.Command{
	Use:   "search [keyword] [--page <n>] [--all] [--faculty <id>]",
	Short: "Searches the catalogue and prints the matching courses.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := openClient(cmd.Context())
		defer cleanup()

		params := utcatalog.SearchParams{
			Faculty: utcatalog.Faculty(*searchFaculty),
		}
		if len(args) > 0 {
			params.Keyword = args[0]
		}

		if *searchAll {
			items, err := client.SearchAll(cmd.Context(), params)
			if err != nil {
				serviceutil.Fatal("failed to search catalogue", err)
			}
			renderItems(items)
			fmt.Printf("%d courses\n", len(items))
			return
		}

		result, err := client.Search(cmd.Context(), params, *searchPage)
		if err != nil {
			serviceutil.Fatal("failed to search catalogue", err)
		}
		renderItems(result.Items)
		fmt.Printf("page %d/%d, courses %d-%d of %d\n",
			result.CurrentPage, result.TotalPages,
			result.FirstIndex, result.LastIndex, result.TotalCount)
	},
}

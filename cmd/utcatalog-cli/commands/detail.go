package commands

import (
	"fmt"
	"os"
	"strconv"

	"utcatalog-backend/lib/scrapers/utcatalog"
	"utcatalog-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var detailYear *int

func init() {
	detailYear = detailCmd.Flags().Int("year", 0, "The academic year, defaults to the current one.")
	rootCmd.AddCommand(detailCmd)
}

var detailCmd = &cobra.Command{
	Use:   "detail <timetable code> [--year <yyyy>]",
	Short: "Fetches and prints the full record of one course.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := openClient(cmd.Context())
		defer cleanup()

		year := *detailYear
		if year == 0 {
			year = utcatalog.CurrentFiscalYear()
		}

		detail, err := client.Detail(cmd.Context(), args[0], year)
		if err != nil {
			serviceutil.Fatal("failed to fetch course detail", err)
		}

		credits := "?"
		if detail.Credits != utcatalog.CreditsUnknown {
			credits = strconv.Itoa(detail.Credits)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"Code", detail.Code},
			{"Common Code", string(detail.CommonCode)},
			{"Year", detail.Year},
			{"Title", detail.Title},
			{"Lecturer", detail.Lecturer},
			{"Faculty", detail.Faculty.String()},
			{"Semesters", formatSemesters(detail.Semesters)},
			{"Periods", formatPeriods(detail.Periods)},
			{"Credits", credits},
			{"Language", detail.Language},
			{"Other Faculty", detail.OtherFacultyEligible},
			{"Practical Experience", detail.PracticalExperience},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()

		sections := []struct {
			name string
			body string
		}{
			{"Aim", detail.Aim},
			{"Schedule", detail.Schedule},
			{"Methods", detail.Methods},
			{"Evaluation", detail.Evaluation},
			{"Textbook", detail.Textbook},
			{"Reference", detail.Reference},
			{"Notes", detail.Notes},
		}
		for _, s := range sections {
			if s.body == "" {
				continue
			}
			fmt.Printf("\n# %s\n%s\n", s.name, s.body)
		}
		for _, link := range detail.Links {
			fmt.Printf("\n[%s] %s\n", link.Name, link.Href)
		}
	},
}

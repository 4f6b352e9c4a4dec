package commands

import (
	"log/slog"
	"time"

	"utcatalog-backend/lib/coursestore"
	"utcatalog-backend/lib/scrapers/utcatalog"
	"utcatalog-backend/lib/serviceutil"
	"utcatalog-backend/lib/sqliteutil"

	"github.com/spf13/cobra"
)

var (
	dumpDb      *string
	dumpYear    *int
	dumpKeyword *string
	dumpFaculty *int
)

func init() {
	dumpDb = dumpCmd.Flags().String("db", "courses.db", "The database to write course records to.")
	dumpYear = dumpCmd.Flags().Int("year", 0, "The academic year, defaults to the current one.")
	dumpKeyword = dumpCmd.Flags().String("q", "", "Restrict the dump to a search keyword.")
	dumpFaculty = dumpCmd.Flags().Int("faculty", 0, "Restrict the dump to a faculty id (1-26).")
	rootCmd.AddCommand(dumpCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump [--db <path/to/courses.db>] [--year <yyyy>] [--q <keyword>] [--faculty <id>]",
	Short: "Fetches every matching course record and writes it to a database.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := openClient(cmd.Context())
		defer cleanup()

		year := *dumpYear
		if year == 0 {
			year = utcatalog.CurrentFiscalYear()
		}
		params := utcatalog.SearchParams{
			Keyword: *dumpKeyword,
			Faculty: utcatalog.Faculty(*dumpFaculty),
		}

		out, err := sqliteutil.OpenDB(coursestore.Schema, *dumpDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()
		store := coursestore.NewStore(out)

		slog.Info("dumping catalogue", "year", year, "db", *dumpDb)
		t1 := time.Now()
		details, err := client.DetailAll(cmd.Context(), params, year)
		if err != nil {
			serviceutil.Fatal("failed to fetch course records", err)
		}
		t2 := time.Now()

		err = store.PutAll(cmd.Context(), details)
		if err != nil {
			serviceutil.Fatal("failed to write course records", err)
		}

		slog.Info("dumped catalogue",
			"courses", len(details),
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}

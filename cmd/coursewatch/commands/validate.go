package commands

import (
	"coursewatch/lib/sqliteutil"
	"coursewatch/services/coursecheck"
	"coursewatch/services/coursecheck/db"
	"coursewatch/services/validation"

	"github.com/spf13/cobra"
)

var validateDatabase *string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Runs the validation rules over an existing database without scraping.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *validateDatabase)
		if err != nil {
			fatal("failed to open database", err)
		}
		defer database.Close()

		store := coursecheck.NewStore(database)
		report, err := validation.NewService(store).Run(cmd.Context())
		if err != nil {
			fatal("validation failed", err)
		}
		logReport(report)
	},
}

func init() {
	validateDatabase = validateCmd.Flags().String("db", "coursewatch.db", "Path to the course database.")
	rootCmd.AddCommand(validateCmd)
}

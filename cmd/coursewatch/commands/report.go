package commands

import (
	"os"

	"coursewatch/lib/sqliteutil"
	"coursewatch/services/coursecheck"
	"coursewatch/services/coursecheck/db"
	"coursewatch/services/validation"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var reportDatabase *string
var reportAll *bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints the validation report for an existing database as tables.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *reportDatabase)
		if err != nil {
			fatal("failed to open database", err)
		}
		defer database.Close()

		store := coursecheck.NewStore(database)
		report, err := validation.NewService(store).Run(cmd.Context())
		if err != nil {
			fatal("validation failed", err)
		}

		renderSummary(report)
		renderIssues(report)
	},
}

func init() {
	reportDatabase = reportCmd.Flags().String("db", "coursewatch.db", "Path to the course database.")
	reportAll = reportCmd.Flags().Bool("all", false, "Include MEDIUM and LOW issues in the issue table.")
	rootCmd.AddCommand(reportCmd)
}

func renderSummary(report validation.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Summary")
	t.AppendHeader(table.Row{"Metric", "Value"})

	for viewport, count := range report.Summary.RecordCounts {
		t.AppendRow(table.Row{"records (" + viewport + ")", count})
	}
	t.AppendRow(table.Row{"total issues", report.Summary.TotalIssues})
	for _, sev := range validation.SeverityOrder {
		if n := report.Summary.BySeverity[sev]; n > 0 {
			t.AppendRow(table.Row{string(sev), n})
		}
	}
	t.Render()
}

func renderIssues(report validation.Report) {
	severities := []validation.Severity{validation.SeverityCritical, validation.SeverityHigh}
	if *reportAll {
		severities = validation.SeverityOrder
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Issues")
	t.AppendHeader(table.Row{"Severity", "Type", "Course", "Viewport", "Detail"})

	rows := 0
	for _, sev := range severities {
		for _, issue := range report.IssuesBySeverity(sev) {
			t.AppendRow(table.Row{
				string(issue.Severity),
				issue.Type,
				issue.CourseName,
				issue.Viewport,
				issue.Message,
			})
			rows++
		}
	}
	if rows == 0 {
		return
	}
	t.Render()
}

package commands

import (
	"log/slog"
	"os"
	"time"

	"coursewatch/lib/configutil"
	"coursewatch/lib/sqliteutil"
	"coursewatch/lib/telemetry"
	"coursewatch/services/coursecheck"
	"coursewatch/services/coursecheck/db"
	"coursewatch/services/validation"

	"github.com/spf13/cobra"
)

var crawlConfigPath *string
var crawlDatabase *string

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Runs the full pipeline: preflight, both viewport scrape passes, then validation.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx)

		cfg, err := configutil.ReadConfig[coursecheck.Config](*crawlConfigPath)
		if err != nil && !os.IsNotExist(err) {
			fatal("failed to read config", err)
		}
		cfg = cfg.WithDefaults()
		if *crawlDatabase != "" {
			cfg.Database = *crawlDatabase
		}

		tasks, err := coursecheck.LoadTaskList(cfg.TaskList)
		if err != nil {
			fatal("cannot load task list", err)
		}
		if len(tasks) == 0 {
			slog.Warn("task list contains no scrape tasks", "path", cfg.TaskList)
			return
		}

		database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
		if err != nil {
			fatal("failed to open database", err)
		}
		defer database.Close()
		store := coursecheck.NewStore(database)

		tasks = coursecheck.NewPreflight().Filter(ctx, tasks)
		slog.Info("preflight complete", "reachable_tasks", len(tasks))

		started := time.Now()
		coursecheck.NewOrchestrator(cfg, store).Run(ctx, tasks)
		slog.Info("scrape complete", "seconds", int(time.Since(started).Seconds()))

		report, err := validation.NewService(store).Run(ctx)
		if err != nil {
			fatal("validation failed", err)
		}
		logReport(report)
	},
}

func init() {
	crawlConfigPath = crawlCmd.Flags().String("config", "coursewatch.json5", "Path to the config file.")
	crawlDatabase = crawlCmd.Flags().String("db", "", "Override the database path from the config.")
	rootCmd.AddCommand(crawlCmd)
}

func logReport(report validation.Report) {
	slog.Info("validation complete", "issues", report.Summary.TotalIssues)
	for _, sev := range validation.SeverityOrder {
		if n := report.Summary.BySeverity[sev]; n > 0 {
			slog.Warn("issues found", "severity", string(sev), "count", n)
		}
	}
}

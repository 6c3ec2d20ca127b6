package cmd

import (
	"fmt"
	"log/slog"

	"github.com/mtanaka-dev/sales-analytics/pkg/config"
	"github.com/mtanaka-dev/sales-analytics/pkg/db"
	"github.com/mtanaka-dev/sales-analytics/pkg/pathutil"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display recent analysis runs",
	Long: `Display run history recorded by the analyze command.

Shows:
- Recent runs with record and revenue counts
- Total number of runs
- Last run timestamp

Example:
  sales-report history
  sales-report history --limit 20`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to display")
}

func runHistory(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate([]string{"sales", "outputDir"}); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		InputPath: cfg.Sales.InputPath,
		OutputDir: cfg.Sales.OutputDir,
		DBPath:    cfg.Sales.DBPath,
	})

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	runHistory := db.NewRunHistory(conn)

	runs, err := runHistory.ListRuns(historyLimit)
	exitOnError(err, "failed to list runs")

	stats, err := runHistory.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Run History ===")
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
	}
	for _, run := range runs {
		fmt.Printf("%s  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"), run.InputFile)
		fmt.Printf("  parsed=%d invalid=%d analyzed=%d revenue=%s matched=%d\n",
			run.Parsed, run.Invalid, run.Valid,
			run.TotalRevenue.StringFixed(2), run.EnrichedMatched,
		)
	}

	fmt.Println("\n=== Totals ===")
	fmt.Printf("Total runs:          %d\n", stats.TotalRuns)
	fmt.Printf("Total records read:  %d\n", stats.TotalRecordsRead)
	fmt.Printf("Total invalid:       %d\n", stats.TotalInvalid)
	if stats.LastRun.Valid {
		fmt.Printf("Last run:            %s\n", stats.LastRun.String)
	} else {
		fmt.Printf("Last run:            (never)\n")
	}
	fmt.Println()

	slog.Info("History displayed successfully")
}

package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mtanaka-dev/sales-analytics/pkg/analytics"
	"github.com/mtanaka-dev/sales-analytics/pkg/catalog"
	"github.com/mtanaka-dev/sales-analytics/pkg/config"
	"github.com/mtanaka-dev/sales-analytics/pkg/db"
	"github.com/mtanaka-dev/sales-analytics/pkg/pathutil"
	"github.com/mtanaka-dev/sales-analytics/pkg/report"
	"github.com/mtanaka-dev/sales-analytics/pkg/sales"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	inputPath      string
	filterRegion   string
	minAmountStr   string
	maxAmountStr   string
	interactive    bool
	skipEnrichment bool
	dryRun         bool
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the sales analytics pipeline",
	Long: `Analyze a pipe-delimited sales transaction file.

This command:
1. Reads and parses the sales data file
2. Validates records and applies optional region/amount filters
3. Computes revenue, regional, product, customer and daily aggregates
4. Enriches transactions from the product catalog API
5. Writes the enriched data file and the text report
6. Records run history in SQLite

Example:
  sales-report analyze --input data/sales_data.txt
  sales-report analyze --region North --min-amount 20000 --dry-run
  sales-report analyze --interactive`,
	Run: runAnalyze,
}

func init() {
	// Flags
	analyzeCmd.Flags().StringVar(&inputPath, "input", "", "Sales data file (default from SALES_INPUT_PATH)")
	analyzeCmd.Flags().StringVar(&filterRegion, "region", "", "Only include transactions from this region")
	analyzeCmd.Flags().StringVar(&minAmountStr, "min-amount", "", "Only include transactions with amount >= this value")
	analyzeCmd.Flags().StringVar(&maxAmountStr, "max-amount", "", "Only include transactions with amount <= this value")
	analyzeCmd.Flags().BoolVar(&interactive, "interactive", false, "Prompt for filters on the console")
	analyzeCmd.Flags().BoolVar(&skipEnrichment, "skip-enrichment", false, "Skip the catalog API call")
	analyzeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report to stdout, write nothing")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate(
		[]string{"sales", "inputPath"},
		[]string{"sales", "outputDir"},
		[]string{"catalog", "apiUrl"},
	); err != nil {
		exitOnError(err, "invalid configuration")
	}

	if inputPath == "" {
		inputPath = cfg.Sales.InputPath
	}

	pathResolver := pathutil.New(pathutil.Config{
		InputPath: inputPath,
		OutputDir: cfg.Sales.OutputDir,
		DBPath:    cfg.Sales.DBPath,
	})

	settings, err := report.LoadSettings(cfg.Sales.SettingsPath)
	exitOnError(err, "failed to load report settings")

	slog.Info("Starting analysis", "input", inputPath, "dry_run", dryRun)

	// Read sales data. A missing file degrades to an empty record set so
	// the pipeline still produces a zero report.
	lines, err := sales.ReadSalesFile(inputPath)
	if err != nil {
		slog.Warn("Sales file not readable, continuing with empty data", "path", inputPath, "error", err)
		lines = nil
	}
	slog.Info("Read sales data", "lines", len(lines))

	// Parse
	parsed := sales.ParseLines(lines)
	slog.Info("Parsed records", "parsed", len(parsed.Transactions), "dropped", len(parsed.Dropped))
	for _, d := range parsed.Dropped {
		slog.Debug("Dropped line", "line", d.Line, "reason", string(d.Reason))
	}

	// Resolve filter, interactively if requested
	filter, err := buildFilter(parsed.Transactions)
	exitOnError(err, "invalid filter")

	// Validate and filter
	valid, invalidCount, summary := sales.ValidateAndFilter(parsed.Transactions, filter)
	slog.Info("Validated records",
		"valid", len(valid),
		"invalid", invalidCount,
		"total_input", summary.TotalInput,
	)

	totalRevenue := analytics.TotalRevenue(valid)
	slog.Info("Computed aggregates",
		"total_revenue", totalRevenue.StringFixed(2),
		"regions", len(analytics.RegionSales(valid)),
	)

	// Enrich from the product catalog. Any failure degrades to an empty
	// catalog: every transaction stays, unmatched.
	index := map[int64]catalog.Product{}
	if skipEnrichment {
		slog.Info("Skipping catalog enrichment")
	} else {
		client := catalog.NewClient(catalog.ClientConfig{
			BaseURL: cfg.Catalog.APIURL,
			Timeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second,
		})
		products, err := client.FetchProducts()
		if err != nil {
			slog.Warn("Catalog fetch failed, continuing unenriched", "error", err)
		} else {
			index = catalog.BuildIndex(products)
			slog.Info("Fetched catalog", "products", len(products))
		}
	}

	enriched := catalog.Enrich(valid, index)
	matched := catalog.MatchedCount(enriched)
	successRate := 0.0
	if len(enriched) > 0 {
		successRate = float64(matched) / float64(len(enriched)) * 100
	}
	slog.Info("Enriched transactions",
		"matched", matched,
		"total", len(enriched),
		"success_rate", fmt.Sprintf("%.1f%%", successRate),
	)

	// Render outputs
	generator := report.NewGenerator(settings)
	data := report.Data{
		Valid:       valid,
		Enriched:    enriched,
		GeneratedAt: time.Now(),
	}

	if dryRun {
		fmt.Println("[DRY RUN] Report preview:")
		fmt.Println(generator.Render(data))
		return
	}

	enrichedPath := pathResolver.GetEnrichedPath()
	err = report.WriteEnrichedFile(enrichedPath, enriched)
	exitOnError(err, "failed to write enriched data")
	slog.Info("Saved enriched data", "path", enrichedPath)

	reportPath := pathResolver.GetReportPath()
	err = generator.Write(reportPath, data)
	exitOnError(err, "failed to write report")
	slog.Info("Generated report", "path", reportPath)

	// Record run history
	conn, err := db.Open(pathResolver.GetDatabasePath())
	exitOnError(err, "failed to open run history database")
	defer conn.Close()

	runHistory := db.NewRunHistory(conn)
	err = runHistory.RecordRun(db.RunRecord{
		RunID:           uuid.NewString(),
		InputFile:       inputPath,
		LinesRead:       len(lines),
		Parsed:          len(parsed.Transactions),
		Invalid:         invalidCount,
		Valid:           len(valid),
		TotalRevenue:    totalRevenue,
		EnrichedMatched: matched,
		ReportFile:      reportPath,
		StartedAt:       startedAt,
	})
	if err != nil {
		slog.Error("Failed to record run history", "error", err)
	}

	fmt.Println("\n=== Analysis Complete ===")
	fmt.Printf("Records read:      %d\n", len(lines))
	fmt.Printf("Parsed:            %d\n", len(parsed.Transactions))
	fmt.Printf("Invalid:           %d\n", invalidCount)
	fmt.Printf("Analyzed:          %d\n", len(valid))
	fmt.Printf("Total revenue:     %s%s\n", settings.CurrencySymbol, totalRevenue.StringFixed(2))
	fmt.Printf("Enriched:          %d/%d (%.1f%%)\n", matched, len(enriched), successRate)
	fmt.Printf("Report:            %s\n", reportPath)
	fmt.Printf("Enriched data:     %s\n", enrichedPath)
	fmt.Println()

	slog.Info("Analysis completed", "elapsed", time.Since(startedAt).String())
}

// buildFilter resolves the record filter from flags, or from console
// prompts in interactive mode. Empty prompt answers mean "no filter".
func buildFilter(txns []sales.Transaction) (sales.Filter, error) {
	if interactive {
		return promptFilter(txns)
	}

	filter := sales.Filter{Region: filterRegion}

	if minAmountStr != "" {
		min, err := decimal.NewFromString(minAmountStr)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid --min-amount %q: %w", minAmountStr, err)
		}
		filter.MinAmount = &min
	}
	if maxAmountStr != "" {
		max, err := decimal.NewFromString(maxAmountStr)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid --max-amount %q: %w", maxAmountStr, err)
		}
		filter.MaxAmount = &max
	}

	return filter, nil
}

// promptFilter shows the available filter options and reads the filter
// from stdin, mirroring the original interactive console flow.
func promptFilter(txns []sales.Transaction) (sales.Filter, error) {
	opts := sales.FilterOptions(txns)

	fmt.Println("\nFilter Options Available:")
	fmt.Printf("Regions: %s\n", strings.Join(opts.Regions, ", "))
	fmt.Printf("Amount Range: %s - %s\n", opts.MinAmount.StringFixed(0), opts.MaxAmount.StringFixed(0))

	reader := bufio.NewReader(os.Stdin)

	answer := promptLine(reader, "\nDo you want to filter data? (y/n): ")
	if strings.ToLower(answer) != "y" {
		return sales.Filter{}, nil
	}

	var filter sales.Filter
	filter.Region = promptLine(reader, "Enter region (or press Enter to skip): ")

	if s := promptLine(reader, "Enter minimum amount (or press Enter to skip): "); s != "" {
		min, err := decimal.NewFromString(s)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid minimum amount %q: %w", s, err)
		}
		filter.MinAmount = &min
	}
	if s := promptLine(reader, "Enter maximum amount (or press Enter to skip): "); s != "" {
		max, err := decimal.NewFromString(s)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid maximum amount %q: %w", s, err)
		}
		filter.MaxAmount = &max
	}

	return filter, nil
}

func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

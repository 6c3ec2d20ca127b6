package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mtanaka-dev/sales-analytics/pkg/analytics"
	"github.com/mtanaka-dev/sales-analytics/pkg/sales"
	"github.com/shopspring/decimal"
)

const lineWidth = 50

// Data carries everything the report renders.
type Data struct {
	Valid       []sales.Transaction
	Enriched    []sales.Enriched
	GeneratedAt time.Time
}

// Generator renders the fixed-width text report.
type Generator struct {
	settings Settings
}

// NewGenerator creates a report generator with the given settings.
func NewGenerator(settings Settings) *Generator {
	return &Generator{settings: settings}
}

// Write renders the report and writes it to path.
func (g *Generator) Write(path string, data Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(g.Render(data)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Render returns the full report text.
func (g *Generator) Render(data Data) string {
	var b strings.Builder

	g.writeHeader(&b, data)
	g.writeOverallSummary(&b, data.Valid)
	g.writeRegionPerformance(&b, data.Valid)
	g.writeTopProducts(&b, data.Valid)
	g.writeTopCustomers(&b, data.Valid)
	g.writeDailyTrend(&b, data.Valid)
	g.writeProductPerformance(&b, data.Valid)
	g.writeEnrichmentSummary(&b, data.Enriched)

	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, data Data) {
	rule := strings.Repeat("=", lineWidth)
	fmt.Fprintf(b, "%s\n", rule)
	fmt.Fprintf(b, "SALES ANALYTICS REPORT\n")
	fmt.Fprintf(b, "Generated: %s\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "Records Processed: %d\n", len(data.Valid))
	fmt.Fprintf(b, "%s\n\n", rule)
}

func (g *Generator) writeOverallSummary(b *strings.Builder, txns []sales.Transaction) {
	total := analytics.TotalRevenue(txns)
	avg := total
	if len(txns) > 0 {
		avg = total.DivRound(decimal.NewFromInt(int64(len(txns))), 2)
	}

	startDate, endDate := dateRange(txns)

	g.sectionHeader(b, "OVERALL SUMMARY")
	fmt.Fprintf(b, "Total Revenue: %s%s\n", g.settings.CurrencySymbol, total.StringFixed(2))
	fmt.Fprintf(b, "Total Transactions: %d\n", len(txns))
	fmt.Fprintf(b, "Average Order Value: %s%s\n", g.settings.CurrencySymbol, avg.StringFixed(2))
	fmt.Fprintf(b, "Date Range: %s to %s\n\n", startDate, endDate)
}

func (g *Generator) writeRegionPerformance(b *strings.Builder, txns []sales.Transaction) {
	g.sectionHeader(b, "REGION-WISE PERFORMANCE")
	fmt.Fprintf(b, "%-10s%-18s%-12s%s\n", "Region", "Sales", "% of Total", "Transactions")

	for _, rs := range analytics.RegionSales(txns) {
		fmt.Fprintf(b, "%-10s%-18s%-12s%d\n",
			rs.Region,
			g.settings.CurrencySymbol+rs.TotalSales.StringFixed(2),
			rs.Percentage.StringFixed(2)+"%",
			rs.TransactionCount,
		)
	}
	b.WriteString("\n")
}

func (g *Generator) writeTopProducts(b *strings.Builder, txns []sales.Transaction) {
	g.sectionHeader(b, fmt.Sprintf("TOP %d PRODUCTS", g.settings.TopProducts))
	fmt.Fprintf(b, "%-5s%-25s%-10s%s\n", "Rank", "Product", "Qty", "Revenue")

	for i, p := range analytics.TopProducts(txns, g.settings.TopProducts) {
		fmt.Fprintf(b, "%-5d%-25s%-10d%s%s\n",
			i+1, p.Name, p.Quantity,
			g.settings.CurrencySymbol, p.Revenue.StringFixed(2),
		)
	}
	b.WriteString("\n")
}

func (g *Generator) writeTopCustomers(b *strings.Builder, txns []sales.Transaction) {
	g.sectionHeader(b, fmt.Sprintf("TOP %d CUSTOMERS", g.settings.TopCustomers))
	fmt.Fprintf(b, "%-5s%-15s%-18s%s\n", "Rank", "Customer", "Spent", "Orders")

	customers := analytics.CustomerAnalysis(txns)
	if len(customers) > g.settings.TopCustomers {
		customers = customers[:g.settings.TopCustomers]
	}
	for i, c := range customers {
		fmt.Fprintf(b, "%-5d%-15s%-18s%d\n",
			i+1, c.CustomerID,
			g.settings.CurrencySymbol+c.TotalSpent.StringFixed(2),
			c.PurchaseCount,
		)
	}
	b.WriteString("\n")
}

func (g *Generator) writeDailyTrend(b *strings.Builder, txns []sales.Transaction) {
	g.sectionHeader(b, "DAILY SALES TREND")
	fmt.Fprintf(b, "%-12s%-18s%-10s%s\n", "Date", "Revenue", "Txns", "Customers")

	for _, d := range analytics.DailyTrend(txns) {
		fmt.Fprintf(b, "%-12s%-18s%-10d%d\n",
			d.Date,
			g.settings.CurrencySymbol+d.Revenue.StringFixed(2),
			d.TransactionCount,
			d.UniqueCustomers,
		)
	}
	b.WriteString("\n")
}

func (g *Generator) writeProductPerformance(b *strings.Builder, txns []sales.Transaction) {
	g.sectionHeader(b, "PRODUCT PERFORMANCE ANALYSIS")

	peak := analytics.FindPeakDay(txns)
	if peak.Date != "" {
		fmt.Fprintf(b, "Best Selling Day: %s | Revenue: %s%s\n\n",
			peak.Date, g.settings.CurrencySymbol, peak.Revenue.StringFixed(2))
	} else {
		fmt.Fprintf(b, "Best Selling Day: N/A\n\n")
	}

	low := analytics.LowPerformers(txns, g.settings.LowQuantityThreshold)
	if len(low) > 0 {
		fmt.Fprintf(b, "Low Performing Products:\n")
		for _, p := range low {
			fmt.Fprintf(b, "- %s (Qty: %d, Revenue: %s%s)\n",
				p.Name, p.Quantity, g.settings.CurrencySymbol, p.Revenue.StringFixed(2))
		}
	} else {
		fmt.Fprintf(b, "No low performing products.\n")
	}
	b.WriteString("\n")
}

func (g *Generator) writeEnrichmentSummary(b *strings.Builder, enriched []sales.Enriched) {
	matched := 0
	unmatchedNames := make(map[string]bool)
	for _, e := range enriched {
		if e.Matched {
			matched++
		} else {
			unmatchedNames[e.ProductName] = true
		}
	}

	rate := 0.0
	if len(enriched) > 0 {
		rate = float64(matched) / float64(len(enriched)) * 100
	}

	g.sectionHeader(b, "API ENRICHMENT SUMMARY")
	fmt.Fprintf(b, "Total Products Enriched: %d\n", matched)
	fmt.Fprintf(b, "Success Rate: %.2f%%\n", rate)

	if len(unmatchedNames) > 0 {
		fmt.Fprintf(b, "Products Not Enriched:\n")
		names := make([]string, 0, len(unmatchedNames))
		for name := range unmatchedNames {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(b, "- %s\n", name)
		}
	}
}

func (g *Generator) sectionHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", lineWidth))
}

func dateRange(txns []sales.Transaction) (string, string) {
	if len(txns) == 0 {
		return "N/A", "N/A"
	}
	start, end := txns[0].Date, txns[0].Date
	for _, t := range txns[1:] {
		if t.Date < start {
			start = t.Date
		}
		if t.Date > end {
			end = t.Date
		}
	}
	return start, end
}

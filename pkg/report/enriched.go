package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mtanaka-dev/sales-analytics/pkg/sales"
)

// enrichedHeader is the fixed header row of the enriched data file.
const enrichedHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"

// WriteEnrichedFile writes the enriched transactions as a pipe-delimited
// file, one row per transaction. Absent catalog values serialize as
// empty strings.
func WriteEnrichedFile(path string, enriched []sales.Enriched) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var b strings.Builder
	b.WriteString(enrichedHeader)
	b.WriteString("\n")

	for _, e := range enriched {
		b.WriteString(formatEnrichedRow(e))
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write enriched file: %w", err)
	}

	return nil
}

func formatEnrichedRow(e sales.Enriched) string {
	rating := ""
	if e.Rating != nil {
		rating = strconv.FormatFloat(*e.Rating, 'f', -1, 64)
	}

	fields := []string{
		e.ID,
		e.Date,
		e.ProductID,
		e.ProductName,
		strconv.FormatInt(e.Quantity, 10),
		e.UnitPrice.String(),
		e.CustomerID,
		e.Region,
		e.Category,
		e.Brand,
		rating,
		strconv.FormatBool(e.Matched),
	}
	return strings.Join(fields, "|")
}

package sales

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// fieldCount is the exact number of pipe-delimited fields per line:
// transaction id, date, product id, product name, quantity, unit price,
// customer id, region.
const fieldCount = 8

// DropReason explains why the parser rejected a line.
type DropReason string

const (
	DropFieldCount  DropReason = "field_count"
	DropBadQuantity DropReason = "bad_quantity"
	DropBadPrice    DropReason = "bad_price"
)

// DroppedLine records one rejected input line. Line numbers are
// 1-based positions within the data lines (header excluded).
type DroppedLine struct {
	Line   int
	Reason DropReason
}

// ParseResult is the outcome of parsing a batch of raw lines.
type ParseResult struct {
	Transactions []Transaction
	Dropped      []DroppedLine
}

// ParseLines converts raw pipe-delimited lines into transaction records.
// Lines with the wrong field count or non-numeric quantity/price are
// dropped with a reason; output order matches input order. Dropping is
// lenient: no error is surfaced to the caller.
func ParseLines(lines []string) ParseResult {
	result := ParseResult{
		Transactions: make([]Transaction, 0, len(lines)),
	}

	for i, line := range lines {
		txn, reason, ok := parseLine(line)
		if !ok {
			result.Dropped = append(result.Dropped, DroppedLine{
				Line:   i + 1,
				Reason: reason,
			})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	return result
}

// parseLine parses a single line. Fields are trimmed; commas are
// stripped from the product name and from thousand-separated numbers.
func parseLine(line string) (Transaction, DropReason, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != fieldCount {
		return Transaction{}, DropFieldCount, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	quantity, err := strconv.ParseInt(stripCommas(parts[4]), 10, 64)
	if err != nil {
		return Transaction{}, DropBadQuantity, false
	}

	unitPrice, err := decimal.NewFromString(stripCommas(parts[5]))
	if err != nil {
		return Transaction{}, DropBadPrice, false
	}

	return Transaction{
		ID:          parts[0],
		Date:        parts[1],
		ProductID:   parts[2],
		ProductName: stripCommas(parts[3]),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CustomerID:  parts[6],
		Region:      parts[7],
	}, "", true
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

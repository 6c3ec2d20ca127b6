// Package sales provides the transaction record type and the
// read/parse/validate stages of the sales analytics pipeline.
package sales

import (
	"github.com/shopspring/decimal"
)

// Transaction represents one parsed sales transaction.
// It is constructed only by the parser; downstream stages never mutate it.
type Transaction struct {
	ID          string          // expected prefix "T"
	Date        string          // YYYY-MM-DD, no calendar validation
	ProductID   string          // expected prefix "P"
	ProductName string          // commas stripped at parse time
	Quantity    int64           // must be > 0 to be valid
	UnitPrice   decimal.Decimal // must be > 0 to be valid
	CustomerID  string          // expected prefix "C"
	Region      string          // must be non-empty to be valid
}

// Amount returns quantity × unit price. It is derived on demand and
// never stored on the record.
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

// Enriched is a Transaction plus catalog metadata. Category, Brand and
// Rating are absent (empty string / nil) when Matched is false.
type Enriched struct {
	Transaction
	Category string
	Brand    string
	Rating   *float64
	Matched  bool
}

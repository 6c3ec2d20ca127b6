package catalog

import (
	"strconv"
	"strings"

	"github.com/mtanaka-dev/sales-analytics/pkg/sales"
)

// BuildIndex builds a lookup from numeric product id to catalog entry.
func BuildIndex(products []Product) map[int64]Product {
	index := make(map[int64]Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// ProductIDNumber extracts the numeric portion of a transaction's
// product identifier, e.g. "P101" → 101. It reports false when the
// identifier contains no digits.
func ProductIDNumber(productID string) (int64, bool) {
	var digits strings.Builder
	for _, r := range productID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Enrich tags every transaction with catalog metadata when its numeric
// product id is present in the index. Unmatched transactions keep absent
// metadata but are never dropped: the output always has one entry per
// input record, in input order.
func Enrich(txns []sales.Transaction, index map[int64]Product) []sales.Enriched {
	enriched := make([]sales.Enriched, 0, len(txns))

	for _, t := range txns {
		e := sales.Enriched{Transaction: t}

		if id, ok := ProductIDNumber(t.ProductID); ok {
			if p, found := index[id]; found {
				rating := p.Rating
				e.Category = p.Category
				e.Brand = p.Brand
				e.Rating = &rating
				e.Matched = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

// MatchedCount returns how many enriched transactions carry catalog
// metadata.
func MatchedCount(enriched []sales.Enriched) int {
	count := 0
	for _, e := range enriched {
		if e.Matched {
			count++
		}
	}
	return count
}

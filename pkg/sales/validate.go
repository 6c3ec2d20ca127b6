package sales

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Filter narrows the valid record set. Zero-value fields mean "no
// constraint": empty Region skips the region match, nil bounds skip the
// amount checks.
type Filter struct {
	Region    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Summary describes one validation pass.
type Summary struct {
	TotalInput int
	Invalid    int
	FinalCount int
}

// Options is a read-only snapshot of the valid record set used to show
// filter choices before the pipeline proceeds.
type Options struct {
	Regions   []string
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
}

// IsValid reports whether the record satisfies all five validity
// predicates: T/P/C identifier prefixes, positive quantity, positive
// unit price and a non-empty region.
func IsValid(t Transaction) bool {
	if !strings.HasPrefix(t.ID, "T") {
		return false
	}
	if !strings.HasPrefix(t.ProductID, "P") {
		return false
	}
	if !strings.HasPrefix(t.CustomerID, "C") {
		return false
	}
	if t.Quantity <= 0 {
		return false
	}
	if !t.UnitPrice.IsPositive() {
		return false
	}
	if t.Region == "" {
		return false
	}
	return true
}

// FilterOptions computes the distinct regions (sorted) and the
// [min, max] amount range across all valid records. It is a diagnostic
// for interactive filter display and does not touch the data.
func FilterOptions(txns []Transaction) Options {
	var opts Options
	seen := make(map[string]bool)
	first := true

	for _, t := range txns {
		if !IsValid(t) {
			continue
		}
		if !seen[t.Region] {
			seen[t.Region] = true
			opts.Regions = append(opts.Regions, t.Region)
		}
		amount := t.Amount()
		if first {
			opts.MinAmount = amount
			opts.MaxAmount = amount
			first = false
			continue
		}
		if amount.LessThan(opts.MinAmount) {
			opts.MinAmount = amount
		}
		if amount.GreaterThan(opts.MaxAmount) {
			opts.MaxAmount = amount
		}
	}

	sort.Strings(opts.Regions)
	return opts
}

// ValidateAndFilter applies the validity predicates and then the
// optional filter to the records that passed. The invalid count depends
// only on the predicates, never on the filter parameters.
func ValidateAndFilter(txns []Transaction, filter Filter) ([]Transaction, int, Summary) {
	valid := make([]Transaction, 0, len(txns))
	invalid := 0

	for _, t := range txns {
		if !IsValid(t) {
			invalid++
			continue
		}
		if !matchesFilter(t, filter) {
			continue
		}
		valid = append(valid, t)
	}

	summary := Summary{
		TotalInput: len(txns),
		Invalid:    invalid,
		FinalCount: len(valid),
	}
	return valid, invalid, summary
}

func matchesFilter(t Transaction, filter Filter) bool {
	if filter.Region != "" && t.Region != filter.Region {
		return false
	}
	if filter.MinAmount != nil && t.Amount().LessThan(*filter.MinAmount) {
		return false
	}
	if filter.MaxAmount != nil && t.Amount().GreaterThan(*filter.MaxAmount) {
		return false
	}
	return true
}

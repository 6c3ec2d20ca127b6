// Package analytics provides pure aggregation reducers over validated
// sales transactions. Every function builds its own accumulators, holds
// no state between calls and leaves its input untouched.
package analytics

import (
	"sort"

	"github.com/mtanaka-dev/sales-analytics/pkg/sales"
	"github.com/shopspring/decimal"
)

// Default cutoffs used by the CLI when no report settings override them.
const (
	DefaultTopProducts  = 5
	DefaultLowThreshold = 10
)

var hundred = decimal.NewFromInt(100)

// RegionSummary is the per-region sales breakdown.
type RegionSummary struct {
	Region           string
	TotalSales       decimal.Decimal
	TransactionCount int
	Percentage       decimal.Decimal // share of grand total, rounded to 2 decimals
}

// ProductSummary groups transactions by product name.
type ProductSummary struct {
	Name     string
	Quantity int64
	Revenue  decimal.Decimal
}

// CustomerSummary groups transactions by customer id.
type CustomerSummary struct {
	CustomerID    string
	TotalSpent    decimal.Decimal
	PurchaseCount int
	AvgOrderValue decimal.Decimal // rounded to 2 decimals
	Products      []string        // distinct product names, first-purchase order
}

// DaySummary is one row of the daily sales trend.
type DaySummary struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay is the date with the strictly highest revenue. Date is empty
// when the input is empty or no day has positive revenue.
type PeakDay struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
}

// TotalRevenue sums quantity × unit price over all records.
func TotalRevenue(txns []sales.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount())
	}
	return total
}

// RegionSales groups records by region, ordered by total sales
// descending. Percentages are zero when the grand total is zero.
func RegionSales(txns []sales.Transaction) []RegionSummary {
	var order []string
	byRegion := make(map[string]*RegionSummary)

	for _, t := range txns {
		rs, ok := byRegion[t.Region]
		if !ok {
			rs = &RegionSummary{Region: t.Region, TotalSales: decimal.Zero}
			byRegion[t.Region] = rs
			order = append(order, t.Region)
		}
		rs.TotalSales = rs.TotalSales.Add(t.Amount())
		rs.TransactionCount++
	}

	grandTotal := TotalRevenue(txns)
	result := make([]RegionSummary, 0, len(order))
	for _, region := range order {
		rs := *byRegion[region]
		if grandTotal.IsPositive() {
			rs.Percentage = rs.TotalSales.Div(grandTotal).Mul(hundred).Round(2)
		} else {
			rs.Percentage = decimal.Zero
		}
		result = append(result, rs)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSales.GreaterThan(result[j].TotalSales)
	})
	return result
}

// TopProducts groups records by product name and returns the top n by
// summed quantity, descending. Ties keep first-encounter order.
func TopProducts(txns []sales.Transaction, n int) []ProductSummary {
	result := productGroups(txns)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Quantity > result[j].Quantity
	})
	if n >= 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// LowPerformers returns product groups with summed quantity strictly
// below threshold, ordered by quantity ascending.
func LowPerformers(txns []sales.Transaction, threshold int64) []ProductSummary {
	groups := productGroups(txns)
	result := make([]ProductSummary, 0, len(groups))
	for _, g := range groups {
		if g.Quantity < threshold {
			result = append(result, g)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Quantity < result[j].Quantity
	})
	return result
}

func productGroups(txns []sales.Transaction) []ProductSummary {
	var order []string
	byName := make(map[string]*ProductSummary)

	for _, t := range txns {
		ps, ok := byName[t.ProductName]
		if !ok {
			ps = &ProductSummary{Name: t.ProductName, Revenue: decimal.Zero}
			byName[t.ProductName] = ps
			order = append(order, t.ProductName)
		}
		ps.Quantity += t.Quantity
		ps.Revenue = ps.Revenue.Add(t.Amount())
	}

	result := make([]ProductSummary, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	return result
}

// CustomerAnalysis groups records by customer id, ordered by total
// spend descending. Average order value is rounded once here; the
// report prints it verbatim.
func CustomerAnalysis(txns []sales.Transaction) []CustomerSummary {
	var order []string
	byCustomer := make(map[string]*CustomerSummary)
	seenProducts := make(map[string]map[string]bool)

	for _, t := range txns {
		cs, ok := byCustomer[t.CustomerID]
		if !ok {
			cs = &CustomerSummary{CustomerID: t.CustomerID, TotalSpent: decimal.Zero}
			byCustomer[t.CustomerID] = cs
			seenProducts[t.CustomerID] = make(map[string]bool)
			order = append(order, t.CustomerID)
		}
		cs.TotalSpent = cs.TotalSpent.Add(t.Amount())
		cs.PurchaseCount++
		if !seenProducts[t.CustomerID][t.ProductName] {
			seenProducts[t.CustomerID][t.ProductName] = true
			cs.Products = append(cs.Products, t.ProductName)
		}
	}

	result := make([]CustomerSummary, 0, len(order))
	for _, id := range order {
		cs := *byCustomer[id]
		cs.AvgOrderValue = cs.TotalSpent.
			Div(decimal.NewFromInt(int64(cs.PurchaseCount))).
			Round(2)
		result = append(result, cs)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSpent.GreaterThan(result[j].TotalSpent)
	})
	return result
}

// DailyTrend groups records by date string, ordered by date ascending.
// Lexical order is sufficient because dates are ISO formatted.
func DailyTrend(txns []sales.Transaction) []DaySummary {
	var order []string
	byDate := make(map[string]*DaySummary)
	customers := make(map[string]map[string]bool)

	for _, t := range txns {
		ds, ok := byDate[t.Date]
		if !ok {
			ds = &DaySummary{Date: t.Date, Revenue: decimal.Zero}
			byDate[t.Date] = ds
			customers[t.Date] = make(map[string]bool)
			order = append(order, t.Date)
		}
		ds.Revenue = ds.Revenue.Add(t.Amount())
		ds.TransactionCount++
		customers[t.Date][t.CustomerID] = true
	}

	sort.Strings(order)
	result := make([]DaySummary, 0, len(order))
	for _, date := range order {
		ds := *byDate[date]
		ds.UniqueCustomers = len(customers[date])
		result = append(result, ds)
	}
	return result
}

// FindPeakDay returns the day with the strictly highest revenue from the
// daily trend. Ties keep the earlier date. When the input is empty or
// every day's revenue is zero or negative, the zero PeakDay is returned.
func FindPeakDay(txns []sales.Transaction) PeakDay {
	peak := PeakDay{Revenue: decimal.Zero}
	for _, day := range DailyTrend(txns) {
		if day.Revenue.GreaterThan(peak.Revenue) {
			peak = PeakDay{
				Date:             day.Date,
				Revenue:          day.Revenue,
				TransactionCount: day.TransactionCount,
			}
		}
	}
	return peak
}

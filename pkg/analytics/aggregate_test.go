package analytics

import (
	"reflect"
	"testing"

	"github.com/mtanaka-dev/sales-analytics/pkg/sales"
	"github.com/shopspring/decimal"
)

func txn(id, date, productID, name string, qty int64, price int64, customerID, region string) sales.Transaction {
	return sales.Transaction{
		ID:          id,
		Date:        date,
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   decimal.NewFromInt(price),
		CustomerID:  customerID,
		Region:      region,
	}
}

// sampleTxns is the two-record worked example used throughout:
// 2×45000 in the North plus 5×500 in the South.
func sampleTxns() []sales.Transaction {
	return []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"),
		txn("T002", "2024-12-01", "P102", "Mouse", 5, 500, "C002", "South"),
	}
}

func TestTotalRevenue(t *testing.T) {
	total := TotalRevenue(sampleTxns())
	if !total.Equal(decimal.NewFromInt(92500)) {
		t.Errorf("TotalRevenue() = %s, expected 92500", total)
	}
}

func TestTotalRevenue_Empty(t *testing.T) {
	if total := TotalRevenue(nil); !total.IsZero() {
		t.Errorf("TotalRevenue(nil) = %s, expected 0", total)
	}
}

func TestRegionSales(t *testing.T) {
	regions := RegionSales(sampleTxns())

	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(regions))
	}

	north := regions[0]
	if north.Region != "North" {
		t.Fatalf("Expected North first (highest sales), got %s", north.Region)
	}
	if !north.TotalSales.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("North TotalSales = %s, expected 90000", north.TotalSales)
	}
	if north.Percentage.StringFixed(2) != "97.30" {
		t.Errorf("North Percentage = %s, expected 97.30", north.Percentage)
	}

	south := regions[1]
	if south.Percentage.StringFixed(2) != "2.70" {
		t.Errorf("South Percentage = %s, expected 2.70", south.Percentage)
	}
	if south.TransactionCount != 1 {
		t.Errorf("South TransactionCount = %d, expected 1", south.TransactionCount)
	}
}

func TestRegionSales_PercentagesSumToHundred(t *testing.T) {
	txns := []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "A", 1, 100, "C001", "North"),
		txn("T002", "2024-12-01", "P102", "B", 1, 100, "C002", "South"),
		txn("T003", "2024-12-01", "P103", "C", 1, 100, "C003", "East"),
	}

	sum := decimal.Zero
	for _, rs := range RegionSales(txns) {
		sum = sum.Add(rs.Percentage)
	}

	diff := sum.Sub(decimal.NewFromInt(100)).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.05)) {
		t.Errorf("Percentages sum to %s, expected ~100", sum)
	}
}

func TestRegionSales_ZeroRevenueDoesNotPanic(t *testing.T) {
	// All amounts zero: percentage division must be guarded.
	txns := []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "A", 0, 0, "C001", "North"),
	}

	regions := RegionSales(txns)
	if len(regions) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(regions))
	}
	if !regions[0].Percentage.IsZero() {
		t.Errorf("Expected zero percentage, got %s", regions[0].Percentage)
	}

	if got := RegionSales(nil); len(got) != 0 {
		t.Errorf("Expected empty result for empty input, got %v", got)
	}
}

func TestTopProducts(t *testing.T) {
	top := TopProducts(sampleTxns(), 5)

	if len(top) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(top))
	}
	if top[0].Name != "Mouse" || top[0].Quantity != 5 {
		t.Errorf("Expected Mouse (qty 5) first, got %s (qty %d)", top[0].Name, top[0].Quantity)
	}
	if !top[0].Revenue.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("Mouse revenue = %s, expected 2500", top[0].Revenue)
	}
	if top[1].Name != "Laptop" || top[1].Quantity != 2 {
		t.Errorf("Expected Laptop (qty 2) second, got %s (qty %d)", top[1].Name, top[1].Quantity)
	}
}

func TestTopProducts_LimitAndTies(t *testing.T) {
	txns := []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "A", 3, 10, "C001", "North"),
		txn("T002", "2024-12-01", "P102", "B", 3, 10, "C001", "North"),
		txn("T003", "2024-12-01", "P103", "C", 7, 10, "C001", "North"),
	}

	top := TopProducts(txns, 2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(top))
	}
	// C wins; the A/B tie keeps first-encounter order, so A takes the
	// second slot.
	if top[0].Name != "C" || top[1].Name != "A" {
		t.Errorf("Expected [C A], got [%s %s]", top[0].Name, top[1].Name)
	}
}

func TestLowPerformers(t *testing.T) {
	txns := []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "A", 15, 10, "C001", "North"),
		txn("T002", "2024-12-01", "P102", "B", 3, 10, "C001", "North"),
		txn("T003", "2024-12-01", "P103", "C", 8, 10, "C001", "North"),
	}

	low := LowPerformers(txns, 10)
	if len(low) != 2 {
		t.Fatalf("Expected 2 low performers, got %d", len(low))
	}
	if low[0].Name != "B" || low[1].Name != "C" {
		t.Errorf("Expected ascending quantity [B C], got [%s %s]", low[0].Name, low[1].Name)
	}
}

func TestCustomerAnalysis(t *testing.T) {
	txns := []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"),
		txn("T002", "2024-12-02", "P102", "Mouse", 5, 500, "C001", "North"),
		txn("T003", "2024-12-02", "P102", "Mouse", 1, 500, "C002", "South"),
	}

	customers := CustomerAnalysis(txns)

	if len(customers) != 2 {
		t.Fatalf("Expected 2 customers, got %d", len(customers))
	}

	c1 := customers[0]
	if c1.CustomerID != "C001" {
		t.Fatalf("Expected C001 first (highest spend), got %s", c1.CustomerID)
	}
	if !c1.TotalSpent.Equal(decimal.NewFromInt(92500)) {
		t.Errorf("C001 TotalSpent = %s, expected 92500", c1.TotalSpent)
	}
	if c1.PurchaseCount != 2 {
		t.Errorf("C001 PurchaseCount = %d, expected 2", c1.PurchaseCount)
	}
	if c1.AvgOrderValue.StringFixed(2) != "46250.00" {
		t.Errorf("C001 AvgOrderValue = %s, expected 46250.00", c1.AvgOrderValue)
	}
	if !reflect.DeepEqual(c1.Products, []string{"Laptop", "Mouse"}) {
		t.Errorf("C001 Products = %v, expected [Laptop Mouse]", c1.Products)
	}
}

func TestDailyTrend(t *testing.T) {
	txns := []sales.Transaction{
		txn("T003", "2024-12-02", "P103", "Desk", 1, 1200, "C003", "East"),
		txn("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"),
		txn("T002", "2024-12-01", "P102", "Mouse", 5, 500, "C001", "South"),
	}

	trend := DailyTrend(txns)

	if len(trend) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(trend))
	}
	if trend[0].Date != "2024-12-01" || trend[1].Date != "2024-12-02" {
		t.Errorf("Expected ascending dates, got [%s %s]", trend[0].Date, trend[1].Date)
	}

	d1 := trend[0]
	if !d1.Revenue.Equal(decimal.NewFromInt(92500)) {
		t.Errorf("Day 1 revenue = %s, expected 92500", d1.Revenue)
	}
	if d1.TransactionCount != 2 {
		t.Errorf("Day 1 transactions = %d, expected 2", d1.TransactionCount)
	}
	if d1.UniqueCustomers != 1 {
		t.Errorf("Day 1 unique customers = %d, expected 1 (same customer twice)", d1.UniqueCustomers)
	}
}

func TestFindPeakDay(t *testing.T) {
	txns := []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"), // 90000
		txn("T002", "2024-12-02", "P102", "Mouse", 5, 500, "C002", "South"),    // 2500
	}

	peak := FindPeakDay(txns)
	if peak.Date != "2024-12-01" {
		t.Errorf("Peak date = %s, expected 2024-12-01", peak.Date)
	}
	if !peak.Revenue.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("Peak revenue = %s, expected 90000", peak.Revenue)
	}
	if peak.TransactionCount != 1 {
		t.Errorf("Peak transaction count = %d, expected 1", peak.TransactionCount)
	}
}

func TestFindPeakDay_EmptyAndZero(t *testing.T) {
	if peak := FindPeakDay(nil); peak.Date != "" {
		t.Errorf("Expected no peak day for empty input, got %s", peak.Date)
	}

	zero := []sales.Transaction{
		txn("T001", "2024-12-01", "P101", "A", 0, 0, "C001", "North"),
	}
	if peak := FindPeakDay(zero); peak.Date != "" {
		t.Errorf("Expected no peak day when all revenues are zero, got %s", peak.Date)
	}
}

func TestFindPeakDay_TieKeepsEarlierDate(t *testing.T) {
	txns := []sales.Transaction{
		txn("T002", "2024-12-02", "P102", "B", 1, 100, "C002", "South"),
		txn("T001", "2024-12-01", "P101", "A", 1, 100, "C001", "North"),
	}

	if peak := FindPeakDay(txns); peak.Date != "2024-12-01" {
		t.Errorf("Expected earlier date to win tie, got %s", peak.Date)
	}
}

func TestAggregatorsAreIdempotent(t *testing.T) {
	txns := sampleTxns()

	first := RegionSales(txns)
	second := RegionSales(txns)
	if !reflect.DeepEqual(first, second) {
		t.Error("RegionSales is not idempotent")
	}

	topFirst := TopProducts(txns, 5)
	topSecond := TopProducts(txns, 5)
	if !reflect.DeepEqual(topFirst, topSecond) {
		t.Error("TopProducts is not idempotent")
	}

	if !TotalRevenue(txns).Equal(TotalRevenue(txns)) {
		t.Error("TotalRevenue is not idempotent")
	}
}

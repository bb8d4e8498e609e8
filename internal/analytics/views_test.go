package analytics

import (
	"reflect"
	"testing"

	"github.com/salesworks/salespipe/internal/domain"
)

// scenario is the worked example used across the view tests: two laptops in
// the North at 45000 and five mice in the South at 500.
func scenario() []domain.Transaction {
	return []domain.Transaction{
		{TransactionID: "T0001", Date: "2024-01-15", ProductID: "P101", ProductName: "Laptop",
			Quantity: 1, UnitPrice: 45000, CustomerID: "C001", Region: "North"},
		{TransactionID: "T0002", Date: "2024-01-16", ProductID: "P101", ProductName: "Laptop",
			Quantity: 1, UnitPrice: 45000, CustomerID: "C002", Region: "North"},
		{TransactionID: "T0003", Date: "2024-01-16", ProductID: "P102", ProductName: "Mouse",
			Quantity: 5, UnitPrice: 500, CustomerID: "C001", Region: "South"},
	}
}

func TestTotalRevenue(t *testing.T) {
	if got := TotalRevenue(scenario()); got != 92500.00 {
		t.Errorf("TotalRevenue = %v, want 92500.00", got)
	}
	if got := TotalRevenue(nil); got != 0 {
		t.Errorf("TotalRevenue(nil) = %v, want 0", got)
	}
}

func TestRegionWiseSales(t *testing.T) {
	stats := RegionWiseSales(scenario())

	want := []RegionStat{
		{Region: "North", TotalSales: 90000.00, TransactionCount: 2, Percentage: 97.30},
		{Region: "South", TotalSales: 2500.00, TransactionCount: 1, Percentage: 2.70},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("RegionWiseSales = %+v, want %+v", stats, want)
	}
}

func TestRegionWiseSales_BlankRegionSkipped(t *testing.T) {
	txns := scenario()
	txns = append(txns, domain.Transaction{
		TransactionID: "T0004", Date: "2024-01-17", ProductID: "P103",
		ProductName: "Keyboard", Quantity: 1, UnitPrice: 2500,
		CustomerID: "C003", Region: "   ",
	})

	stats := RegionWiseSales(txns)
	if len(stats) != 2 {
		t.Fatalf("got %d regions, want 2: %+v", len(stats), stats)
	}
	// The skipped record must not contribute to the grand total either.
	if stats[0].Percentage != 97.30 {
		t.Errorf("North percentage = %v, want 97.30", stats[0].Percentage)
	}
}

func TestTopSellingProducts(t *testing.T) {
	stats := TopSellingProducts(scenario(), 5)

	want := []ProductStat{
		{ProductName: "Mouse", TotalQuantity: 5, TotalRevenue: 2500.00},
		{ProductName: "Laptop", TotalQuantity: 2, TotalRevenue: 90000.00},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("TopSellingProducts = %+v, want %+v", stats, want)
	}
}

func TestTopSellingProducts_Truncation(t *testing.T) {
	stats := TopSellingProducts(scenario(), 1)
	if len(stats) != 1 || stats[0].ProductName != "Mouse" {
		t.Errorf("TopSellingProducts(1) = %+v, want only Mouse", stats)
	}

	for i := 1; i < len(stats); i++ {
		if stats[i].TotalQuantity > stats[i-1].TotalQuantity {
			t.Errorf("quantities not non-increasing at %d", i)
		}
	}
}

func TestTopSellingProducts_TieBreak(t *testing.T) {
	txns := []domain.Transaction{
		{ProductName: "Bravo", Quantity: 3, UnitPrice: 10, Date: "2024-01-01", CustomerID: "C001", Region: "North"},
		{ProductName: "Alpha", Quantity: 3, UnitPrice: 20, Date: "2024-01-01", CustomerID: "C001", Region: "North"},
	}
	stats := TopSellingProducts(txns, 5)
	if stats[0].ProductName != "Alpha" || stats[1].ProductName != "Bravo" {
		t.Errorf("tie not broken by name ascending: %+v", stats)
	}
}

func TestLowPerformingProducts(t *testing.T) {
	stats := LowPerformingProducts(scenario(), 5)

	// Only Laptop (qty 2) is strictly below the threshold of 5.
	want := []ProductStat{
		{ProductName: "Laptop", TotalQuantity: 2, TotalRevenue: 90000.00},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("LowPerformingProducts = %+v, want %+v", stats, want)
	}

	if got := LowPerformingProducts(scenario(), 0); len(got) != 0 {
		t.Errorf("threshold 0 should match nothing, got %+v", got)
	}
}

func TestCustomerAnalysis(t *testing.T) {
	stats := CustomerAnalysis(scenario())

	want := []CustomerStat{
		{CustomerID: "C001", TotalSpent: 47500.00, PurchaseCount: 2, AvgOrderValue: 23750.00,
			ProductsBought: []string{"Laptop", "Mouse"}},
		{CustomerID: "C002", TotalSpent: 45000.00, PurchaseCount: 1, AvgOrderValue: 45000.00,
			ProductsBought: []string{"Laptop"}},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("CustomerAnalysis = %+v, want %+v", stats, want)
	}
}

func TestDailySalesTrend(t *testing.T) {
	stats := DailySalesTrend(scenario())

	want := []DailyStat{
		{Date: "2024-01-15", Revenue: 45000.00, TransactionCount: 1, UniqueCustomers: 1},
		{Date: "2024-01-16", Revenue: 47500.00, TransactionCount: 2, UniqueCustomers: 2},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("DailySalesTrend = %+v, want %+v", stats, want)
	}
}

func TestPeakSalesDay(t *testing.T) {
	peak := PeakSalesDay(scenario())
	want := PeakDay{Date: "2024-01-16", Revenue: 47500.00, TransactionCount: 2}
	if peak != want {
		t.Errorf("PeakSalesDay = %+v, want %+v", peak, want)
	}
}

func TestPeakSalesDay_TieGoesToEarliestDate(t *testing.T) {
	txns := []domain.Transaction{
		{Date: "2024-01-20", Quantity: 1, UnitPrice: 100, ProductName: "A", CustomerID: "C001", Region: "North"},
		{Date: "2024-01-10", Quantity: 1, UnitPrice: 100, ProductName: "A", CustomerID: "C001", Region: "North"},
	}
	peak := PeakSalesDay(txns)
	if peak.Date != "2024-01-10" {
		t.Errorf("peak date = %q, want 2024-01-10", peak.Date)
	}
}

func TestPeakSalesDay_Empty(t *testing.T) {
	if peak := PeakSalesDay(nil); peak != (PeakDay{}) {
		t.Errorf("PeakSalesDay(nil) = %+v, want zero value", peak)
	}
}

func TestViewsAreIdempotent(t *testing.T) {
	txns := scenario()
	first := RegionWiseSales(txns)
	second := RegionWiseSales(txns)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ: %+v vs %+v", first, second)
	}
}

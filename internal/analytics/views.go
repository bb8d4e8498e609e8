// Package analytics computes the read-only analytical views over a set of
// validated transactions. Every view is independent: each runs its own
// accumulation pass, finalizes (rounding, derived ratios) and sorts. Ties
// on a primary metric always break by the grouping key ascending so the
// ordering is deterministic.
package analytics

import (
	"sort"
	"strings"

	"github.com/salesworks/salespipe/internal/domain"
	"github.com/salesworks/salespipe/internal/money"
)

// RegionStat is one row of the region-wise view.
type RegionStat struct {
	Region           string  `json:"region"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// ProductStat is one row of the product views (top sellers, low performers).
type ProductStat struct {
	ProductName   string  `json:"product_name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// CustomerStat is one row of the customer analysis view.
type CustomerStat struct {
	CustomerID     string   `json:"customer_id"`
	TotalSpent     float64  `json:"total_spent"`
	PurchaseCount  int      `json:"purchase_count"`
	AvgOrderValue  float64  `json:"avg_order_value"`
	ProductsBought []string `json:"products_bought"`
}

// DailyStat is one row of the daily trend view.
type DailyStat struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
	UniqueCustomers  int     `json:"unique_customers"`
}

// PeakDay is the single highest-revenue date. An empty Date means there was
// no data to rank.
type PeakDay struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
}

// TotalRevenue sums Amount over all transactions, rounded on exposure.
func TotalRevenue(txns []domain.Transaction) float64 {
	total := 0.0
	for i := range txns {
		total += txns[i].Amount()
	}
	return money.Round2(total)
}

// RegionWiseSales groups by trimmed region. Percentages are shares of the
// grand total over the same set; all zero when that total is zero.
func RegionWiseSales(txns []domain.Transaction) []RegionStat {
	type acc struct {
		sales float64
		count int
	}
	accs := make(map[string]*acc)
	grandTotal := 0.0

	for i := range txns {
		region, ok := groupKey(txns[i].Region)
		if !ok {
			continue
		}
		amount := txns[i].Amount()
		grandTotal += amount
		a := accs[region]
		if a == nil {
			a = &acc{}
			accs[region] = a
		}
		a.sales += amount
		a.count++
	}

	stats := make([]RegionStat, 0, len(accs))
	for region, a := range accs {
		stats = append(stats, RegionStat{
			Region:           region,
			TotalSales:       money.Round2(a.sales),
			TransactionCount: a.count,
			Percentage:       money.Share(a.sales, grandTotal),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalSales != stats[j].TotalSales {
			return stats[i].TotalSales > stats[j].TotalSales
		}
		return stats[i].Region < stats[j].Region
	})
	return stats
}

// TopSellingProducts returns at most n products ordered by total quantity
// descending.
func TopSellingProducts(txns []domain.Transaction, n int) []ProductStat {
	stats := productStats(txns)
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalQuantity != stats[j].TotalQuantity {
			return stats[i].TotalQuantity > stats[j].TotalQuantity
		}
		return stats[i].ProductName < stats[j].ProductName
	})
	if n >= 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns products with total quantity below the
// threshold, ordered by total quantity ascending.
func LowPerformingProducts(txns []domain.Transaction, threshold int) []ProductStat {
	all := productStats(txns)
	var low []ProductStat
	for _, s := range all {
		if s.TotalQuantity < threshold {
			low = append(low, s)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].TotalQuantity != low[j].TotalQuantity {
			return low[i].TotalQuantity < low[j].TotalQuantity
		}
		return low[i].ProductName < low[j].ProductName
	})
	return low
}

// CustomerAnalysis groups by customer ID, ordered by total spent
// descending. ProductsBought is the sorted set of distinct product names.
func CustomerAnalysis(txns []domain.Transaction) []CustomerStat {
	type acc struct {
		spent    float64
		count    int
		products map[string]bool
	}
	accs := make(map[string]*acc)

	for i := range txns {
		customer, ok := groupKey(txns[i].CustomerID)
		if !ok {
			continue
		}
		a := accs[customer]
		if a == nil {
			a = &acc{products: make(map[string]bool)}
			accs[customer] = a
		}
		a.spent += txns[i].Amount()
		a.count++
		if product, ok := groupKey(txns[i].ProductName); ok {
			a.products[product] = true
		}
	}

	stats := make([]CustomerStat, 0, len(accs))
	for customer, a := range accs {
		stats = append(stats, CustomerStat{
			CustomerID:     customer,
			TotalSpent:     money.Round2(a.spent),
			PurchaseCount:  a.count,
			AvgOrderValue:  money.SafeAvg(a.spent, a.count),
			ProductsBought: sortedKeys(a.products),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalSpent != stats[j].TotalSpent {
			return stats[i].TotalSpent > stats[j].TotalSpent
		}
		return stats[i].CustomerID < stats[j].CustomerID
	})
	return stats
}

// DailySalesTrend groups by date, ordered lexicographically ascending —
// chronological for YYYY-MM-DD keys.
func DailySalesTrend(txns []domain.Transaction) []DailyStat {
	type acc struct {
		revenue   float64
		count     int
		customers map[string]bool
	}
	accs := make(map[string]*acc)

	for i := range txns {
		date, ok := groupKey(txns[i].Date)
		if !ok {
			continue
		}
		a := accs[date]
		if a == nil {
			a = &acc{customers: make(map[string]bool)}
			accs[date] = a
		}
		a.revenue += txns[i].Amount()
		a.count++
		if customer, ok := groupKey(txns[i].CustomerID); ok {
			a.customers[customer] = true
		}
	}

	stats := make([]DailyStat, 0, len(accs))
	for date, a := range accs {
		stats = append(stats, DailyStat{
			Date:             date,
			Revenue:          money.Round2(a.revenue),
			TransactionCount: a.count,
			UniqueCustomers:  len(a.customers),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}

// PeakSalesDay returns the date with the highest revenue. On equal revenue
// the earliest date wins. With no data it returns the zero PeakDay.
func PeakSalesDay(txns []domain.Transaction) PeakDay {
	type acc struct {
		revenue float64
		count   int
	}
	accs := make(map[string]*acc)

	for i := range txns {
		date, ok := groupKey(txns[i].Date)
		if !ok {
			continue
		}
		a := accs[date]
		if a == nil {
			a = &acc{}
			accs[date] = a
		}
		a.revenue += txns[i].Amount()
		a.count++
	}

	var peak PeakDay
	found := false
	for date, a := range accs {
		better := a.revenue > peak.Revenue || (a.revenue == peak.Revenue && date < peak.Date)
		if !found || better {
			peak = PeakDay{Date: date, Revenue: a.revenue, TransactionCount: a.count}
			found = true
		}
	}
	if !found {
		return PeakDay{}
	}
	peak.Revenue = money.Round2(peak.Revenue)
	return peak
}

// --- helpers ---

// productStats is the shared per-product aggregate behind the top-selling
// and low-performer views. Revenue is rounded here, on exposure.
func productStats(txns []domain.Transaction) []ProductStat {
	type acc struct {
		qty     int
		revenue float64
	}
	accs := make(map[string]*acc)

	for i := range txns {
		product, ok := groupKey(txns[i].ProductName)
		if !ok {
			continue
		}
		a := accs[product]
		if a == nil {
			a = &acc{}
			accs[product] = a
		}
		a.qty += txns[i].Quantity
		a.revenue += txns[i].Amount()
	}

	stats := make([]ProductStat, 0, len(accs))
	for product, a := range accs {
		stats = append(stats, ProductStat{
			ProductName:   product,
			TotalQuantity: a.qty,
			TotalRevenue:  money.Round2(a.revenue),
		})
	}
	return stats
}

// groupKey trims a grouping key and reports whether the record contributes
// to the view at all. A blank key skips the record for this view only.
func groupKey(raw string) (string, bool) {
	key := strings.TrimSpace(raw)
	return key, key != ""
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

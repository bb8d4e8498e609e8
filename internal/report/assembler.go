// Package report assembles the final analytics payload and renders the
// text report. Build is a pure function of the validated and enriched
// transaction sets; rendering is a separate concern.
package report

import (
	"sort"
	"time"

	"github.com/salesworks/salespipe/internal/analytics"
	"github.com/salesworks/salespipe/internal/domain"
	"github.com/salesworks/salespipe/internal/money"
)

// Options carries the view tunables.
type Options struct {
	TopProducts     int
	TopCustomers    int
	LowQtyThreshold int
}

// Report is the full structured payload behind the rendered report.
type Report struct {
	GeneratedAt      time.Time               `json:"generated_at"`
	RecordsProcessed int                     `json:"records_processed"`
	Summary          Summary                 `json:"summary"`
	Regions          []analytics.RegionStat  `json:"regions"`
	TopProducts      []analytics.ProductStat `json:"top_products"`
	TopCustomers     []CustomerRank          `json:"top_customers"`
	DailyTrend       []analytics.DailyStat   `json:"daily_trend"`
	Performance      Performance             `json:"performance"`
	Enrichment       EnrichmentSummary       `json:"enrichment"`
}

// Summary is the overall totals section.
type Summary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalTransactions int     `json:"total_transactions"`
	AvgOrderValue     float64 `json:"avg_order_value"`
	MinDate           string  `json:"min_date"`
	MaxDate           string  `json:"max_date"`
}

// CustomerRank is one row of the top-customers table.
type CustomerRank struct {
	CustomerID string  `json:"customer_id"`
	TotalSpent float64 `json:"total_spent"`
	OrderCount int     `json:"order_count"`
}

// Performance is the performance analysis block.
type Performance struct {
	PeakDay        analytics.PeakDay       `json:"peak_day"`
	LowPerformers  []analytics.ProductStat `json:"low_performers"`
	RegionAverages []RegionAverage         `json:"region_averages"`
}

// RegionAverage is the average transaction value for one region.
type RegionAverage struct {
	Region        string  `json:"region"`
	AvgTransaction float64 `json:"avg_transaction"`
}

// EnrichmentSummary accounts for the catalog join outcomes.
type EnrichmentSummary struct {
	Attempted         int      `json:"attempted"`
	Matched           int      `json:"matched"`
	SuccessRate       float64  `json:"success_rate"`
	UnmatchedProducts []string `json:"unmatched_products"`
}

// Build assembles the report payload. Every section is computed
// independently from its inputs; rates with a zero denominator are 0.
func Build(valid []domain.Transaction, enriched []domain.EnrichedTransaction, opts Options) *Report {
	minDate, maxDate := dateSpan(valid)

	totalRevenue := analytics.TotalRevenue(valid)

	return &Report{
		GeneratedAt:      time.Now(),
		RecordsProcessed: len(valid),
		Summary: Summary{
			TotalRevenue:      totalRevenue,
			TotalTransactions: len(valid),
			AvgOrderValue:     money.SafeAvg(rawTotal(valid), len(valid)),
			MinDate:           minDate,
			MaxDate:           maxDate,
		},
		Regions:      analytics.RegionWiseSales(valid),
		TopProducts:  analytics.TopSellingProducts(valid, opts.TopProducts),
		TopCustomers: topCustomers(valid, opts.TopCustomers),
		DailyTrend:   analytics.DailySalesTrend(valid),
		Performance: Performance{
			PeakDay:        analytics.PeakSalesDay(valid),
			LowPerformers:  analytics.LowPerformingProducts(valid, opts.LowQtyThreshold),
			RegionAverages: regionAverages(valid),
		},
		Enrichment: enrichmentSummary(enriched),
	}
}

func rawTotal(txns []domain.Transaction) float64 {
	total := 0.0
	for i := range txns {
		total += txns[i].Amount()
	}
	return total
}

func dateSpan(txns []domain.Transaction) (string, string) {
	minDate, maxDate := "", ""
	for i := range txns {
		d := txns[i].Date
		if d == "" {
			continue
		}
		if minDate == "" || d < minDate {
			minDate = d
		}
		if d > maxDate {
			maxDate = d
		}
	}
	return minDate, maxDate
}

// topCustomers ranks customers by total spent and truncates. It is
// intentionally independent from the full customer-analysis view.
func topCustomers(txns []domain.Transaction, n int) []CustomerRank {
	full := analytics.CustomerAnalysis(txns)
	ranks := make([]CustomerRank, 0, min(n, len(full)))
	for _, c := range full {
		if len(ranks) == n {
			break
		}
		ranks = append(ranks, CustomerRank{
			CustomerID: c.CustomerID,
			TotalSpent: c.TotalSpent,
			OrderCount: c.PurchaseCount,
		})
	}
	return ranks
}

func regionAverages(txns []domain.Transaction) []RegionAverage {
	type acc struct {
		sum   float64
		count int
	}
	accs := make(map[string]*acc)
	for i := range txns {
		region := txns[i].Region
		if region == "" {
			continue
		}
		a := accs[region]
		if a == nil {
			a = &acc{}
			accs[region] = a
		}
		a.sum += txns[i].Amount()
		a.count++
	}

	out := make([]RegionAverage, 0, len(accs))
	for region, a := range accs {
		out = append(out, RegionAverage{
			Region:        region,
			AvgTransaction: money.SafeAvg(a.sum, a.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgTransaction != out[j].AvgTransaction {
			return out[i].AvgTransaction > out[j].AvgTransaction
		}
		return out[i].Region < out[j].Region
	})
	return out
}

func enrichmentSummary(enriched []domain.EnrichedTransaction) EnrichmentSummary {
	matched := 0
	missing := make(map[string]bool)
	for i := range enriched {
		if enriched[i].APIMatch {
			matched++
			continue
		}
		if name := enriched[i].ProductName; name != "" {
			missing[name] = true
		}
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)

	rate := 0.0
	if len(enriched) > 0 {
		rate = money.Round2(float64(matched) / float64(len(enriched)) * 100)
	}

	return EnrichmentSummary{
		Attempted:         len(enriched),
		Matched:           matched,
		SuccessRate:       rate,
		UnmatchedProducts: names,
	}
}

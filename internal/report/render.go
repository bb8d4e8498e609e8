package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

const rule = "--------------------------------------------"

// Render writes the text form of the report. Only the data content is
// contractual; the layout follows the classic sales report.
func Render(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString("============================================\n")
	b.WriteString("       SALES ANALYTICS REPORT\n")
	fmt.Fprintf(&b, "     Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "     Records Processed: %s\n", fmtInt(r.RecordsProcessed))
	b.WriteString("============================================\n\n")

	b.WriteString("OVERALL SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Revenue:        %s\n", fmtMoney(r.Summary.TotalRevenue))
	fmt.Fprintf(&b, "Total Transactions:   %s\n", fmtInt(r.Summary.TotalTransactions))
	fmt.Fprintf(&b, "Average Order Value:  %s\n", fmtMoney(r.Summary.AvgOrderValue))
	fmt.Fprintf(&b, "Date Range:           %s\n\n", dateRange(r.Summary.MinDate, r.Summary.MaxDate))

	b.WriteString("REGION-WISE PERFORMANCE\n")
	b.WriteString(rule + "\n")
	if len(r.Regions) == 0 {
		b.WriteString("No region data available.\n")
	}
	for _, reg := range r.Regions {
		fmt.Fprintf(&b, "%-12s %14s  %7.2f%%  %6s txns\n",
			reg.Region, fmtMoney(reg.TotalSales), reg.Percentage, fmtInt(reg.TransactionCount))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP %d PRODUCTS\n", len(r.TopProducts))
	b.WriteString(rule + "\n")
	if len(r.TopProducts) == 0 {
		b.WriteString("No product data available.\n")
	}
	for i, p := range r.TopProducts {
		fmt.Fprintf(&b, "%d. %-24s qty %6s  revenue %14s\n",
			i+1, p.ProductName, fmtInt(p.TotalQuantity), fmtMoney(p.TotalRevenue))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP %d CUSTOMERS\n", len(r.TopCustomers))
	b.WriteString(rule + "\n")
	if len(r.TopCustomers) == 0 {
		b.WriteString("No customer data available.\n")
	}
	for i, c := range r.TopCustomers {
		fmt.Fprintf(&b, "%d. %-14s spent %14s  orders %4s\n",
			i+1, c.CustomerID, fmtMoney(c.TotalSpent), fmtInt(c.OrderCount))
	}
	b.WriteString("\n")

	b.WriteString("DAILY SALES TREND\n")
	b.WriteString(rule + "\n")
	if len(r.DailyTrend) == 0 {
		b.WriteString("No daily trend data available.\n")
	}
	for _, d := range r.DailyTrend {
		fmt.Fprintf(&b, "%-12s revenue %14s  txns %4s  customers %4s\n",
			d.Date, fmtMoney(d.Revenue), fmtInt(d.TransactionCount), fmtInt(d.UniqueCustomers))
	}
	b.WriteString("\n")

	b.WriteString("PRODUCT PERFORMANCE ANALYSIS\n")
	b.WriteString(rule + "\n")
	if r.Performance.PeakDay.Date == "" {
		b.WriteString("Best Selling Day: N/A\n")
	} else {
		fmt.Fprintf(&b, "Best Selling Day: %s | Revenue: %s | Transactions: %s\n",
			r.Performance.PeakDay.Date,
			fmtMoney(r.Performance.PeakDay.Revenue),
			fmtInt(r.Performance.PeakDay.TransactionCount))
	}
	if len(r.Performance.LowPerformers) == 0 {
		b.WriteString("Low Performing Products: None\n")
	} else {
		b.WriteString("\nLow Performing Products\n")
		for _, p := range r.Performance.LowPerformers {
			fmt.Fprintf(&b, "%-24s qty %6s  revenue %14s\n",
				p.ProductName, fmtInt(p.TotalQuantity), fmtMoney(p.TotalRevenue))
		}
	}
	b.WriteString("\nAverage Transaction Value per Region\n")
	if len(r.Performance.RegionAverages) == 0 {
		b.WriteString("No region averages available.\n")
	}
	for _, ra := range r.Performance.RegionAverages {
		fmt.Fprintf(&b, "- %s: %s\n", ra.Region, fmtMoney(ra.AvgTransaction))
	}
	b.WriteString("\n")

	b.WriteString("API ENRICHMENT SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total records checked for enrichment: %s\n", fmtInt(r.Enrichment.Attempted))
	fmt.Fprintf(&b, "Successful enrichments:               %s\n", fmtInt(r.Enrichment.Matched))
	fmt.Fprintf(&b, "Success rate:                         %.2f%%\n\n", r.Enrichment.SuccessRate)
	b.WriteString("Products that couldn't be enriched:\n")
	if len(r.Enrichment.UnmatchedProducts) == 0 {
		b.WriteString("- None\n")
	}
	for _, name := range r.Enrichment.UnmatchedProducts {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile renders the report to a file, creating parent directories.
func WriteFile(path string, r *Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := Render(f, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func fmtMoney(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func fmtInt(v int) string {
	return printer.Sprintf("%d", v)
}

func dateRange(minDate, maxDate string) string {
	if minDate == "" || maxDate == "" {
		return "N/A"
	}
	return minDate + " to " + maxDate
}

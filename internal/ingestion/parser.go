package ingestion

import (
	"strconv"
	"strings"

	"github.com/salesworks/salespipe/internal/domain"
)

// ParseTransactions turns raw pipe-delimited lines into records. A line
// must have at least 8 fields after splitting; the first 8 map positionally
// to the transaction layout. Commas inside ProductName become spaces and
// thousands separators are stripped from the numeric fields.
//
// Lines that are too short or whose numeric fields do not parse are dropped
// without contributing to the downstream invalid count. The dropped total
// is returned so callers can log it, but it is deliberately not part of the
// filter summary.
func ParseTransactions(lines []string) ([]domain.RawRecord, int) {
	var records []domain.RawRecord
	dropped := 0

	for _, line := range lines {
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 8 {
			dropped++
			continue
		}

		qty := strings.TrimSpace(strings.ReplaceAll(parts[4], ",", ""))
		price := strings.TrimSpace(strings.ReplaceAll(parts[5], ",", ""))

		if _, err := strconv.Atoi(qty); err != nil {
			dropped++
			continue
		}
		if _, err := strconv.ParseFloat(price, 64); err != nil {
			dropped++
			continue
		}

		records = append(records, domain.RawRecord{
			TransactionID: parts[0],
			Date:          parts[1],
			ProductID:     parts[2],
			ProductName:   strings.TrimSpace(strings.ReplaceAll(parts[3], ",", " ")),
			Quantity:      qty,
			UnitPrice:     price,
			CustomerID:    parts[6],
			Region:        parts[7],
		})
	}

	return records, dropped
}

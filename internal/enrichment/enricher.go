// Package enrichment joins validated transactions against the product
// catalog lookup and writes the enriched dataset side files.
package enrichment

import (
	"regexp"
	"strconv"

	"github.com/salesworks/salespipe/internal/domain"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractCatalogID returns the first contiguous run of decimal digits in a
// product identifier: "P101" -> 101, "P-5" -> 5, "P12A" -> 12. The second
// return value is false when the identifier contains no digits (or the run
// does not fit an int).
func ExtractCatalogID(productID string) (int, bool) {
	m := digitRun.FindString(productID)
	if m == "" {
		return 0, false
	}
	id, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Enrich joins every transaction against the lookup, preserving input
// order one-to-one. Unmatched transactions carry nil API fields and
// APIMatch=false; nothing here can fail per record.
func Enrich(txns []domain.Transaction, lookup map[int]domain.ProductInfo) []domain.EnrichedTransaction {
	enriched := make([]domain.EnrichedTransaction, 0, len(txns))

	for i := range txns {
		e := domain.EnrichedTransaction{Transaction: txns[i]}

		if id, ok := ExtractCatalogID(txns[i].ProductID); ok {
			if info, found := lookup[id]; found {
				e.APICategory = info.Category
				e.APIBrand = info.Brand
				e.APIRating = info.Rating
				e.APIMatch = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

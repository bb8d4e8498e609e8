package enrichment

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/salesworks/salespipe/internal/domain"
)

// Columns is the side-file header: the 8 base columns plus the API fields.
var Columns = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// WriteDelimited persists the enriched dataset as a pipe-delimited file.
// Booleans render as True/False and absent values as empty fields, matching
// the format of the input data.
func WriteDelimited(path string, enriched []domain.EnrichedTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(Columns, "|"))
	b.WriteByte('\n')

	for i := range enriched {
		b.WriteString(strings.Join(rowFields(&enriched[i]), "|"))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func rowFields(e *domain.EnrichedTransaction) []string {
	match := "False"
	if e.APIMatch {
		match = "True"
	}
	return []string{
		e.TransactionID,
		e.Date,
		e.ProductID,
		e.ProductName,
		strconv.Itoa(e.Quantity),
		formatFloat(e.UnitPrice),
		e.CustomerID,
		e.Region,
		stringOrEmpty(e.APICategory),
		stringOrEmpty(e.APIBrand),
		floatOrEmpty(e.APIRating),
		match,
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

package enrichment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/salesworks/salespipe/internal/domain"
)

const sheetName = "Enriched Sales"

// WriteXLSX exports the enriched dataset as a spreadsheet with the same
// columns as the delimited side file.
func WriteXLSX(path string, enriched []domain.EnrichedTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range enriched {
		e := &enriched[i]
		row := []interface{}{
			e.TransactionID, e.Date, e.ProductID, e.ProductName,
			e.Quantity, e.UnitPrice, e.CustomerID, e.Region,
			cellOrNil(e.APICategory), cellOrNil(e.APIBrand), ratingOrNil(e.APIRating), e.APIMatch,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func cellOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func ratingOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

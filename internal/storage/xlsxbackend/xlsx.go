package xlsxbackend

import (
	"context"
	"fmt"

	"github.com/FranksOps/serpscrape/internal/storage"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the results.
const SheetName = "Results"

// ensure xlsxBackend implements storage.Backend
var _ storage.Backend = (*xlsxBackend)(nil)

type xlsxBackend struct {
	path string
}

// New creates an Excel-backed storage.Backend. Each Save produces a fresh
// workbook at filePath.
func New(filePath string) storage.Backend {
	return &xlsxBackend{path: filePath}
}

func (b *xlsxBackend) Save(ctx context.Context, results []storage.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Title", "Link", "Snippet"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []any{r.Title, r.Link, r.Snippet}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(b.path); err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	return nil
}

package xlsxbackend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/FranksOps/serpscrape/internal/storage"
	"github.com/xuri/excelize/v2"
)

func TestXLSXBackend(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "results.xlsx")
	b := New(filePath)

	results := []storage.Result{
		{Title: "First", Link: "https://example.com/1", Snippet: "one, with comma"},
		{Title: "Second", Link: "https://example.com/2", Snippet: storage.NoSnippet},
	}

	if err := b.Save(context.Background(), results); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}

	if len(rows) != len(results)+1 {
		t.Fatalf("Expected %d rows, got %d", len(results)+1, len(rows))
	}
	if rows[0][0] != "Title" || rows[0][1] != "Link" || rows[0][2] != "Snippet" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}
	if rows[1][2] != "one, with comma" {
		t.Errorf("Expected snippet preserved, got %q", rows[1][2])
	}
	if rows[2][0] != "Second" || rows[2][2] != storage.NoSnippet {
		t.Errorf("Unexpected second row: %v", rows[2])
	}
}

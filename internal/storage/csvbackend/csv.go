package csvbackend

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/FranksOps/serpscrape/internal/storage"
)

// ensure csvBackend implements storage.Backend
var _ storage.Backend = (*csvBackend)(nil)

type csvBackend struct {
	path string
}

// headers defines the CSV column order
var headers = []string{"Title", "Link", "Snippet"}

// New creates a CSV-backed storage.Backend writing to filePath. The file is
// not touched until Save is called.
func New(filePath string) storage.Backend {
	return &csvBackend{path: filePath}
}

// Save truncates the file and writes the header followed by one row per result.
func (b *csvBackend) Save(ctx context.Context, results []storage.Result) error {
	f, err := os.OpenFile(b.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range results {
		if err := w.Write([]string{r.Title, r.Link, r.Snippet}); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", b.path, err)
	}

	return f.Close()
}

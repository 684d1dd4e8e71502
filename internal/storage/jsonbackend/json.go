package jsonbackend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/FranksOps/serpscrape/internal/storage"
)

// ensure jsonBackend implements storage.Backend
var _ storage.Backend = (*jsonBackend)(nil)

type jsonBackend struct {
	path string
}

// New creates a new NDJSON-backed storage.Backend.
func New(filePath string) storage.Backend {
	return &jsonBackend{path: filePath}
}

func (b *jsonBackend) Save(ctx context.Context, results []storage.Result) error {
	f, err := os.OpenFile(b.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.path, err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, r := range results {
		// Encode appends the newline that terminates each record
		if err := enc.Encode(r); err != nil {
			f.Close()
			return fmt.Errorf("encode result: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", b.path, err)
	}

	return f.Close()
}

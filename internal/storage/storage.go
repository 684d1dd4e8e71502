package storage

import (
	"context"
	"fmt"
)

// NoSnippet is substituted when a result has no descriptive text block.
const NoSnippet = "No snippet available"

// Result is one organic search result, in page order.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Backend defines the interface for persisting extracted search results.
// Save replaces whatever the backend previously held.
type Backend interface {
	Save(ctx context.Context, results []Result) error
}

// Export writes results through b. An empty slice performs no write and
// reports false; that is not an error.
func Export(ctx context.Context, b Backend, results []Result) (bool, error) {
	if len(results) == 0 {
		return false, nil
	}
	if err := b.Save(ctx, results); err != nil {
		return false, fmt.Errorf("export %d results: %w", len(results), err)
	}
	return true, nil
}

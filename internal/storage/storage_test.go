package storage

import (
	"context"
	"errors"
	"testing"
)

type mockBackend struct {
	calls int
	saved []Result
	err   error
}

func (m *mockBackend) Save(ctx context.Context, results []Result) error {
	m.calls++
	m.saved = results
	return m.err
}

func TestExport_Empty(t *testing.T) {
	b := &mockBackend{}

	written, err := Export(context.Background(), b, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written {
		t.Errorf("expected nothing written for empty results")
	}
	if b.calls != 0 {
		t.Errorf("expected no Save call, got %d", b.calls)
	}
}

func TestExport_NonEmpty(t *testing.T) {
	b := &mockBackend{}
	results := []Result{{Title: "A", Link: "https://a.example", Snippet: NoSnippet}}

	written, err := Export(context.Background(), b, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !written {
		t.Errorf("expected results to be written")
	}
	if b.calls != 1 || len(b.saved) != 1 {
		t.Errorf("expected one Save with 1 result, got %d calls / %d results", b.calls, len(b.saved))
	}
}

func TestExport_SaveError(t *testing.T) {
	boom := errors.New("disk full")
	b := &mockBackend{err: boom}

	written, err := Export(context.Background(), b, []Result{{Title: "A", Link: "https://a.example"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	if written {
		t.Errorf("expected written=false on error")
	}
}

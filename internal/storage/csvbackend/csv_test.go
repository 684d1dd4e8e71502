package csvbackend

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FranksOps/serpscrape/internal/storage"
)

func TestCSVBackend(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "google_results.csv")

	b := New(filePath)
	ctx := context.Background()

	results := []storage.Result{
		{Title: "OpenAI", Link: "https://openai.com/", Snippet: "OpenAI is an AI research company."},
		{Title: "ChatGPT, explained", Link: "https://example.com/chatgpt", Snippet: "Line one\nline two"},
		{Title: "OpenAI - Wikipedia", Link: "https://en.wikipedia.org/wiki/OpenAI", Snippet: storage.NoSnippet},
	}

	if err := b.Save(ctx, results); err != nil {
		t.Fatalf("Failed to save results: %v", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	if firstLine, _, _ := strings.Cut(string(data), "\n"); firstLine != "Title,Link,Snippet" {
		t.Errorf("Expected header Title,Link,Snippet, got %q", firstLine)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse output: %v", err)
	}
	if len(rows) != len(results)+1 {
		t.Fatalf("Expected %d rows, got %d", len(results)+1, len(rows))
	}

	// Embedded delimiter and newline survive quoting
	if rows[2][0] != "ChatGPT, explained" {
		t.Errorf("Expected quoted title, got %q", rows[2][0])
	}
	if rows[2][2] != "Line one\nline two" {
		t.Errorf("Expected multi-line snippet, got %q", rows[2][2])
	}
	if rows[3][2] != storage.NoSnippet {
		t.Errorf("Expected sentinel snippet, got %q", rows[3][2])
	}
}

func TestCSVBackend_Overwrite(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(filePath, []byte("stale\ncontent\nfrom\nlast\nrun\n"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	b := New(filePath)
	if err := b.Save(context.Background(), []storage.Result{{Title: "A", Link: "https://a.example", Snippet: "s"}}); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if got := string(data); got != "Title,Link,Snippet\nA,https://a.example,s\n" {
		t.Errorf("Expected file to be replaced, got %q", got)
	}
}

func TestCSVBackend_NoWriteBeforeSave(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "out.csv")
	_ = New(filePath)

	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		t.Errorf("Expected no file before Save, stat err: %v", err)
	}
}

func TestCSVBackend_ExportEmpty(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "out.csv")

	written, err := storage.Export(context.Background(), New(filePath), []storage.Result{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written {
		t.Errorf("Expected nothing written")
	}
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		t.Errorf("Expected no file for empty export, stat err: %v", err)
	}
}

func TestCSVBackend_BadPath(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "missing-dir", "out.csv")

	err := New(filePath).Save(context.Background(), []storage.Result{{Title: "A", Link: "https://a.example"}})
	if err == nil {
		t.Fatalf("Expected error for unwritable path")
	}
}

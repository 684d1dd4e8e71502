//go:build integration

package browser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FranksOps/serpscrape/internal/serp"
)

// Requires a local Chrome or Chromium. Run with: go test -tags integration ./internal/browser/
func TestSession_ExtractFromRenderedPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		// Results are injected after load to exercise the poll loop.
		fmt.Fprint(w, `<html><body><div id="search"></div>
<script>
setTimeout(function() {
  var q = new URLSearchParams(location.search).get("q");
  var html = "";
  for (var i = 1; i <= 3; i++) {
    html += '<div class="g"><a href="/r/' + i + '"><h3>' + q + ' ' + i + '</h3></a><div class="VwiC3b">snippet ' + i + '</div></div>';
  }
  document.getElementById("search").innerHTML = html;
}, 300);
</script></body></html>`)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	opts := DefaultOptions()
	opts.Headless = true
	opts.StartMaximized = false

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s, err := New(ctx, opts, logger)
	if err != nil {
		t.Skipf("browser unavailable: %v", err)
	}
	defer s.Close()

	e := serp.Extractor{
		BaseURL:    ts.URL + "/search",
		MaxResults: 3,
		Timeout:    10 * time.Second,
		Logger:     logger,
	}
	ex, err := e.Run(ctx, s, "openai")
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	if len(ex.Results) != 3 {
		t.Fatalf("expected 3 results, got %d (%+v)", len(ex.Results), ex)
	}
	for i, r := range ex.Results {
		if want := fmt.Sprintf("openai %d", i+1); r.Title != want {
			t.Errorf("result %d: expected title %q, got %q", i, want, r.Title)
		}
		if want := fmt.Sprintf("%s/r/%d", ts.URL, i+1); r.Link != want {
			t.Errorf("result %d: expected link %q, got %q", i, want, r.Link)
		}
	}

	if err := s.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	// Second close is a no-op
	if err := s.Close(); err != nil {
		t.Errorf("second close returned %v", err)
	}
}

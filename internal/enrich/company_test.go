package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const samplePage = `<!doctype html>
<html>
<head>
  <title>Acme BV - Accountancy</title>
  <meta name="description" content="Accounting services for Dutch SMEs.">
</head>
<body>
  <h1>Welkom bij Acme</h1>
  <h2>Onze diensten</h2>
  <h2>Onze diensten</h2>
  <h2></h2>
</body>
</html>`

func TestFetchExtractsSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	sum, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if sum.Title != "Acme BV - Accountancy" {
		t.Fatalf("title = %q", sum.Title)
	}
	if sum.Description != "Accounting services for Dutch SMEs." {
		t.Fatalf("description = %q", sum.Description)
	}
	if len(sum.Headings) != 2 {
		t.Fatalf("expected deduped headings, got %v", sum.Headings)
	}
	if sum.Empty() {
		t.Fatal("summary should not be empty")
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 503 page")
	}
}

func TestFetchMalformedURLIsError(t *testing.T) {
	f := New(2 * time.Second)
	// a website cell with a space in it must come back as an error, not a panic
	if _, err := f.Fetch(context.Background(), "foo bar.nl"); err == nil {
		t.Fatal("expected error for malformed website value")
	}
}

func TestFetchAddsSchemeWhenMissing(t *testing.T) {
	f := New(100 * time.Millisecond)
	// no server behind this; the point is the URL becomes absolute and the
	// request fails on connect rather than on parse
	_, err := f.Fetch(context.Background(), "127.0.0.1:1")
	if err == nil {
		t.Fatal("expected connection error")
	}
}

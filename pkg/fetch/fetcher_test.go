package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linkvault-ai/linkvault/pkg/errors"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare domain gets https", "example.com", "https://example.com", false},
		{"path preserved", "example.com/a/b?q=1", "https://example.com/a/b?q=1", false},
		{"existing scheme kept", "http://example.com", "http://example.com", false},
		{"whitespace trimmed", "  https://example.com  ", "https://example.com", false},
		{"empty", "", "", true},
		{"ftp rejected", "ftp://example.com/file", "", true},
		{"javascript rejected", "javascript:alert(1)", "", true},
		{"no host", "https:///path", "", true},
		{"hostname without dot", "localhost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if err != nil {
				cerr, ok := err.(*errors.CustomizedError)
				if !ok || cerr.GetCode() != http.StatusBadRequest {
					t.Errorf("invalid URL must map to a 400-class error, got %v", err)
				}
			}
		})
	}
}

func TestStatusErrorCarriesCode(t *testing.T) {
	err := &StatusError{Code: 503, URL: "https://example.com"}
	if err.StatusCode() != 503 {
		t.Errorf("StatusCode() = %d", err.StatusCode())
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFetchHeaderFallback(t *testing.T) {
	var sawMinimal bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// reject the full browser header set, accept the minimal one
		if strings.Contains(r.UserAgent(), "Chrome") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		sawMinimal = true
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher()
	html, err := f.attempt(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !sawMinimal {
		t.Error("fetcher never fell back to minimal headers")
	}
	if !strings.Contains(html, "ok") {
		t.Errorf("unexpected body %q", html)
	}
}

func TestAttemptStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher()
	_, err := f.attempt(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected status error from 404 response")
	}
	serr, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if serr.Code != http.StatusNotFound {
		t.Errorf("code = %d", serr.Code)
	}
}

func TestFetchClientErrorDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher()
	// 4xx is not retryable, the fetch degrades instead of failing
	html, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("client errors must degrade to empty content, got %v", err)
	}
	if html != "" {
		t.Errorf("expected empty html, got %q", html)
	}
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head><title>hello</title></head></html>"))
	}))
	defer server.Close()

	f := NewFetcher()
	html, err := f.attempt(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<title>hello</title>") {
		t.Errorf("body = %q", html)
	}
}

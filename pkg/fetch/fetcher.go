// Package fetch retrieves raw HTML for arbitrary user-saved URLs. Sites are
// hostile to bots, so requests go out with a realistic browser header set and
// fall back to a minimal one before the retry policy kicks in.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/linkvault-ai/linkvault/pkg/errors"
	"github.com/linkvault-ai/linkvault/pkg/retry"
)

const (
	RequestTimeout    = 15 * time.Second
	OperationDeadline = 20 * time.Second

	maxBodySize = 5 << 20 // 5MB of HTML is plenty for extraction
)

// StatusError carries the HTTP status of a non-2xx response so the retry
// layer can classify it.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.Code, e.URL)
}

func (e *StatusError) StatusCode() int {
	return e.Code
}

type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: RequestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
		// outbound fetches are best-effort enrichment, keep them polite
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// NormalizeURL prepends https:// when no scheme is present and rejects
// anything that is not http(s).
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.InvalidInput("fetch.NormalizeURL", "Invalid URL format", fmt.Errorf("empty url"))
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.InvalidInput("fetch.NormalizeURL", "Invalid URL format", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.InvalidInput("fetch.NormalizeURL", "Invalid URL format", fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if u.Host == "" || !strings.Contains(u.Host, ".") {
		return "", errors.InvalidInput("fetch.NormalizeURL", "Invalid URL format", fmt.Errorf("invalid host %q", u.Host))
	}

	return u.String(), nil
}

func browserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Cache-Control", "no-cache")
}

func minimalHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; LinkVault/1.0)")
	req.Header.Set("Accept", "text/html,*/*")
}

func (f *Fetcher) get(ctx context.Context, target string, applyHeaders func(*http.Request)) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	applyHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// attempt tries the full browser header set first, then once more with the
// minimal set. The fallback is part of a single attempt, not a retry cycle.
func (f *Fetcher) attempt(ctx context.Context, target string) (string, error) {
	html, err := f.get(ctx, target, browserHeaders)
	if err == nil {
		return html, nil
	}
	if ctx.Err() != nil {
		return "", err
	}
	return f.get(ctx, target, minimalHeaders)
}

// Fetch retrieves the HTML behind url. On non-timeout exhaustion it returns
// empty HTML and nil error; the caller treats empty HTML as "could not
// fetch". Only overall deadline overrun surfaces as a timeout error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, OperationDeadline)
	defer cancel()

	if err := f.limiter.Wait(ctx); err != nil {
		return "", errors.Timeout("fetch.Fetch", "Fetch deadline exceeded", err)
	}

	html, err := retry.Do(ctx, func(ctx context.Context) (string, error) {
		return f.attempt(ctx, target)
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Timeout("fetch.Fetch", "Fetch deadline exceeded", err)
		}
		// unreachable / blocked sites degrade to empty content
		return "", nil
	}

	return html, nil
}

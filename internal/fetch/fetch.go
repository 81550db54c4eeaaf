// Package fetch performs single-shot page retrieval with browser-like headers
// and provides the HTML-to-text helpers shared by the extraction strategies.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 12 * time.Second

// CacheTimeout is the request timeout used against the cached-page mirror.
const CacheTimeout = 10 * time.Second

// DefaultUserAgent mimics a desktop Chrome browser on macOS.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// RawPage is the outcome of one fetch attempt. HTML is empty whenever Err is set.
type RawPage struct {
	URL        string
	HTML       string
	StatusCode int
	Err        error
}

// OK reports whether the attempt produced a body.
func (p RawPage) OK() bool {
	return p.Err == nil && p.HTML != ""
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the browser-like defaults used for job pages.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers:   DefaultHeaders(),
	}
}

// DefaultHeaders returns the fixed Accept headers sent with every request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// Fetcher issues single GET requests. It never retries.
type Fetcher struct {
	client *http.Client
	opts   *Options
}

// NewFetcher creates a Fetcher. A nil opts uses DefaultOptions.
func NewFetcher(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Get retrieves urlStr. Failures of any kind are reported through RawPage.Err
// with an empty body.
func (f *Fetcher) Get(ctx context.Context, urlStr string) RawPage {
	page := RawPage{URL: urlStr}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		page.Err = &Error{URL: urlStr, Message: "invalid URL", Cause: err}
		return page
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		page.Err = &Error{URL: urlStr, Message: "failed to create request", Cause: err}
		return page
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		page.Err = &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
		log.Debug().Err(err).Str("url", urlStr).Msg("fetch failed")
		return page
	}
	defer func() { _ = resp.Body.Close() }()

	page.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		page.Err = &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
		log.Debug().Int("status", resp.StatusCode).Str("url", urlStr).Msg("fetch returned non-success status")
		return page
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		page.Err = &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
		return page
	}
	page.HTML = string(body)
	return page
}

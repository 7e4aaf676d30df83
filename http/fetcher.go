// Package http implements contactdir services over plain HTTP: a Fetcher
// for static municipal sites, sitemap discovery and the government given
// names dataset.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/contactdir"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request. Several municipal sites
// reject Go's default agent.
const DefaultUserAgent = "Mozilla/5.0 (compatible; contactdir/1.0)"

// maxBodySize caps how much of a page is read.
const maxBodySize = 10 << 20

var _ contactdir.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with HTTP GET requests. It does not execute
// JavaScript. Bodies are decoded to UTF-8 from the charset the server or
// the document declares, so windows-1255 pages come out readable.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the page at url as UTF-8 HTML. 404 and 410 responses
// are reported as ENOTFOUND, other non-200 responses as EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", contactdir.Errorf(contactdir.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "he,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return "", contactdir.Errorf(contactdir.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", contactdir.Errorf(contactdir.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}
	html, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(html), nil
}

// Close releases resources. http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}

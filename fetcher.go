package contactdir

import "context"

// Fetcher retrieves the HTML of a municipal web page. The default
// implementation issues plain HTTP requests; a browser-backed one renders
// script-built directories first.
type Fetcher interface {
	// Fetch returns the page HTML at url. Missing pages are reported as
	// ENOTFOUND so callers can skip retries.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases connections or browser processes.
	Close() error
}

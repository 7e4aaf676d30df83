// Package rod renders pages in headless Chrome for sites that build their
// staff directories with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/contactdir"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 20 * time.Second

// Ensure Fetcher implements contactdir.Fetcher at compile time.
var _ contactdir.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	maxPages     int64
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRecycleAfter sets how many pages the browser renders before it is
// replaced by a fresh one.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		maxPages:     DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}
	m, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, contactdir.Errorf(contactdir.EUNAVAILABLE, "starting browser: %v", err)
	}
	f.manager = m
	return f, nil
}

// Fetch navigates to the URL, waits for the load event and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", contactdir.Errorf(contactdir.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", wrapContextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", wrapContextErr(ctx, err)
	}
	html, err := serialize(page)
	if err != nil {
		return "", wrapContextErr(ctx, err)
	}
	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// serializeShadowJS returns the document HTML with open shadow roots
// inlined, so links inside web components reach the parser.
const serializeShadowJS = `() => {
  const esc = (s) => s.replace(/&/g, "&amp;").replace(/</g, "&lt;").replace(/>/g, "&gt;");
  const text = (c) => c.nodeType === Node.ELEMENT_NODE ? walk(c) : (c.nodeType === Node.TEXT_NODE ? esc(c.textContent) : "");
  const walk = (node) => {
    let inner = "";
    if (node.shadowRoot) for (const c of node.shadowRoot.childNodes) inner += text(c);
    for (const c of node.childNodes) inner += text(c);
    const tag = node.tagName.toLowerCase();
    let attrs = "";
    for (const a of node.attributes) attrs += " " + a.name + "=\"" + a.value.replace(/&/g, "&amp;").replace(/"/g, "&quot;") + "\"";
    return "<" + tag + attrs + ">" + inner + "</" + tag + ">";
  };
  return "<!DOCTYPE html>" + walk(document.documentElement);
}`

func serialize(page *rod.Page) (string, error) {
	res, err := page.Eval(serializeShadowJS)
	if err != nil {
		return page.HTML()
	}
	return res.Value.Str(), nil
}

// wrapContextErr prefers the context error so callers can tell a timeout
// from a browser failure.
func wrapContextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

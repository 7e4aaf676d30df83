package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/contactdir"
	"github.com/temoto/robotstxt"
)

var _ contactdir.SitemapService = (*SitemapService)(nil)

// maxSitemaps bounds how many sitemap documents one discovery reads.
// Municipal sitemap indexes can list hundreds of news archives.
const maxSitemaps = 20

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs lists the URLs in the sitemaps of baseURL's host, found via
// robots.txt or at /sitemap.xml. Returns an empty slice (not nil) if the
// site has no sitemap. Unreadable child sitemaps of an index are skipped.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *contactdir.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, contactdir.Errorf(contactdir.EINVALID, "invalid base URL %q", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemapURLs, err := s.findSitemapURLs(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalker{svc: s, seen: make(map[string]bool)}
	for _, sitemapURL := range sitemapURLs {
		if err := w.process(ctx, sitemapURL, true); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(w.urls))
	for _, u := range w.urls {
		if filter == nil || filter.Match(u) {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// findSitemapURLs reads Sitemap: directives from robots.txt, falling back
// to /sitemap.xml when there are none.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sitemapURL := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	exists, err := s.urlExists(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL}, nil
	}
	return nil, nil
}

func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parsing robots.txt: %w", err)
	}
	return robots.Sitemaps, nil
}

// sitemapWalker accumulates URLs across a sitemap and its children.
type sitemapWalker struct {
	svc   *SitemapService
	seen  map[string]bool
	read  int
	urls  []string
	found map[string]bool
}

// process reads one sitemap. Errors are returned only for top-level
// sitemaps and context cancellation.
func (w *sitemapWalker) process(ctx context.Context, sitemapURL string, top bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.seen[sitemapURL] || w.read >= maxSitemaps {
		return nil
	}
	w.seen[sitemapURL] = true
	w.read++

	root, err := w.svc.fetchXML(ctx, sitemapURL)
	if err != nil {
		if top || ctx.Err() != nil {
			return err
		}
		return nil
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.process(ctx, child, false); err != nil {
				return err
			}
		}
		return nil
	}

	if w.found == nil {
		w.found = make(map[string]bool)
	}
	for _, u := range locs(root, "url") {
		if !w.found[u] {
			w.found[u] = true
			w.urls = append(w.urls, u)
		}
	}
	return nil
}

// locs returns the trimmed <loc> texts of root's children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) fetchXML(ctx context.Context, targetURL string) (*etree.Element, error) {
	body, err := s.fetchURL(ctx, targetURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", targetURL)
	}
	return root, nil
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

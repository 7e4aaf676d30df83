// Package crawl walks municipal websites looking for contact directories
// and runs the extraction pipeline over the pages it finds.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/extract"
)

// Crawl defaults.
const (
	DefaultMaxDepth = 2
	DefaultMaxPages = 200

	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxSitemapSeeds caps how many sitemap URLs are queued per locality.
	maxSitemapSeeds = 50
)

// Crawler walks one locality's website. A Crawler value is cheap to copy;
// the runner gives each locality its own copy with its own Fetcher.
type Crawler struct {
	Fetcher contactdir.Fetcher
	Parser  contactdir.PageParser
	Links   contactdir.LinkSelector
	Builder *extract.Builder

	// Optional collaborators.
	Sitemaps    contactdir.SitemapService
	RateLimiter contactdir.DomainLimiter
	Store       contactdir.ContactStore
	Audit       contactdir.AuditLog
	Logger      *slog.Logger

	MaxDepth    int
	MaxPages    int
	RetryDelays []time.Duration
}

// VisitFunc is called for every page fetched during a walk. Returning an
// error stops the walk.
type VisitFunc func(ctx context.Context, link contactdir.DiscoveredLink, page *contactdir.Page) error

// Walk crawls outward from rootURL, following contact-like links on the
// same site up to MaxDepth hops. Pages that cannot be fetched are logged
// and treated as having no links. Walk returns the context error if the
// context ends first.
func (c *Crawler) Walk(ctx context.Context, rootURL string, visit VisitFunc) error {
	if Site(rootURL) == "" {
		return contactdir.Errorf(contactdir.EINVALID, "invalid root URL %q", rootURL)
	}
	logger := c.logger()
	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(contactdir.DiscoveredLink{URL: rootURL, Source: "root"})
	c.seedFromSitemap(ctx, rootURL, frontier)

	logf := func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}

	for pages := 0; pages < maxPages; pages++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		link, ok := frontier.Pop()
		if !ok {
			return nil
		}

		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, Site(link.URL)); err != nil {
				return err
			}
		}

		html, err := FetchWithRetryDelays(ctx, link.URL, c.Fetcher.Fetch, logf, delays)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("fetch failed", "url", link.URL, "err", err)
			continue
		}
		page, err := c.Parser.ParsePage(html, link.URL)
		if err != nil {
			logger.Warn("parse failed", "url", link.URL, "err", err)
			continue
		}

		if err := visit(ctx, link, page); err != nil {
			return err
		}

		if link.Depth >= maxDepth {
			continue
		}
		for _, next := range c.Links.SelectLinks(page) {
			if !SameSite(rootURL, next.URL) {
				continue
			}
			next.Depth = link.Depth + 1
			frontier.Push(next)
		}
	}
	logger.Info("page limit reached", "url", rootURL, "limit", maxPages)
	return nil
}

// seedFromSitemap queues sitemap URLs that look like contact pages.
func (c *Crawler) seedFromSitemap(ctx context.Context, rootURL string, frontier *Frontier) {
	if c.Sitemaps == nil {
		return
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, rootURL, nil)
	if err != nil {
		c.logger().Debug("sitemap unavailable", "url", rootURL, "err", err)
		return
	}
	var n int
	for _, u := range urls {
		if n >= maxSitemapSeeds {
			break
		}
		if !SameSite(rootURL, u) || !IsContactLink("", u) {
			continue
		}
		if frontier.Push(contactdir.DiscoveredLink{URL: u, Depth: 1, Source: "sitemap"}) {
			n++
		}
	}
}

// CrawlLocality walks the locality's site and extracts contacts from every
// page except the home page, which only supplies links. Contacts are
// deduplicated by identity, first seen wins. When a Store is set, the
// locality file is rewritten whenever new contacts are found, so partial
// results survive a timeout. The set found so far is returned along with
// any walk error.
func (c *Crawler) CrawlLocality(ctx context.Context, loc *contactdir.Locality) (*contactdir.ContactSet, error) {
	set := contactdir.NewContactSet()
	if loc == nil || strings.TrimSpace(loc.URL) == "" {
		return set, contactdir.Errorf(contactdir.EINVALID, "locality has no URL")
	}
	logger := c.logger().With("locality", loc.Name)
	segmenter := c.Builder.Segmenter
	seenText := make(map[string]bool)

	err := c.Walk(ctx, loc.URL, func(ctx context.Context, link contactdir.DiscoveredLink, page *contactdir.Page) error {
		if link.Source == "root" || strings.TrimSpace(page.Text) == "" {
			return nil
		}
		hash := ComputeHash(page.Text)
		if seenText[hash] {
			return nil
		}
		seenText[hash] = true

		var added int
		for _, span := range segmenter.Segment(page.Text) {
			contact := c.Builder.Build(ctx, span, loc.Name, page.URL)
			if !contact.HasContactInfo() || !set.Add(contact) {
				continue
			}
			added++
			c.audit(ctx, logger, contact, span)
		}
		logger.Debug("page extracted", "url", page.URL, "added", added)

		if added > 0 && c.Store != nil {
			if err := c.Store.SaveLocality(ctx, loc.Name, set); err != nil {
				logger.Warn("saving partial results failed", "err", err)
			}
		}
		return nil
	})
	return set, err
}

func (c *Crawler) audit(ctx context.Context, logger *slog.Logger, contact *contactdir.Contact, span string) {
	if c.Audit == nil {
		return
	}
	err := c.Audit.Record(ctx, contactdir.AuditEntry{
		Time:    time.Now().UTC(),
		Contact: contact,
		Span:    span,
	})
	if err != nil {
		logger.Warn("audit log write failed", "err", err)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/crawl"
	"github.com/fwojciec/contactdir/extract"
	"github.com/fwojciec/contactdir/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSite serves pages keyed by URL. The fetched "HTML" is the URL itself
// and the parser looks the page up again, so tests describe pages directly.
type fakeSite struct {
	mu      sync.Mutex
	pages   map[string]*contactdir.Page
	fetched []string
}

func newFakeSite(pages ...*contactdir.Page) *fakeSite {
	s := &fakeSite{pages: make(map[string]*contactdir.Page)}
	for _, p := range pages {
		s.pages[p.URL] = p
	}
	return s
}

func (s *fakeSite) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetched = append(s.fetched, url)
			if _, ok := s.pages[url]; !ok {
				return "", errors.New("HTTP 404 for " + url)
			}
			return url, nil
		},
		CloseFn: func() error { return nil },
	}
}

func (s *fakeSite) parser() *mock.PageParser {
	return &mock.PageParser{
		ParsePageFn: func(html string, _ string) (*contactdir.Page, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.pages[html], nil
		},
	}
}

func (s *fakeSite) crawler() *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher:     s.fetcher(),
		Parser:      s.parser(),
		Links:       crawl.NewKeywordSelector(),
		Builder:     extract.NewBuilder(nil, nil, nil),
		RetryDelays: []time.Duration{},
	}
}

func (s *fakeSite) fetchedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

func page(url, text string, anchors ...contactdir.Anchor) *contactdir.Page {
	return &contactdir.Page{URL: url, Text: text, Anchors: anchors}
}

func anchor(text, href string) contactdir.Anchor {
	return contactdir.Anchor{Text: text, Href: href}
}

func TestCrawler_Walk(t *testing.T) {
	t.Parallel()

	t.Run("stops expanding at max depth", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(
			page("https://www.haifa.muni.il/", "", anchor("צור קשר", "/contact")),
			page("https://www.haifa.muni.il/contact", "", anchor("אגפים", "/departments")),
			page("https://www.haifa.muni.il/departments", "", anchor("עובדים", "/staff")),
			page("https://www.haifa.muni.il/staff", ""),
		)
		c := site.crawler()
		c.MaxDepth = 2

		var depths []int
		err := c.Walk(context.Background(), "https://www.haifa.muni.il/",
			func(_ context.Context, link contactdir.DiscoveredLink, _ *contactdir.Page) error {
				depths = append(depths, link.Depth)
				return nil
			})

		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, depths)
		assert.NotContains(t, site.fetchedURLs(), "https://www.haifa.muni.il/staff")
	})

	t.Run("continues after a fetch failure", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(
			page("https://akko.muni.il/",
				"",
				anchor("טלפונים", "/broken"),
				anchor("צור קשר", "/contact"),
			),
			page("https://akko.muni.il/contact", ""),
		)

		var visited []string
		err := site.crawler().Walk(context.Background(), "https://akko.muni.il/",
			func(_ context.Context, link contactdir.DiscoveredLink, _ *contactdir.Page) error {
				visited = append(visited, link.URL)
				return nil
			})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://akko.muni.il/", "https://akko.muni.il/contact"}, visited)
		assert.Contains(t, site.fetchedURLs(), "https://akko.muni.il/broken")
	})

	t.Run("stays on the registrable domain", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(
			page("https://www.haifa.muni.il/",
				"",
				anchor("צור קשר", "https://www.gov.il/contact"),
				anchor("אנשי קשר", "https://services.haifa.muni.il/contacts"),
			),
			page("https://services.haifa.muni.il/contacts", ""),
		)

		urls, err := site.crawler().Discover(context.Background(), "https://www.haifa.muni.il/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://services.haifa.muni.il/contacts"}, urls)
		assert.NotContains(t, site.fetchedURLs(), "https://www.gov.il/contact")
	})

	t.Run("visit error stops the walk", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(
			page("https://x.muni.il/", "", anchor("צור קשר", "/contact")),
			page("https://x.muni.il/contact", ""),
		)
		boom := errors.New("boom")

		err := site.crawler().Walk(context.Background(), "https://x.muni.il/",
			func(context.Context, contactdir.DiscoveredLink, *contactdir.Page) error {
				return boom
			})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("rejects invalid root URL", func(t *testing.T) {
		t.Parallel()

		err := newFakeSite().crawler().Walk(context.Background(), "not a url",
			func(context.Context, contactdir.DiscoveredLink, *contactdir.Page) error { return nil })

		assert.Equal(t, contactdir.EINVALID, contactdir.ErrorCode(err))
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := newFakeSite().crawler().Walk(ctx, "https://x.muni.il/",
			func(context.Context, contactdir.DiscoveredLink, *contactdir.Page) error { return nil })

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("seeds contact pages from the sitemap", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(
			page("https://x.muni.il/", ""),
			page("https://x.muni.il/staff", ""),
		)
		c := site.crawler()
		c.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *contactdir.URLFilter) ([]string, error) {
				return []string{
					"https://x.muni.il/news/1",
					"https://x.muni.il/staff",
					"https://elsewhere.org/staff",
				}, nil
			},
		}

		var links []contactdir.DiscoveredLink
		err := c.Walk(context.Background(), "https://x.muni.il/",
			func(_ context.Context, link contactdir.DiscoveredLink, _ *contactdir.Page) error {
				links = append(links, link)
				return nil
			})

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, contactdir.DiscoveredLink{URL: "https://x.muni.il/staff", Depth: 1, Source: "sitemap"}, links[1])
	})

	t.Run("rate limits by site", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(
			page("https://www.x.muni.il/", "", anchor("צור קשר", "/contact")),
			page("https://www.x.muni.il/contact", ""),
		)
		c := site.crawler()
		var domains []string
		c.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				domains = append(domains, domain)
				return nil
			},
		}

		err := c.Walk(context.Background(), "https://www.x.muni.il/",
			func(context.Context, contactdir.DiscoveredLink, *contactdir.Page) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, []string{"x.muni.il", "x.muni.il"}, domains)
	})
}

func TestCrawler_Discover_returns_each_URL_once(t *testing.T) {
	t.Parallel()

	site := newFakeSite(
		page("https://city.muni.il/",
			"",
			anchor("צור קשר", "/contact"),
			anchor("צור קשר", "/contact#top"),
			anchor("מחלקות", "/departments"),
		),
		page("https://city.muni.il/contact", "", anchor("מחלקות", "/departments")),
		page("https://city.muni.il/departments", "", anchor("צור קשר", "/contact")),
	)

	urls, err := site.crawler().Discover(context.Background(), "https://city.muni.il/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://city.muni.il/contact",
		"https://city.muni.il/departments",
	}, urls)
}

func TestCrawler_CrawlLocality(t *testing.T) {
	t.Parallel()

	t.Run("extracts contacts from linked pages only", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(
			page("https://www.haifa.muni.il/",
				"מוקד עירוני\nטל: 04-8999999",
				anchor("צור קשר", "/contact"),
				anchor("טלפונים", "/phones"),
			),
			page("https://www.haifa.muni.il/contact", "מנהלת מחלקת חינוך\nטל: 04-8123456"),
			page("https://www.haifa.muni.il/phones", "מנהלת מחלקת חינוך\nטל: 04-8123456"),
		)
		c := site.crawler()

		var saved []int
		c.Store = &mock.ContactStore{
			SaveLocalityFn: func(_ context.Context, locality string, set *contactdir.ContactSet) error {
				assert.Equal(t, "חיפה", locality)
				saved = append(saved, set.Len())
				return nil
			},
		}
		var audited []contactdir.AuditEntry
		c.Audit = &mock.AuditLog{
			RecordFn: func(_ context.Context, entry contactdir.AuditEntry) error {
				audited = append(audited, entry)
				return nil
			},
		}

		set, err := c.CrawlLocality(context.Background(), &contactdir.Locality{
			Name: "חיפה",
			URL:  "https://www.haifa.muni.il/",
		})

		require.NoError(t, err)
		require.Equal(t, 1, set.Len())
		contact := set.Contacts()[0]
		assert.Equal(t, "048123456", contact.PhoneOffice)
		assert.Equal(t, "חיפה", contact.Locality)
		assert.Equal(t, "https://www.haifa.muni.il/contact", contact.SourceURL)
		assert.Equal(t, []int{1}, saved)
		require.Len(t, audited, 1)
		assert.Same(t, contact, audited[0].Contact)
		assert.Contains(t, audited[0].Span, "04-8123456")
	})

	t.Run("returns partial results with the walk error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		site := newFakeSite(
			page("https://x.muni.il/", "", anchor("צור קשר", "/contact"), anchor("צוות", "/team")),
			page("https://x.muni.il/contact", "דנה כהן\ndana.cohen@x.muni.il"),
			page("https://x.muni.il/team", ""),
		)
		c := site.crawler()
		c.Audit = &mock.AuditLog{
			RecordFn: func(context.Context, contactdir.AuditEntry) error {
				cancel()
				return nil
			},
		}

		set, err := c.CrawlLocality(ctx, &contactdir.Locality{Name: "x", URL: "https://x.muni.il/"})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, set.Len())
	})

	t.Run("locality without URL", func(t *testing.T) {
		t.Parallel()

		set, err := newFakeSite().crawler().CrawlLocality(context.Background(), &contactdir.Locality{Name: "x"})

		assert.Equal(t, contactdir.EINVALID, contactdir.ErrorCode(err))
		assert.Equal(t, 0, set.Len())
	})
}

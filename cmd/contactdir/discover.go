package main

import (
	"fmt"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/crawl"
	"github.com/fwojciec/contactdir/goquery"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	fetcher, err := deps.NewFetcher(deps.Ctx)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: --render needs Chrome or Chromium installed")
		return fmt.Errorf("failed to start fetcher: %w", err)
	}
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		Links:       crawl.NewKeywordSelector(),
		Sitemaps:    deps.Sitemaps,
		RateLimiter: crawl.NewDomainLimiter(1.0),
		Logger:      deps.Logger,
		MaxDepth:    c.Depth,
	}
	urls, err := crawler.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "No contact pages found.")
		return nil
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}

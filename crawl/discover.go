package crawl

import (
	"context"

	"github.com/fwojciec/contactdir"
)

// Discover walks rootURL and returns the URLs of the candidate contact
// pages it reached, in visit order. The home page itself is not included.
func (c *Crawler) Discover(ctx context.Context, rootURL string) ([]string, error) {
	var urls []string
	err := c.Walk(ctx, rootURL, func(_ context.Context, link contactdir.DiscoveredLink, _ *contactdir.Page) error {
		if link.Source != "root" {
			urls = append(urls, link.URL)
		}
		return nil
	})
	return urls, err
}

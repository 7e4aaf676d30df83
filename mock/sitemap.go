package mock

import (
	"context"

	"github.com/fwojciec/contactdir"
)

var _ contactdir.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of contactdir.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *contactdir.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *contactdir.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

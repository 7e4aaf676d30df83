package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contactdir"
)

// Ensure LoggingSitemapService implements contactdir.SitemapService.
var _ contactdir.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   contactdir.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next contactdir.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
// Most municipal sites publish no sitemap; that is an empty result logged
// at debug level. A sitemap that exists but cannot be read is a warning.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *contactdir.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, level(err), "sitemap discovery",
			"url", baseURL,
			"found", len(urls) > 0,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

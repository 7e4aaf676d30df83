package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/contactdir"
	"golang.org/x/time/rate"
)

var _ contactdir.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each municipal site with a token
// bucket of burst 1. Municipal sites are often served from several hosts of
// one registrable domain (www.city.muni.il, city.muni.il), so Wait accepts
// either a site or a full URL and keys the bucket by Site.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each site. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to domain is allowed or ctx ends.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := strings.ToLower(domain)
	if strings.Contains(key, "://") {
		if site := Site(key); site != "" {
			key = site
		}
	}

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

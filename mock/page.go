package mock

import (
	"context"

	"github.com/fwojciec/contactdir"
)

// Compile-time interface verification.
var (
	_ contactdir.PageParser    = (*PageParser)(nil)
	_ contactdir.LinkSelector  = (*LinkSelector)(nil)
	_ contactdir.DomainLimiter = (*DomainLimiter)(nil)
)

// PageParser is a mock implementation of contactdir.PageParser.
type PageParser struct {
	ParsePageFn func(html string, baseURL string) (*contactdir.Page, error)
}

func (p *PageParser) ParsePage(html string, baseURL string) (*contactdir.Page, error) {
	return p.ParsePageFn(html, baseURL)
}

// LinkSelector is a mock implementation of contactdir.LinkSelector.
type LinkSelector struct {
	SelectLinksFn func(page *contactdir.Page) []contactdir.DiscoveredLink
}

func (s *LinkSelector) SelectLinks(page *contactdir.Page) []contactdir.DiscoveredLink {
	return s.SelectLinksFn(page)
}

// DomainLimiter is a mock implementation of contactdir.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/contactdir"
)

var _ contactdir.LinkSelector = (*KeywordSelector)(nil)

// KeywordSelector selects anchors whose text or href mentions a contact
// keyword.
type KeywordSelector struct{}

// NewKeywordSelector creates a new KeywordSelector.
func NewKeywordSelector() *KeywordSelector {
	return &KeywordSelector{}
}

// SelectLinks resolves matching anchors against the page URL and returns
// each resulting URL once, without fragment, in page order. Non-HTTP links
// (mailto:, tel:, javascript:) are skipped.
func (s *KeywordSelector) SelectLinks(page *contactdir.Page) []contactdir.DiscoveredLink {
	if page == nil {
		return nil
	}
	base, err := url.Parse(page.URL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []contactdir.DiscoveredLink
	for _, a := range page.Anchors {
		href := strings.TrimSpace(a.Href)
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		text := strings.Join(strings.Fields(a.Text), " ")
		if !IsContactLink(text, href) {
			continue
		}
		resolved := resolveHTTP(base, href)
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true
		links = append(links, contactdir.DiscoveredLink{
			URL:    resolved,
			Text:   text,
			Source: "anchor",
		})
	}
	return links
}

// resolveHTTP resolves href against base and returns it without fragment,
// or "" if it is not an http(s) URL.
func resolveHTTP(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

package crawl

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Site returns the registrable domain of rawURL ("city.muni.il" for
// "https://www.city.muni.il/x"). IP hosts, and hosts the public suffix
// list has no answer for, are returned lower-cased as is. Returns "" for
// unparsable URLs.
func Site(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if net.ParseIP(host) != nil {
		return host
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}

// SameSite reports whether a and b share a registrable domain.
func SameSite(a, b string) bool {
	sa := Site(a)
	return sa != "" && sa == Site(b)
}

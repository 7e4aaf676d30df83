package contactdir

// DiscoveredLink is a URL found during a locality crawl.
type DiscoveredLink struct {
	URL   string
	Text  string
	Depth int
	// Source is "root", "anchor" or "sitemap".
	Source string
}

// LinkSelector picks the links on a page worth following.
type LinkSelector interface {
	// SelectLinks returns the absolute URLs of page anchors that look like
	// contact or staff directories, each URL at most once, in page order.
	SelectLinks(page *Page) []DiscoveredLink
}

package contactdir

// Page is a fetched page reduced to what extraction needs: its visible text,
// one block per line, and its anchors.
type Page struct {
	URL     string
	Text    string
	Anchors []Anchor
}

// Anchor is a hyperlink as it appears on a page.
type Anchor struct {
	Text string
	Href string
}

// PageParser turns rendered HTML into a Page.
type PageParser interface {
	// ParsePage extracts visible text and anchors. Relative hrefs are kept
	// as written; resolution against baseURL is left to link selection.
	ParsePage(html string, baseURL string) (*Page, error)
}

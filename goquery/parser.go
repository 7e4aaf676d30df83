// Package goquery turns fetched HTML into contactdir pages: the visible
// body text, laid out line by line the way a browser renders it, and the
// anchors of the document.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/contactdir"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ contactdir.PageParser = (*Parser)(nil)

// Parser implements contactdir.PageParser.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParsePage parses htmlContent fetched from baseURL. Every anchor is
// returned, hidden or not, with its href as written. Text excludes
// scripts, styles and elements hidden inline.
func (p *Parser) ParsePage(htmlContent string, baseURL string) (*contactdir.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, contactdir.Errorf(contactdir.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &contactdir.Page{URL: baseURL}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := collapse(sel.Text())
		if text == "" {
			text, _ = sel.Attr("title")
			text = collapse(text)
		}
		page.Anchors = append(page.Anchors, contactdir.Anchor{Text: text, Href: strings.TrimSpace(href)})
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	var tw textWriter
	for _, n := range root.Nodes {
		tw.walk(n)
	}
	page.Text = tw.String()
	return page, nil
}

// skipped elements never contribute text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
	atom.Head:     true,
	atom.Iframe:   true,
	atom.Select:   true,
}

// block elements start and end a line.
var block = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true,
	atom.Table: true, atom.Tr: true, atom.Ul: true, atom.Caption: true,
	atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
}

// textWriter accumulates rendered lines.
type textWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipped[n.DataAtom] || nodeHidden(n) {
			return
		}
		switch {
		case n.DataAtom == atom.Br:
			w.newline()
			return
		case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
			w.cur.WriteByte(' ')
		case block[n.DataAtom]:
			w.newline()
			defer w.newline()
		}
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) newline() {
	if line := collapse(w.cur.String()); line != "" {
		w.lines = append(w.lines, line)
	}
	w.cur.Reset()
}

func (w *textWriter) String() string {
	w.newline()
	return strings.Join(w.lines, "\n")
}

// collapse trims s and folds internal whitespace runs, including
// non-breaking spaces, to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, " ", " ")), " ")
}

// nodeHidden reports whether n is hidden with the hidden attribute or an
// inline display:none style.
func nodeHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document or fragment.
type Document struct {
	nodes    []*html.Node
	fragment bool
}

// ParseDocument parses a complete HTML document.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{nodes: []*html.Node{root}}, nil
}

// ParseFragment parses HTML in the context of a <body> element, so that
// rendering the result does not add html/head/body wrappers.
func ParseFragment(r io.Reader) (*Document, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	return &Document{nodes: nodes, fragment: true}, nil
}

// IsFragment reports whether the document was parsed with ParseFragment.
func (d *Document) IsFragment() bool { return d.fragment }

// Nodes returns the top-level nodes.
func (d *Document) Nodes() []*html.Node { return d.nodes }

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("failed to render document: %w", err)
		}
	}
	return nil
}

// String renders the document to a string.
func (d *Document) String() string {
	var b strings.Builder
	_ = d.Render(&b)
	return b.String()
}

// Elements returns the elements matching f in document order.
func (d *Document) Elements(f Filter) []*HTMLElement {
	var out []*HTMLElement
	for _, root := range d.nodes {
		Walk(root, func(n *html.Node) bool {
			if n.Type == html.ElementNode && f.Match(FromHTML(n)) {
				out = append(out, FromHTML(n))
			}
			return true
		})
	}
	return out
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the current node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLElement adapts an *html.Node to the Element interface.
type HTMLElement struct {
	node *html.Node
}

// FromHTML wraps n. The wrapper holds no state of its own, so two wrappers
// of the same node always observe the same attributes.
func FromHTML(n *html.Node) *HTMLElement {
	return &HTMLElement{node: n}
}

// Node returns the wrapped node.
func (e *HTMLElement) Node() *html.Node { return e.node }

// Tag returns the element's tag name.
func (e *HTMLElement) Tag() string {
	if e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// Kind implements Element. A nil element is OtherNode.
func (e *HTMLElement) Kind() NodeKind {
	if e == nil || e.node == nil {
		return OtherNode
	}
	return kindOf(e.node.Type)
}

// GetAttribute implements Element. Names are matched case-insensitively,
// since the HTML parser lowercases attribute keys.
func (e *HTMLElement) GetAttribute(name string) (string, bool) {
	if i := e.index(name); i >= 0 {
		return e.node.Attr[i].Val, true
	}
	return "", false
}

// SetAttribute implements Element. Existing attributes are updated in place;
// new ones are appended. It is a no-op on non-element nodes.
func (e *HTMLElement) SetAttribute(name, value string) {
	if e.node.Type != html.ElementNode {
		return
	}
	if i := e.index(name); i >= 0 {
		e.node.Attr[i].Val = value
		return
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: strings.ToLower(name), Val: value})
}

func (e *HTMLElement) index(name string) int {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return i
		}
	}
	return -1
}

func kindOf(t html.NodeType) NodeKind {
	switch t {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DocumentNode:
		return DocumentNode
	case html.DoctypeNode:
		return DoctypeNode
	default:
		return OtherNode
	}
}

// Package dom defines the element capability used by the attribute editors
// and provides two implementations of it: an in-memory Node and an adapter
// over golang.org/x/net/html trees.
package dom

import "fmt"

// NodeKind identifies the type of a node in a tree.
type NodeKind int

const (
	OtherNode NodeKind = iota
	ElementNode
	TextNode
	CommentNode
	DocumentNode
	DoctypeNode
)

var kindNames = [...]string{
	OtherNode:    "other",
	ElementNode:  "element",
	TextNode:     "text",
	CommentNode:  "comment",
	DocumentNode: "document",
	DoctypeNode:  "doctype",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Element is the capability the attribute editors need from a tree node.
// GetAttribute reports false when the attribute is absent.
type Element interface {
	Kind() NodeKind
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
}

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

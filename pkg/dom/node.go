package dom

// Node is an in-memory tree node. Only element nodes carry a tag and
// attributes; text and comment nodes carry Data.
type Node struct {
	kind  NodeKind
	tag   string
	data  string
	attrs []Attr
}

// NewElement creates an element node. Attribute order is preserved; a
// repeated name overwrites the earlier value.
func NewElement(tag string, attrs ...Attr) *Node {
	n := &Node{kind: ElementNode, tag: tag}
	for _, a := range attrs {
		n.SetAttribute(a.Name, a.Value)
	}
	return n
}

// NewText creates a text node.
func NewText(data string) *Node {
	return &Node{kind: TextNode, data: data}
}

// NewComment creates a comment node.
func NewComment(data string) *Node {
	return &Node{kind: CommentNode, data: data}
}

// Kind implements Element. A nil node is OtherNode.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return OtherNode
	}
	return n.kind
}

// Tag returns the element's tag name, or "" for non-element nodes.
func (n *Node) Tag() string { return n.tag }

// Data returns the character data of text and comment nodes.
func (n *Node) Data() string { return n.data }

// GetAttribute implements Element.
func (n *Node) GetAttribute(name string) (string, bool) {
	if i := n.index(name); i >= 0 {
		return n.attrs[i].Value, true
	}
	return "", false
}

// SetAttribute implements Element. It is a no-op on non-element nodes.
func (n *Node) SetAttribute(name, value string) {
	if n.kind != ElementNode {
		return
	}
	if i := n.index(name); i >= 0 {
		n.attrs[i].Value = value
		return
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	return n.index(name) >= 0
}

// RemoveAttribute deletes the attribute if present.
func (n *Node) RemoveAttribute(name string) {
	if i := n.index(name); i >= 0 {
		n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
	}
}

// Attributes returns a copy of the attributes in document order.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

func (n *Node) index(name string) int {
	for i, a := range n.attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

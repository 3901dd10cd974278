package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestNodeKind_String(t *testing.T) {
	tests := []struct {
		kind     NodeKind
		expected string
	}{
		{OtherNode, "other"},
		{ElementNode, "element"},
		{TextNode, "text"},
		{CommentNode, "comment"},
		{DocumentNode, "document"},
		{DoctypeNode, "doctype"},
		{NodeKind(42), "NodeKind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestNode_Attributes(t *testing.T) {
	n := NewElement("div", Attr{Name: "id", Value: "main"}, Attr{Name: "class", Value: "a"}, Attr{Name: "id", Value: "other"})

	assert.Equal(t, ElementNode, n.Kind())
	assert.Equal(t, "div", n.Tag())
	assert.Equal(t, []Attr{{Name: "id", Value: "other"}, {Name: "class", Value: "a"}}, n.Attributes())

	v, ok := n.GetAttribute("class")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = n.GetAttribute("style")
	assert.False(t, ok)

	n.SetAttribute("style", "")
	assert.True(t, n.HasAttribute("style"))

	n.RemoveAttribute("id")
	assert.False(t, n.HasAttribute("id"))
	assert.Equal(t, []Attr{{Name: "class", Value: "a"}, {Name: "style", Value: ""}}, n.Attributes())
}

func TestNode_NonElementIgnoresAttributes(t *testing.T) {
	for _, n := range []*Node{NewText("foo"), NewComment("foo")} {
		n.SetAttribute("class", "x")
		assert.False(t, n.HasAttribute("class"))
		assert.Equal(t, "foo", n.Data())
		assert.Empty(t, n.Tag())
	}
}

func TestHTMLElement_Kind(t *testing.T) {
	tests := []struct {
		typ      html.NodeType
		expected NodeKind
	}{
		{html.ElementNode, ElementNode},
		{html.TextNode, TextNode},
		{html.CommentNode, CommentNode},
		{html.DocumentNode, DocumentNode},
		{html.DoctypeNode, DoctypeNode},
		{html.RawNode, OtherNode},
		{html.ErrorNode, OtherNode},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, FromHTML(&html.Node{Type: tt.typ}).Kind())
		})
	}
}

func TestKind_NilReceiver(t *testing.T) {
	var n *Node
	var e *HTMLElement
	assert.Equal(t, OtherNode, n.Kind())
	assert.Equal(t, OtherNode, e.Kind())
	assert.Equal(t, OtherNode, FromHTML(nil).Kind())
}

func TestHTMLElement_SetAttribute(t *testing.T) {
	doc, err := ParseFragment(strings.NewReader(`<div id="x" Class="a">text</div>`))
	require.NoError(t, err)

	els := doc.Elements(Filter{ID: "x"})
	require.Len(t, els, 1)
	el := els[0]

	v, ok := el.GetAttribute("CLASS")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	el.SetAttribute("class", "a b")
	el.SetAttribute("Style", "color: red")

	assert.Equal(t, `<div id="x" class="a b" style="color: red">text</div>`, doc.String())
}

func TestHTMLElement_TextNodeIsReadOnly(t *testing.T) {
	n := &html.Node{Type: html.TextNode, Data: "hi"}
	el := FromHTML(n)

	el.SetAttribute("class", "x")

	assert.Empty(t, n.Attr)
	assert.Empty(t, el.Tag())
}

func TestDocument_ParseDocument(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(`<p class="a">one</p>`))
	require.NoError(t, err)

	assert.False(t, doc.IsFragment())
	assert.Equal(t, `<html><head></head><body><p class="a">one</p></body></html>`, doc.String())
}

func TestDocument_Elements(t *testing.T) {
	src := `<div class="card main" id="first"><p class="lead">a</p></div><div class="card"><p>b</p></div><span class="lead">c</span>`
	doc, err := ParseFragment(strings.NewReader(src))
	require.NoError(t, err)
	assert.True(t, doc.IsFragment())

	tests := []struct {
		name   string
		filter Filter
		tags   []string
	}{
		{name: "all", filter: Filter{}, tags: []string{"div", "p", "div", "p", "span"}},
		{name: "by tag", filter: Filter{Tag: "DIV"}, tags: []string{"div", "div"}},
		{name: "by id", filter: Filter{ID: "first"}, tags: []string{"div"}},
		{name: "by class", filter: Filter{Class: "lead"}, tags: []string{"p", "span"}},
		{name: "tag and class", filter: Filter{Tag: "p", Class: "lead"}, tags: []string{"p"}},
		{name: "no match", filter: Filter{Class: "car"}, tags: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags []string
			for _, el := range doc.Elements(tt.filter) {
				tags = append(tags, el.Tag())
			}
			assert.Equal(t, tt.tags, tags)
		})
	}
}

func TestFilter_String(t *testing.T) {
	assert.Equal(t, "*", Filter{}.String())
	assert.Equal(t, "div#main.card", Filter{Tag: "div", ID: "main", Class: "card"}.String())
	assert.Equal(t, ".card", Filter{Class: "card"}.String())
}

func TestWalk_SkipChildren(t *testing.T) {
	doc, err := ParseFragment(strings.NewReader(`<ul><li>a</li></ul><p>b</p>`))
	require.NoError(t, err)

	var seen []string
	for _, root := range doc.Nodes() {
		Walk(root, func(n *html.Node) bool {
			if n.Type == html.ElementNode {
				seen = append(seen, n.Data)
			}
			return n.Data != "ul"
		})
	}

	assert.Equal(t, []string{"ul", "p"}, seen)
}

func TestIsSpace(t *testing.T) {
	for _, r := range " \t\n\f\r" {
		assert.True(t, IsSpace(r), "%q", r)
	}
	for _, r := range "a\v " {
		assert.False(t, IsSpace(r), "%q", r)
	}
}

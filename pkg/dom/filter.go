package dom

import "strings"

// Filter selects elements by tag, id and class. Empty fields match
// everything; non-empty fields must all match.
type Filter struct {
	Tag   string
	ID    string
	Class string
}

// IsZero reports whether the filter matches every element.
func (f Filter) IsZero() bool {
	return f.Tag == "" && f.ID == "" && f.Class == ""
}

// Match reports whether el satisfies the filter.
func (f Filter) Match(el *HTMLElement) bool {
	if el.Kind() != ElementNode {
		return false
	}
	if f.Tag != "" && !strings.EqualFold(el.Tag(), f.Tag) {
		return false
	}
	if f.ID != "" {
		if id, _ := el.GetAttribute("id"); id != f.ID {
			return false
		}
	}
	if f.Class != "" {
		class, _ := el.GetAttribute("class")
		if !hasToken(class, f.Class) {
			return false
		}
	}
	return true
}

func (f Filter) String() string {
	if f.IsZero() {
		return "*"
	}
	var b strings.Builder
	b.WriteString(f.Tag)
	if f.ID != "" {
		b.WriteString("#" + f.ID)
	}
	if f.Class != "" {
		b.WriteString("." + f.Class)
	}
	return b.String()
}

func hasToken(list, token string) bool {
	for _, t := range strings.FieldsFunc(list, IsSpace) {
		if t == token {
			return true
		}
	}
	return false
}

// IsSpace reports ASCII whitespace as defined for HTML token lists.
func IsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

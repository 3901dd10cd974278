package attr

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/domattr/pkg/dom"
)

const classAttr = "class"

// ClassList edits the class attribute of an element as an ordered set of
// tokens. Every call re-reads the attribute, so edits made through the
// element or another ClassList are always visible.
type ClassList struct {
	el dom.Element
}

// NewClassList returns a ClassList for el, which must be an element node.
func NewClassList(el dom.Element) (*ClassList, error) {
	if err := checkTarget(el); err != nil {
		return nil, err
	}
	return &ClassList{el: el}, nil
}

// Element returns the element the list was created with.
func (c *ClassList) Element() dom.Element { return c.el }

func (c *ClassList) raw() string {
	v, _ := c.el.GetAttribute(classAttr)
	return v
}

func (c *ClassList) write(tokens []string) {
	c.el.SetAttribute(classAttr, FormatClass(tokens))
}

// All returns the tokens in the order they appear, duplicates included.
func (c *ClassList) All() []string {
	return ParseClass(c.raw())
}

// Contains reports whether name is one of the tokens.
func (c *ClassList) Contains(name string) bool {
	return slices.Contains(c.All(), name)
}

// Add appends name unless it is already present.
func (c *ClassList) Add(name string) {
	raw := c.raw()
	tokens := ParseClass(raw)
	if slices.Contains(tokens, name) {
		return
	}
	if len(tokens) == 0 {
		c.el.SetAttribute(classAttr, name)
		return
	}
	c.el.SetAttribute(classAttr, strings.TrimRightFunc(raw, dom.IsSpace)+" "+name)
}

// AddMultiple adds each name in order. Every element must be a string;
// otherwise an *InvalidArgumentError is returned and nothing is added.
func (c *ClassList) AddMultiple(names []any) error {
	ss, err := stringsOf(names, RoleClassName)
	if err != nil {
		return err
	}
	for _, name := range ss {
		c.Add(name)
	}
	return nil
}

// Remove deletes every occurrence of name. The attribute is left untouched
// when name is not present.
func (c *ClassList) Remove(name string) {
	tokens := c.All()
	if !slices.Contains(tokens, name) {
		return
	}
	c.write(slices.DeleteFunc(tokens, func(t string) bool { return t == name }))
}

// RemoveMultiple removes each name in order, with the same validation as
// AddMultiple.
func (c *ClassList) RemoveMultiple(names []any) error {
	ss, err := stringsOf(names, RoleClassName)
	if err != nil {
		return err
	}
	for _, name := range ss {
		c.Remove(name)
	}
	return nil
}

// RemoveAll removes every token except those listed in exclusions. The
// surviving tokens are written in exclusion order; exclusions that are not
// present are ignored.
func (c *ClassList) RemoveAll(exclusions []any) error {
	keep, err := stringsOf(exclusions, RoleClassName)
	if err != nil {
		return err
	}
	tokens := c.All()
	kept := make([]string, 0, len(keep))
	for _, name := range keep {
		if slices.Contains(tokens, name) && !slices.Contains(kept, name) {
			kept = append(kept, name)
		}
	}
	c.write(kept)
	return nil
}

// Toggle removes name if present and adds it otherwise. It reports whether
// name is present afterwards.
func (c *ClassList) Toggle(name string) bool {
	if c.Contains(name) {
		c.Remove(name)
		return false
	}
	c.Add(name)
	return true
}

// Replace substitutes newName for oldName at oldName's position. It reports
// false, leaving the attribute untouched, when oldName is not present.
func (c *ClassList) Replace(oldName, newName string) bool {
	tokens := c.All()
	if !slices.Contains(tokens, oldName) {
		return false
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == oldName {
			t = newName
		}
		if t == newName && slices.Contains(out, newName) {
			continue
		}
		out = append(out, t)
	}
	c.write(out)
	return true
}

// String returns the tokens joined by single spaces.
func (c *ClassList) String() string {
	return FormatClass(c.All())
}

// ParseClass splits a class attribute value on runs of whitespace.
func ParseClass(raw string) []string {
	tokens := strings.FieldsFunc(raw, dom.IsSpace)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// FormatClass joins tokens with single spaces.
func FormatClass(tokens []string) string {
	return strings.Join(tokens, " ")
}

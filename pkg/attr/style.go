package attr

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/domattr/pkg/dom"
)

const styleAttr = "style"

// Declaration is a single style property.
type Declaration struct {
	Name  string
	Value string
}

// Entry is an unvalidated name/value pair for SetMultipleProperties.
type Entry struct {
	Name  any
	Value any
}

// StyleMap edits the style attribute of an element as an ordered mapping of
// property names to values. Like ClassList it keeps no parsed state.
type StyleMap struct {
	el dom.Element
}

// NewStyleMap returns a StyleMap for el, which must be an element node.
func NewStyleMap(el dom.Element) (*StyleMap, error) {
	if err := checkTarget(el); err != nil {
		return nil, err
	}
	return &StyleMap{el: el}, nil
}

// Element returns the element the map was created with.
func (s *StyleMap) Element() dom.Element { return s.el }

func (s *StyleMap) read() []Declaration {
	v, _ := s.el.GetAttribute(styleAttr)
	return ParseStyle(v)
}

func (s *StyleMap) write(decls []Declaration) {
	s.el.SetAttribute(styleAttr, FormatStyle(decls))
}

// Properties returns the declarations in order of first appearance. When a
// name is declared more than once, the last value wins.
func (s *StyleMap) Properties() []Declaration {
	return s.read()
}

// Len returns the number of distinct properties.
func (s *StyleMap) Len() int {
	return len(s.read())
}

// Property returns the value of name and whether it is declared.
func (s *StyleMap) Property(name string) (string, bool) {
	decls := s.read()
	if i := indexOf(decls, strings.TrimSpace(name)); i >= 0 {
		return decls[i].Value, true
	}
	return "", false
}

// PropertyOr returns the value of name, or def when it is not declared.
func (s *StyleMap) PropertyOr(name, def string) string {
	if v, ok := s.Property(name); ok {
		return v
	}
	return def
}

// MultipleProperties returns the declarations for the requested names, in
// request order. Names that are not declared are omitted.
func (s *StyleMap) MultipleProperties(names []any) ([]Declaration, error) {
	ss, err := stringsOf(names, RolePropertyName)
	if err != nil {
		return nil, err
	}
	decls := s.read()
	out := make([]Declaration, 0, len(ss))
	for _, name := range ss {
		name = strings.TrimSpace(name)
		if i := indexOf(decls, name); i >= 0 && indexOf(out, name) < 0 {
			out = append(out, decls[i])
		}
	}
	return out, nil
}

// HasProperty reports whether name is declared.
func (s *StyleMap) HasProperty(name string) bool {
	return indexOf(s.read(), strings.TrimSpace(name)) >= 0
}

// SetProperty sets name to value, keeping its position when it is already
// declared and appending it otherwise. Name and value are trimmed the way
// ParseStyle trims them. A declaration that could not be read back as
// written (an empty name, a name containing ';' or ':', or a value
// containing ';') is ignored.
func (s *StyleMap) SetProperty(name, value string) {
	d, ok := cleanDeclaration(name, value)
	if !ok {
		return
	}
	decls := s.read()
	if i := indexOf(decls, d.Name); i >= 0 {
		decls[i].Value = d.Value
	} else {
		decls = append(decls, d)
	}
	s.write(decls)
}

// SetMultipleProperties sets each entry in order. All names and values must
// be strings; otherwise an *InvalidArgumentError is returned and nothing is
// set.
func (s *StyleMap) SetMultipleProperties(entries []Entry) error {
	decls := make([]Declaration, len(entries))
	for i, e := range entries {
		name, ok := e.Name.(string)
		if !ok {
			return &InvalidArgumentError{Role: RolePropertyName, Index: i, Got: typeName(e.Name)}
		}
		value, ok := e.Value.(string)
		if !ok {
			return &InvalidArgumentError{Role: RolePropertyValue, Index: i, Got: typeName(e.Value)}
		}
		decls[i] = Declaration{Name: name, Value: value}
	}
	for _, d := range decls {
		s.SetProperty(d.Name, d.Value)
	}
	return nil
}

// RemoveProperty deletes name. The attribute is left untouched when name is
// not declared.
func (s *StyleMap) RemoveProperty(name string) {
	decls := s.read()
	i := indexOf(decls, strings.TrimSpace(name))
	if i < 0 {
		return
	}
	s.write(slices.Delete(decls, i, i+1))
}

// RemoveMultipleProperties removes each name in order, with the same
// validation as MultipleProperties.
func (s *StyleMap) RemoveMultipleProperties(names []any) error {
	ss, err := stringsOf(names, RolePropertyName)
	if err != nil {
		return err
	}
	for _, name := range ss {
		s.RemoveProperty(name)
	}
	return nil
}

// RemoveAllProperties removes every declaration whose name is not listed in
// exclusions. Survivors keep their original relative order.
func (s *StyleMap) RemoveAllProperties(exclusions []any) error {
	keep, err := stringsOf(exclusions, RolePropertyName)
	if err != nil {
		return err
	}
	for i := range keep {
		keep[i] = strings.TrimSpace(keep[i])
	}
	decls := slices.DeleteFunc(s.read(), func(d Declaration) bool {
		return !slices.Contains(keep, d.Name)
	})
	s.write(decls)
	return nil
}

// String returns the normalized serialization of the declarations.
func (s *StyleMap) String() string {
	return FormatStyle(s.read())
}

// ParseStyle parses a style attribute value. Segments are separated by ';'
// and split at their first ':'; segments without a name are dropped. A
// repeated name keeps its first position and takes its last value.
func ParseStyle(raw string) []Declaration {
	decls := []Declaration{}
	for _, seg := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(seg, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if i := indexOf(decls, name); i >= 0 {
			decls[i].Value = value
			continue
		}
		decls = append(decls, Declaration{Name: name, Value: value})
	}
	return decls
}

// FormatStyle serializes declarations as "name: value" pairs joined by "; ".
func FormatStyle(decls []Declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Name + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}

func cleanDeclaration(name, value string) (Declaration, bool) {
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if name == "" || strings.ContainsAny(name, ";:") || strings.Contains(value, ";") {
		return Declaration{}, false
	}
	return Declaration{Name: name, Value: value}, true
}

func indexOf(decls []Declaration, name string) int {
	return slices.IndexFunc(decls, func(d Declaration) bool { return d.Name == name })
}

// Package plan loads and applies YAML edit plans. A plan is a list of steps;
// each step selects elements with a filter and edits their class and style
// attributes through the pkg/attr editors.
package plan

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/domattr/pkg/attr"
	"github.com/leapstack-labs/domattr/pkg/dom"
	"gopkg.in/yaml.v3"
)

// Plan is a decoded edit plan.
type Plan struct {
	Steps []Step `yaml:"steps"`
}

// Match selects the elements a step applies to.
type Match struct {
	Tag   string `yaml:"tag"`
	ID    string `yaml:"id"`
	Class string `yaml:"class"`
}

// Filter converts the match to a dom.Filter.
func (m Match) Filter() dom.Filter {
	return dom.Filter{Tag: m.Tag, ID: m.ID, Class: m.Class}
}

// Step is one group of edits. List values are kept untyped so that
// non-string entries are reported by the attribute editors.
type Step struct {
	Name         string    `yaml:"name"`
	Match        Match     `yaml:"match"`
	AddClass     []any     `yaml:"add_class"`
	RemoveClass  []any     `yaml:"remove_class"`
	KeepClasses  []any     `yaml:"keep_classes"`
	ClearClasses bool      `yaml:"clear_classes"`
	SetStyle     yaml.Node `yaml:"set_style"`
	RemoveStyle  []any     `yaml:"remove_style"`
	KeepStyles   []any     `yaml:"keep_styles"`
	ClearStyles  bool      `yaml:"clear_styles"`
}

// Label returns the step name, or a name derived from its index.
func (s *Step) Label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("step %d", i+1)
}

// StyleEntries returns set_style in document order.
func (s *Step) StyleEntries() ([]attr.Entry, error) {
	switch s.SetStyle.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("set_style must be a mapping (line %d)", s.SetStyle.Line)
	}
	content := s.SetStyle.Content
	entries := make([]attr.Entry, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		var name, value any
		if err := content[i].Decode(&name); err != nil {
			return nil, err
		}
		if err := content[i+1].Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, attr.Entry{Name: name, Value: value})
	}
	return entries, nil
}

// SetStyles replaces set_style with string declarations, in order.
func (s *Step) SetStyles(decls []attr.Declaration) {
	node := yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, d := range decls {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.Value},
		)
	}
	s.SetStyle = node
}

// StepError reports a failure in a single step.
type StepError struct {
	Index int
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ErrEmptyPlan is returned when a plan has no steps.
var ErrEmptyPlan = errors.New("plan has no steps")

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode reads and validates a plan.
func Decode(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPlan
		}
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every step by running it against a scratch element, so
// a plan that would fail part way through is rejected before any document
// is touched.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return ErrEmptyPlan
	}
	for i := range p.Steps {
		step := &p.Steps[i]
		if step.ClearClasses && step.KeepClasses != nil {
			return &StepError{Index: i, Name: step.Label(i), Err: errors.New("clear_classes and keep_classes are mutually exclusive")}
		}
		if step.ClearStyles && step.KeepStyles != nil {
			return &StepError{Index: i, Name: step.Label(i), Err: errors.New("clear_styles and keep_styles are mutually exclusive")}
		}
		scratch := dom.NewElement("div", dom.Attr{Name: "class"}, dom.Attr{Name: "style"})
		if _, err := applyStep(step, scratch); err != nil {
			return &StepError{Index: i, Name: step.Label(i), Err: err}
		}
	}
	return nil
}

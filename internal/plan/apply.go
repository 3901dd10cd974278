package plan

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/domattr/pkg/attr"
	"github.com/leapstack-labs/domattr/pkg/dom"
)

// Change records an attribute rewritten by a step.
type Change struct {
	Step      string
	Element   string
	Attribute string
	Before    string
	After     string
}

// StepResult summarizes one step.
type StepResult struct {
	Name    string
	Matched int
	Changed int
}

// Report is the outcome of applying a plan.
type Report struct {
	Steps   []StepResult
	Changes []Change
}

// Applier applies plans to documents.
type Applier struct {
	logger *slog.Logger
}

// NewApplier creates an Applier. A nil logger discards output.
func NewApplier(logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Applier{logger: logger}
}

// Apply runs every step of p against doc in order.
func (a *Applier) Apply(ctx context.Context, p *Plan, doc *dom.Document) (*Report, error) {
	report := &Report{}
	for i := range p.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		step := &p.Steps[i]
		name := step.Label(i)
		filter := step.Match.Filter()
		elements := doc.Elements(filter)

		a.logger.Debug("applying step", "step", name, "match", filter.String(), "elements", len(elements))

		result := StepResult{Name: name, Matched: len(elements)}
		for _, el := range elements {
			changes, err := applyStep(step, el)
			if err != nil {
				return report, &StepError{Index: i, Name: name, Err: err}
			}
			if len(changes) > 0 {
				result.Changed++
			}
			for _, c := range changes {
				c.Step = name
				c.Element = Describe(el)
				report.Changes = append(report.Changes, c)
			}
		}
		report.Steps = append(report.Steps, result)
	}

	a.logger.Info("plan applied", "steps", len(report.Steps), "changes", len(report.Changes))
	return report, nil
}

// applyStep runs the step's edits on el: class edits first (clear or keep,
// remove, add), then style edits in the same order. Clearing skips elements
// that do not carry the attribute at all.
func applyStep(step *Step, el dom.Element) ([]Change, error) {
	classes, err := attr.NewClassList(el)
	if err != nil {
		return nil, err
	}
	styles, err := attr.NewStyleMap(el)
	if err != nil {
		return nil, err
	}
	entries, err := step.StyleEntries()
	if err != nil {
		return nil, err
	}

	classBefore, hadClass := el.GetAttribute("class")
	styleBefore, hadStyle := el.GetAttribute("style")

	switch {
	case !hadClass:
	case step.ClearClasses:
		err = classes.RemoveAll(nil)
	case step.KeepClasses != nil:
		err = classes.RemoveAll(step.KeepClasses)
	}
	if err != nil {
		return nil, err
	}
	if err := classes.RemoveMultiple(step.RemoveClass); err != nil {
		return nil, err
	}
	if err := classes.AddMultiple(step.AddClass); err != nil {
		return nil, err
	}

	switch {
	case !hadStyle:
	case step.ClearStyles:
		err = styles.RemoveAllProperties(nil)
	case step.KeepStyles != nil:
		err = styles.RemoveAllProperties(step.KeepStyles)
	}
	if err != nil {
		return nil, err
	}
	if err := styles.RemoveMultipleProperties(step.RemoveStyle); err != nil {
		return nil, err
	}
	if err := styles.SetMultipleProperties(entries); err != nil {
		return nil, err
	}

	var changes []Change
	if after, ok := el.GetAttribute("class"); ok && (!hadClass || after != classBefore) {
		changes = append(changes, Change{Attribute: "class", Before: classBefore, After: after})
	}
	if after, ok := el.GetAttribute("style"); ok && (!hadStyle || after != styleBefore) {
		changes = append(changes, Change{Attribute: "style", Before: styleBefore, After: after})
	}
	return changes, nil
}

// Describe formats el as tag#id.class for reports.
func Describe(el *dom.HTMLElement) string {
	s := el.Tag()
	if id, ok := el.GetAttribute("id"); ok && id != "" {
		s += "#" + id
	}
	if class, ok := el.GetAttribute("class"); ok {
		for _, c := range attr.ParseClass(class) {
			s += "." + c
		}
	}
	return s
}

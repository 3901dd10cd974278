package plan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/domattr/internal/testutil"
	"github.com/leapstack-labs/domattr/pkg/attr"
	"github.com/leapstack-labs/domattr/pkg/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsHTML = `<div class="card hidden" id="a" style="color: blue; margin: 0">one</div>` +
	`<div class="card" style="display: none">two</div>` +
	`<p>three</p>`

func parse(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseFragment(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func decode(t *testing.T, src string) *Plan {
	t.Helper()
	p, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	return p
}

func TestDecode_StyleOrder(t *testing.T) {
	p := decode(t, `
steps:
  - match: {tag: div}
    set_style:
      z-index: "2"
      color: red
      align: left
`)
	require.Len(t, p.Steps, 1)

	entries, err := p.Steps[0].StyleEntries()
	require.NoError(t, err)
	assert.Equal(t, []attr.Entry{
		{Name: "z-index", Value: "2"},
		{Name: "color", Value: "red"},
		{Name: "align", Value: "left"},
	}, entries)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		errSubstr string
		is        error
	}{
		{
			name: "empty document",
			src:  "",
			is:   ErrEmptyPlan,
		},
		{
			name: "no steps",
			src:  "steps: []\n",
			is:   ErrEmptyPlan,
		},
		{
			name:      "unknown field",
			src:       "steps:\n  - add_klass: [a]\n",
			errSubstr: "add_klass",
		},
		{
			name:      "null class name",
			src:       "steps:\n  - add_class: [a, null]\n",
			errSubstr: "step 1: Class name must be a string, nil given.",
			is:        attr.ErrInvalidArgument,
		},
		{
			name:      "numeric style value",
			src:       "steps:\n  - name: spacing\n    set_style: {margin: 0}\n",
			errSubstr: "spacing: Property value must be a string, int given.",
			is:        attr.ErrInvalidArgument,
		},
		{
			name:      "numeric exclusion",
			src:       "steps:\n  - keep_styles: [color, 3]\n",
			errSubstr: "Property name must be a string, int given.",
			is:        attr.ErrInvalidArgument,
		},
		{
			name:      "set_style not a mapping",
			src:       "steps:\n  - set_style: [color]\n",
			errSubstr: "set_style must be a mapping",
		},
		{
			name:      "clear and keep",
			src:       "steps:\n  - clear_classes: true\n    keep_classes: [a]\n",
			errSubstr: "mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			require.Error(t, err)
			if tt.errSubstr != "" {
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestDecode_StepErrorIndex(t *testing.T) {
	_, err := Decode(strings.NewReader("steps:\n  - add_class: [a]\n  - remove_class: [1]\n"))

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, "step 2", stepErr.Name)
}

func TestApply(t *testing.T) {
	p := decode(t, `
steps:
  - name: reveal cards
    match: {class: card}
    remove_class: [hidden]
    add_class: [shadow]
    remove_style: [display]
    set_style: {color: red}
  - match: {tag: p}
    add_class: [lead]
`)
	doc := parse(t, cardsHTML)

	report, err := NewApplier(testutil.NewTestLogger(t)).Apply(context.Background(), p, doc)
	require.NoError(t, err)

	assert.Equal(t,
		`<div class="card shadow" id="a" style="color: red; margin: 0">one</div>`+
			`<div class="card shadow" style="color: red">two</div>`+
			`<p class="lead">three</p>`,
		doc.String())

	assert.Equal(t, []StepResult{
		{Name: "reveal cards", Matched: 2, Changed: 2},
		{Name: "step 2", Matched: 1, Changed: 1},
	}, report.Steps)

	require.Len(t, report.Changes, 5)
	assert.Equal(t, Change{
		Step:      "reveal cards",
		Element:   "div#a.card.shadow",
		Attribute: "class",
		Before:    "card hidden",
		After:     "card shadow",
	}, report.Changes[0])
	assert.Equal(t, Change{
		Step:      "step 2",
		Element:   "p.lead",
		Attribute: "class",
		Before:    "",
		After:     "lead",
	}, report.Changes[4])
}

func TestApply_KeepAndClear(t *testing.T) {
	p := decode(t, `
steps:
  - match: {id: a}
    keep_classes: [hidden, card]
    clear_styles: true
  - match: {tag: p}
    clear_classes: true
    keep_styles: [color]
`)
	doc := parse(t, cardsHTML)

	report, err := NewApplier(nil).Apply(context.Background(), p, doc)
	require.NoError(t, err)

	assert.Equal(t,
		`<div class="hidden card" id="a" style="">one</div>`+
			`<div class="card" style="display: none">two</div>`+
			`<p>three</p>`,
		doc.String())
	assert.Equal(t, 0, report.Steps[1].Changed, "elements without the attribute are left alone")
}

func TestApply_Cancelled(t *testing.T) {
	p := decode(t, "steps:\n  - add_class: [x]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewApplier(nil).Apply(ctx, p, parse(t, cardsHTML))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestApply_InvalidStepBuiltInCode(t *testing.T) {
	p := &Plan{Steps: []Step{{AddClass: []any{"ok", 7}}}}
	doc := parse(t, cardsHTML)
	before := doc.String()

	_, err := NewApplier(nil).Apply(context.Background(), p, doc)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.ErrorIs(t, err, attr.ErrInvalidArgument)
	assert.Equal(t, before, doc.String())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - add_class: [x]\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, p.Steps[0].AddClass)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStep_SetStyles(t *testing.T) {
	step := Step{Match: Match{ID: "a"}}
	step.SetStyles([]attr.Declaration{{Name: "margin", Value: "0"}, {Name: "color", Value: "red"}})

	entries, err := step.StyleEntries()
	require.NoError(t, err)
	assert.Equal(t, []attr.Entry{
		{Name: "margin", Value: "0"},
		{Name: "color", Value: "red"},
	}, entries, "numeric-looking values stay strings")

	doc := parse(t, cardsHTML)
	_, err = NewApplier(testutil.NewTestLogger(t)).Apply(context.Background(), &Plan{Steps: []Step{step}}, doc)
	require.NoError(t, err)
	assert.Contains(t, doc.String(), `style="color: red; margin: 0"`)
}

func TestApply_Logging(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	p := decode(t, "steps:\n  - name: cards\n    match: {class: card}\n    add_class: [x]\n")

	_, err := NewApplier(logger).Apply(context.Background(), p, parse(t, cardsHTML))
	require.NoError(t, err)

	lines := logs.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `msg="applying step" step=cards match=.card elements=2`)
	assert.Contains(t, lines[1], `msg="plan applied" steps=1 changes=2`)
}

package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/leapstack-labs/domattr/internal/cli/config"
	"github.com/leapstack-labs/domattr/internal/plan"
	"github.com/leapstack-labs/domattr/pkg/attr"
	"github.com/leapstack-labs/domattr/pkg/dom"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewClassesCommand(), "classes <file|->", []string{"tag", "id", "class"}},
		{NewStylesCommand(), "styles <file|->", []string{"tag", "id", "class", "property"}},
		{NewEditCommand(), "edit <file|->", []string{
			"add-class", "remove-class", "keep-class", "clear-classes",
			"set-style", "remove-style", "keep-style", "clear-styles",
			"fragment", "write", "diff",
		}},
		{NewApplyCommand(), "apply <plan.yaml> <file|->...", []string{"out", "write", "diff", "watch"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestParseHTML(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		mode         string
		wantFragment bool
	}{
		{"auto fragment", `<p>x</p>`, config.ParseAuto, true},
		{"auto doctype", `<!DOCTYPE html><p>x</p>`, config.ParseAuto, false},
		{"auto html tag", `<HTML><body></body></HTML>`, config.ParseAuto, false},
		{"forced document", `<p>x</p>`, config.ParseDocument, false},
		{"forced fragment", `<!doctype html><p>x</p>`, config.ParseFragment, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseHTML([]byte(tt.src), tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFragment, doc.IsFragment())
		})
	}
}

func TestFilterFlagsResolve(t *testing.T) {
	cfg := &config.Config{Filter: config.Filter{Tag: "section", Class: "card"}}

	var f filterFlags
	cmd := &cobra.Command{Use: "x"}
	f.register(cmd)

	assert.Equal(t, dom.Filter{Tag: "section", Class: "card"}, f.resolve(cmd, cfg), "config filter is the default")

	require.NoError(t, cmd.Flags().Set("id", "hero"))
	assert.Equal(t, dom.Filter{ID: "hero"}, f.resolve(cmd, cfg), "any filter flag replaces the config filter")
}

func TestApplyOptionsCheck(t *testing.T) {
	tests := []struct {
		name      string
		opts      applyOptions
		paths     []string
		errSubstr string
	}{
		{name: "single file to stdout", paths: []string{"a.html"}},
		{name: "stdin", paths: []string{"-"}},
		{name: "several with write", opts: applyOptions{write: true}, paths: []string{"a.html", "b.html"}},
		{name: "several with diff", opts: applyOptions{diff: true}, paths: []string{"a.html", "b.html"}},
		{name: "several to stdout", paths: []string{"a.html", "b.html"}, errSubstr: "need --write or --diff"},
		{name: "stdin among files", opts: applyOptions{write: true}, paths: []string{"a.html", "-"}, errSubstr: "only input"},
		{name: "watch stdin", opts: applyOptions{watch: true}, paths: []string{"-"}, errSubstr: "not stdin"},
		{name: "out with several", opts: applyOptions{out: "x.html", diff: true}, paths: []string{"a.html", "b.html"}, errSubstr: "single input"},
		{name: "out is input", opts: applyOptions{out: "./a.html"}, paths: []string{"a.html"}, errSubstr: "use --write"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.check(tt.paths)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestEditOptionsStep(t *testing.T) {
	opts := &editOptions{
		addClass:    []string{"a", "b"},
		removeStyle: []string{"display"},
		setStyle:    []string{"margin=0 auto", "color=red"},
	}

	step, err := opts.step(plan.Match{Class: "card"})
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, step.AddClass)
	assert.Nil(t, step.RemoveClass)
	assert.Nil(t, step.KeepClasses, "an unset keep flag must not clear classes")
	entries, err := step.StyleEntries()
	require.NoError(t, err)
	assert.Equal(t, []attr.Entry{{Name: "margin", Value: "0 auto"}, {Name: "color", Value: "red"}}, entries)

	_, err = (&editOptions{}).step(plan.Match{})
	assert.ErrorIs(t, err, ErrNoEdits)
}

func TestClassesCommandDirect(t *testing.T) {
	cmd := NewClassesCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(`<ul><li class="a  b">1</li><li>2</li></ul>`))
	cmd.SetArgs([]string{"--tag", "li", "-"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got := out.String()
	assert.Contains(t, got, "# Classes in <stdin> (2 elements)")
	assert.Contains(t, got, "| li.a.b | a b |")
	assert.Contains(t, got, "| li |  |")
}

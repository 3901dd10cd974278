// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/domattr/internal/cli/output"
)

// PageHTML is the document written by SetupTestProject.
const PageHTML = `<!DOCTYPE html>
<html><head><title>Test</title></head><body>
<div id="hero" class="card hidden" style="color: blue; display: none">Hero</div>
<div class="card" style="margin: 0">Card</div>
<p class="lead">Text</p>
</body></html>
`

// PlanYAML is the edit plan written by SetupTestProject.
const PlanYAML = `steps:
  - name: show cards
    match: {tag: div, class: card}
    remove_class: [hidden]
    add_class: [shadow]
    remove_style: [display]
  - match: {id: hero}
    set_style:
      color: red
      padding: "1em"
`

// Project holds the paths of a test project.
type Project struct {
	Dir  string
	Page string
	Plan string
}

// SetupTestProject creates a temporary project holding an HTML page and an
// edit plan. When config is non-empty it is written to domattr.yaml.
func SetupTestProject(t *testing.T, config string) *Project {
	t.Helper()

	dir := t.TempDir()
	p := &Project{
		Dir:  dir,
		Page: filepath.Join(dir, "site", "index.html"),
		Plan: filepath.Join(dir, "plans", "cards.yaml"),
	}

	for _, d := range []string{filepath.Dir(p.Page), filepath.Dir(p.Plan)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", d, err)
		}
	}

	files := map[string]string{p.Page: PageHTML, p.Plan: PlanYAML}
	if config != "" {
		files[filepath.Join(dir, "domattr.yaml")] = config
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return p
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test fixture path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertValidMarkdown checks for unbalanced code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

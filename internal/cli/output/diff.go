package output

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one line of a line-oriented diff.
type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
}

// LineDiff compares before and after line by line.
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			out = append(out, DiffLine{Op: d.Type, Text: line})
		}
	}
	return out
}

// Diff writes a diff of before and after labelled with name. Unchanged
// lines are omitted unless they are within context lines of a change.
// It reports whether there were any differences.
func (r *Renderer) Diff(name, before, after string, context int) bool {
	if before == after {
		return false
	}
	lines := LineDiff(before, after)

	r.Println("--- " + name)
	r.Println("+++ " + name)
	for i, l := range lines {
		switch l.Op {
		case diffmatchpatch.DiffDelete:
			r.Println(r.styles.Removed.Render("-" + l.Text))
		case diffmatchpatch.DiffInsert:
			r.Println(r.styles.Added.Render("+" + l.Text))
		default:
			if nearChange(lines, i, context) {
				r.Println(" " + l.Text)
			}
		}
	}
	return true
}

func nearChange(lines []DiffLine, i, context int) bool {
	lo, hi := max(0, i-context), min(len(lines)-1, i+context)
	for j := lo; j <= hi; j++ {
		if lines[j].Op != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/domattr/internal/cli/config"
	"github.com/leapstack-labs/domattr/internal/plan"
	"github.com/leapstack-labs/domattr/pkg/attr"
	"github.com/spf13/cobra"
)

// ErrNoEdits is returned when edit is run without any edit flag.
var ErrNoEdits = errors.New("no edits given (see domattr edit --help)")

type editOptions struct {
	filter       filterFlags
	addClass     []string
	removeClass  []string
	keepClass    []string
	clearClasses bool
	setStyle     []string
	removeStyle  []string
	keepStyle    []string
	clearStyles  bool
	fragment     bool
	write        bool
	diff         bool
}

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit <file|->",
		Short: "Edit the class and style attributes of matching elements",
		Long: `Edit the class and style attributes of every element matched by the
filter flags, then print the resulting HTML.

Class edits run before style edits. Within each, keep/clear runs first, then
removals, then additions.`,
		Example: `  # Show all cards
  domattr edit --class card --remove-class hidden --remove-style display index.html

  # Recolor the hero in place and show what changed
  domattr edit --id hero --set-style color=red --write --diff index.html

  # Strip every inline style except color
  domattr edit --keep-style color index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], opts)
		},
	}

	opts.filter.register(cmd)
	f := cmd.Flags()
	f.StringSliceVar(&opts.addClass, "add-class", nil, "Class to add (repeatable)")
	f.StringSliceVar(&opts.removeClass, "remove-class", nil, "Class to remove (repeatable)")
	f.StringSliceVar(&opts.keepClass, "keep-class", nil, "Remove every class except these (repeatable)")
	f.BoolVar(&opts.clearClasses, "clear-classes", false, "Remove every class")
	f.StringArrayVar(&opts.setStyle, "set-style", nil, "Declaration to set as name=value (repeatable)")
	f.StringSliceVar(&opts.removeStyle, "remove-style", nil, "Property to remove (repeatable)")
	f.StringSliceVar(&opts.keepStyle, "keep-style", nil, "Remove every property except these (repeatable)")
	f.BoolVar(&opts.clearStyles, "clear-styles", false, "Remove every property")
	f.BoolVar(&opts.fragment, "fragment", false, "Parse the input as a fragment")
	f.BoolVarP(&opts.write, "write", "w", false, "Write the result back to the file")
	f.BoolVar(&opts.diff, "diff", false, "Print a diff instead of the result")

	cmd.MarkFlagsMutuallyExclusive("keep-class", "clear-classes")
	cmd.MarkFlagsMutuallyExclusive("keep-style", "clear-styles")

	return cmd
}

// step builds a single plan step from the edit flags.
func (o *editOptions) step(filter plan.Match) (plan.Step, error) {
	step := plan.Step{
		Name:         "edit",
		Match:        filter,
		AddClass:     strs(o.addClass),
		RemoveClass:  strs(o.removeClass),
		KeepClasses:  strs(o.keepClass),
		ClearClasses: o.clearClasses,
		RemoveStyle:  strs(o.removeStyle),
		KeepStyles:   strs(o.keepStyle),
		ClearStyles:  o.clearStyles,
	}

	if len(o.setStyle) > 0 {
		decls := make([]attr.Declaration, 0, len(o.setStyle))
		for _, s := range o.setStyle {
			name, value, ok := strings.Cut(s, "=")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return step, fmt.Errorf("invalid --set-style %q (want name=value)", s)
			}
			decls = append(decls, attr.Declaration{Name: name, Value: strings.TrimSpace(value)})
		}
		step.SetStyles(decls)
	}

	if step.AddClass == nil && step.RemoveClass == nil && step.KeepClasses == nil && !step.ClearClasses &&
		step.RemoveStyle == nil && step.KeepStyles == nil && !step.ClearStyles && len(o.setStyle) == 0 {
		return step, ErrNoEdits
	}
	return step, nil
}

func strs(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	return attr.Strings(values...)
}

func runEdit(cmd *cobra.Command, path string, opts *editOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.write && path == "-" {
		return errors.New("--write needs a file, not stdin")
	}

	f := opts.filter.resolve(cmd, cmdCtx.Cfg)
	step, err := opts.step(plan.Match{Tag: f.Tag, ID: f.ID, Class: f.Class})
	if err != nil {
		return err
	}
	p := &plan.Plan{Steps: []plan.Step{step}}
	if err := p.Validate(); err != nil {
		return err
	}

	mode := cmdCtx.Cfg.ParseMode
	if opts.fragment {
		mode = config.ParseFragment
	}
	in, err := readInput(cmd, path, mode)
	if err != nil {
		return err
	}
	before := in.Doc.String()

	report, err := plan.NewApplier(cmdCtx.Logger).Apply(cmd.Context(), p, in.Doc)
	if err != nil {
		return err
	}
	after := in.Doc.String()

	switch {
	case opts.diff:
		if !r.Diff(in.Name(), before, after, 3) {
			r.Muted("no changes")
		}
	case !opts.write:
		_, _ = fmt.Fprint(r.Writer(), after)
	}

	if opts.write {
		if err := writeOutput(path, after); err != nil {
			return err
		}
		r.Muted(fmt.Sprintf("%s: %d of %d elements changed", path, report.Steps[0].Changed, report.Steps[0].Matched))
	}
	return nil
}

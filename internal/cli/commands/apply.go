package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"syscall"

	"github.com/leapstack-labs/domattr/internal/cli/output"
	"github.com/leapstack-labs/domattr/internal/plan"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ReportJSON is the JSON output of the apply command for one file.
type ReportJSON struct {
	File    string       `json:"file"`
	Steps   []StepJSON   `json:"steps"`
	Changes []ChangeJSON `json:"changes"`
}

// StepJSON summarizes one plan step.
type StepJSON struct {
	Name    string `json:"name"`
	Matched int    `json:"matched"`
	Changed int    `json:"changed"`
}

// ChangeJSON is one rewritten attribute.
type ChangeJSON struct {
	Step      string `json:"step"`
	Element   string `json:"element"`
	Attribute string `json:"attribute"`
	Before    string `json:"before"`
	After     string `json:"after"`
}

type applyOptions struct {
	out   string
	write bool
	diff  bool
	watch bool
}

// applied is the outcome of running a plan over one input.
type applied struct {
	in     *Input
	before string
	after  string
	report *plan.Report
}

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <plan.yaml> <file|->...",
		Short: "Apply an edit plan to HTML files",
		Long: `Apply the steps of a YAML edit plan to one or more HTML files.

The plan is validated before any file is read, and files are only written
once the plan has been applied to all of them, so a bad plan or a bad
input never leaves files half edited. Files are processed concurrently.

With a single input and neither --out nor --write the result is printed to
stdout. With --write or --out a report of the changes is printed instead.
--watch reruns the plan whenever the plan or an input file changes.`,
		Example: `  # Preview the result
  domattr apply plans/cards.yaml site/index.html

  # Rewrite every page in place and show a diff
  domattr apply --write --diff plans/cards.yaml site/*.html

  # Rebuild dist/index.html while editing the plan
  domattr apply --watch --out dist/index.html plans/cards.yaml site/index.html`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write the result to this file (single input only)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write the results back to the input files")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a diff of the changes")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Rerun when the plan or an input changes")
	cmd.MarkFlagsMutuallyExclusive("out", "write")
	cmd.MarkFlagsMutuallyExclusive("watch", "write")

	return cmd
}

func (o *applyOptions) check(paths []string) error {
	stdin := slices.Contains(paths, "-")
	switch {
	case stdin && len(paths) > 1:
		return errors.New("stdin can only be read as the only input")
	case stdin && (o.write || o.watch):
		return errors.New("--write and --watch need a file, not stdin")
	case o.out != "" && len(paths) > 1:
		return errors.New("--out needs a single input; use --write for several")
	case o.out != "" && samePath(o.out, paths[0]):
		return errors.New("--out is the input file; use --write instead")
	case len(paths) > 1 && !o.write && !o.diff:
		return errors.New("several inputs need --write or --diff")
	}
	return nil
}

func runApply(cmd *cobra.Command, planPath string, paths []string, opts *applyOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if err := opts.check(paths); err != nil {
		return err
	}

	if !opts.watch {
		return applyOnce(cmd, cmdCtx, planPath, paths, opts)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %s and %d input(s) (Ctrl+C to stop)", planPath, len(paths)))
	return plan.Watch(ctx, append([]string{planPath}, paths...), cmdCtx.Logger, func() {
		if err := applyOnce(cmd, cmdCtx, planPath, paths, opts); err != nil {
			cmdCtx.Logger.Error("apply failed", "error", err)
			_, _ = fmt.Fprintf(cmdCtx.Renderer.ErrWriter(), "Error: %v\n", err)
		}
	})
}

func applyOnce(cmd *cobra.Command, cmdCtx *CommandContext, planPath string, paths []string, opts *applyOptions) error {
	r := cmdCtx.Renderer

	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}

	results, err := applyAll(cmd, cmdCtx, p, paths)
	if err != nil {
		return err
	}

	if opts.diff {
		changed := false
		for _, res := range results {
			if r.Diff(res.in.Name(), res.before, res.after, 3) {
				changed = true
			}
		}
		if !changed {
			r.Muted("no changes")
		}
	}

	if opts.out == "" && !opts.write {
		if !opts.diff {
			_, _ = fmt.Fprint(r.Writer(), results[0].after)
		}
		return nil
	}

	reports := make([]ReportJSON, 0, len(results))
	for _, res := range results {
		target := res.in.Path
		if opts.out != "" {
			target = opts.out
			if dir := filepath.Dir(target); dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
		}
		if err := writeOutput(target, res.after); err != nil {
			return err
		}
		reports = append(reports, reportJSON(target, res.report))
	}

	if opts.diff {
		return nil
	}
	return renderReports(r, reports)
}

// applyAll parses every input and applies p to each, concurrently. Nothing
// is written here, so a failure in any input leaves all files untouched.
func applyAll(cmd *cobra.Command, cmdCtx *CommandContext, p *plan.Plan, paths []string) ([]applied, error) {
	applier := plan.NewApplier(cmdCtx.Logger)
	results := make([]applied, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			in, err := readInput(cmd, path, cmdCtx.Cfg.ParseMode)
			if err != nil {
				return err
			}
			before := in.Doc.String()
			report, err := applier.Apply(ctx, p, in.Doc)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name(), err)
			}
			results[i] = applied{in: in, before: before, after: in.Doc.String(), report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func reportJSON(file string, report *plan.Report) ReportJSON {
	out := ReportJSON{
		File:    file,
		Steps:   make([]StepJSON, 0, len(report.Steps)),
		Changes: make([]ChangeJSON, 0, len(report.Changes)),
	}
	for _, s := range report.Steps {
		out.Steps = append(out.Steps, StepJSON(s))
	}
	for _, c := range report.Changes {
		out.Changes = append(out.Changes, ChangeJSON(c))
	}
	return out
}

func renderReports(r *output.Renderer, reports []ReportJSON) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(reports)
	}

	for _, rep := range reports {
		r.Header(1, "Applied plan to "+rep.File)
		r.KeyValue("changes", fmt.Sprint(len(rep.Changes)))
		rows := make([][]string, 0, len(rep.Steps))
		for _, s := range rep.Steps {
			rows = append(rows, []string{s.Name, fmt.Sprint(s.Matched), fmt.Sprint(s.Changed)})
		}
		r.Table([]string{"Step", "Matched", "Changed"}, rows)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

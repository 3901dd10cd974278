package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/domattr/internal/cli/output"
	"github.com/leapstack-labs/domattr/internal/plan"
	"github.com/leapstack-labs/domattr/pkg/attr"
	"github.com/spf13/cobra"
)

// ClassesJSON is one element in the JSON output of the classes command.
type ClassesJSON struct {
	Element string   `json:"element"`
	Classes []string `json:"classes"`
}

// NewClassesCommand creates the classes command.
func NewClassesCommand() *cobra.Command {
	var filter filterFlags

	cmd := &cobra.Command{
		Use:   "classes <file|->",
		Short: "List the class tokens of matching elements",
		Long: `List the class tokens of every element matched by the filter flags.

Without --tag, --id or --class the filter from domattr.yaml is used; when
none is configured every element is listed.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown table
Use --output json for machine-readable output.`,
		Example: `  # All classes in a page
  domattr classes index.html

  # Classes of every card, from stdin
  cat index.html | domattr classes --class card -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses(cmd, args[0], &filter)
		},
	}
	filter.register(cmd)

	return cmd
}

func runClasses(cmd *cobra.Command, path string, filter *filterFlags) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	in, err := readInput(cmd, path, cmdCtx.Cfg.ParseMode)
	if err != nil {
		return err
	}

	f := filter.resolve(cmd, cmdCtx.Cfg)
	elements := in.Doc.Elements(f)
	cmdCtx.Logger.Debug("matched elements", "filter", f.String(), "count", len(elements))

	result := make([]ClassesJSON, 0, len(elements))
	for _, el := range elements {
		classes, err := attr.NewClassList(el)
		if err != nil {
			return err
		}
		result = append(result, ClassesJSON{Element: plan.Describe(el), Classes: classes.All()})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}

	r.Header(1, fmt.Sprintf("Classes in %s (%d elements)", in.Name(), len(result)))
	rows := make([][]string, 0, len(result))
	for _, e := range result {
		rows = append(rows, []string{e.Element, strings.Join(e.Classes, " ")})
	}
	r.Table([]string{"Element", "Classes"}, rows)
	return nil
}

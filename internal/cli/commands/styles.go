package commands

import (
	"fmt"

	"github.com/leapstack-labs/domattr/internal/cli/output"
	"github.com/leapstack-labs/domattr/internal/plan"
	"github.com/leapstack-labs/domattr/pkg/attr"
	"github.com/spf13/cobra"
)

// PropertyJSON is one style declaration in JSON output.
type PropertyJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StylesJSON is one element in the JSON output of the styles command.
type StylesJSON struct {
	Element    string         `json:"element"`
	Properties []PropertyJSON `json:"properties"`
}

// NewStylesCommand creates the styles command.
func NewStylesCommand() *cobra.Command {
	var (
		filter     filterFlags
		properties []string
	)

	cmd := &cobra.Command{
		Use:   "styles <file|->",
		Short: "List the inline style declarations of matching elements",
		Long: `List the inline style declarations of every element matched by the
filter flags. Duplicate declarations are shown once, at the position of their
first occurrence with the last value.`,
		Example: `  # Inline styles of the hero element
  domattr styles --id hero index.html

  # Only color and margin, as JSON
  domattr styles --property color --property margin -o json index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStyles(cmd, args[0], &filter, properties)
		},
	}
	filter.register(cmd)
	cmd.Flags().StringSliceVarP(&properties, "property", "p", nil, "Only show these properties (repeatable)")

	return cmd
}

func runStyles(cmd *cobra.Command, path string, filter *filterFlags, properties []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	in, err := readInput(cmd, path, cmdCtx.Cfg.ParseMode)
	if err != nil {
		return err
	}

	f := filter.resolve(cmd, cmdCtx.Cfg)
	elements := in.Doc.Elements(f)
	cmdCtx.Logger.Debug("matched elements", "filter", f.String(), "count", len(elements))

	result := make([]StylesJSON, 0, len(elements))
	for _, el := range elements {
		styles, err := attr.NewStyleMap(el)
		if err != nil {
			return err
		}
		decls := styles.Properties()
		if len(properties) > 0 {
			if decls, err = styles.MultipleProperties(attr.Strings(properties...)); err != nil {
				return err
			}
		}
		entry := StylesJSON{Element: plan.Describe(el), Properties: make([]PropertyJSON, 0, len(decls))}
		for _, d := range decls {
			entry.Properties = append(entry.Properties, PropertyJSON{Name: d.Name, Value: d.Value})
		}
		result = append(result, entry)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}

	r.Header(1, fmt.Sprintf("Styles in %s (%d elements)", in.Name(), len(result)))
	var rows [][]string
	for _, e := range result {
		if len(e.Properties) == 0 {
			rows = append(rows, []string{e.Element, "", ""})
			continue
		}
		for _, p := range e.Properties {
			rows = append(rows, []string{e.Element, p.Name, p.Value})
		}
	}
	r.Table([]string{"Element", "Property", "Value"}, rows)
	return nil
}

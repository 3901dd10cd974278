package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/domattr/internal/cli/config"
	"github.com/leapstack-labs/domattr/internal/cli/output"
	"github.com/leapstack-labs/domattr/pkg/dom"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger stored by the root
// command and builds a renderer on the command's writers.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Input is an HTML source read from a file or stdin.
type Input struct {
	Path string // "-" for stdin
	Data []byte
	Doc  *dom.Document
}

// Name returns a label for the input in diffs and reports.
func (in *Input) Name() string {
	if in.Path == "-" {
		return "<stdin>"
	}
	return in.Path
}

// readInput reads path ("-" for stdin) and parses it in the given mode.
func readInput(cmd *cobra.Command, path, mode string) (*Input, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // user-supplied input path
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := parseHTML(data, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Input{Path: path, Data: data, Doc: doc}, nil
}

// parseHTML parses data as a document or fragment. In auto mode the input
// is a document when it contains an <html> tag or a doctype.
func parseHTML(data []byte, mode string) (*dom.Document, error) {
	switch mode {
	case config.ParseDocument:
		return dom.ParseDocument(bytes.NewReader(data))
	case config.ParseFragment:
		return dom.ParseFragment(bytes.NewReader(data))
	}
	if looksLikeDocument(data) {
		return dom.ParseDocument(bytes.NewReader(data))
	}
	return dom.ParseFragment(bytes.NewReader(data))
}

func looksLikeDocument(data []byte) bool {
	lower := bytes.ToLower(data)
	return bytes.Contains(lower, []byte("<!doctype")) || bytes.Contains(lower, []byte("<html"))
}

// writeOutput writes rendered HTML to path, keeping the existing file mode.
func writeOutput(path, content string) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// filterFlags holds the element filter flags shared by several commands.
type filterFlags struct {
	tag   string
	id    string
	class string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tag, "tag", "", "Only match elements with this tag name")
	cmd.Flags().StringVar(&f.id, "id", "", "Only match the element with this id")
	cmd.Flags().StringVar(&f.class, "class", "", "Only match elements carrying this class")
}

// resolve returns the flag filter when any filter flag was given, otherwise
// the configured default filter.
func (f *filterFlags) resolve(cmd *cobra.Command, cfg *config.Config) dom.Filter {
	flags := cmd.Flags()
	if flags.Changed("tag") || flags.Changed("id") || flags.Changed("class") {
		return dom.Filter{Tag: f.tag, ID: f.id, Class: f.class}
	}
	return dom.Filter{Tag: cfg.Filter.Tag, ID: cfg.Filter.ID, Class: cfg.Filter.Class}
}

// Package config provides configuration management for the domattr CLI.
//
// Values are layered with koanf: built-in defaults, then domattr.yaml (or
// domattr.yml) found in the working directory or one of its parents, then
// DOMATTR_* environment variables, then explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	LogFormat    string `koanf:"log_format"`
	NoColor      bool   `koanf:"no_color"`
	ParseMode    string `koanf:"parse_mode"`
	Filter       Filter `koanf:"filter"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when none was found.
	ProjectRoot string `koanf:"-"`
}

// Filter is the default element filter applied when no --tag, --id or
// --class flag is given.
type Filter struct {
	Tag   string `koanf:"tag"`
	ID    string `koanf:"id"`
	Class string `koanf:"class"`
}

// Parse modes.
const (
	ParseAuto     = "auto"     // fragment unless the input looks like a full document
	ParseDocument = "document" // always wrap in html/head/body
	ParseFragment = "fragment" // never add wrappers
)

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogFormat = "text"
	DefaultParseMode = ParseAuto
)

// Config file names, in lookup order.
var configFileNames = []string{"domattr.yaml", "domattr.yml"}

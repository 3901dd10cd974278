package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	validOutputs    = []string{"auto", "text", "markdown", "json"}
	validLogFormats = []string{"text", "json"}
	validParseModes = []string{ParseAuto, ParseDocument, ParseFragment}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := oneOf("output", c.OutputFormat, validOutputs); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, validLogFormats); err != nil {
		return err
	}
	return oneOf("parse_mode", c.ParseMode, validParseModes)
}

func oneOf(key, value string, valid []string) error {
	if slices.Contains(valid, value) {
		return nil
	}
	return fmt.Errorf("invalid %s %q (use: %s)", key, value, strings.Join(valid, ", "))
}

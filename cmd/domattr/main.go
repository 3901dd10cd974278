// Package main provides the domattr CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/domattr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

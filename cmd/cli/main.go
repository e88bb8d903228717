// Package main is the entry point for the aevi-fee CLI.
package main

import (
	"os"

	"aevi-fee/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

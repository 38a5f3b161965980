// Package main is the entry point for the wasmpod CLI.
package main

import (
	"fmt"
	"os"

	"github.com/wasmkube/wasmpod/cmd/wasmpod/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the catalog CLI: an interactive menu and scripted
// subcommands over a local SQLite game catalog.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "catalog:", err)
		os.Exit(exitCode(err))
	}
}

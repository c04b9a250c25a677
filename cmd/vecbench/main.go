// Package main is the entry point for the vecbench CLI.
//
// All commands live in internal/cli. Build-time variables are injected via
// ldflags and default to "dev", "none" and "unknown".
package main

import (
	"github.com/pavanmanishd/vector/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}

// Package main is the entry point for the gdpdash server.
package main

import "gdpdash/cmd/server/cmd"

// Set by build flags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Version = version
	cmd.Commit = commit
	cmd.Date = date
	cmd.Execute()
}

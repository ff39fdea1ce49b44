// Package main is the entry point for the dailyreco TUI.
//
// Usage:
//
//	dailyreco [flags] [command]
//
// Commands:
//
//	(none)     - Open the journal TUI
//	entries    - List journal entries
//	stats      - Show streak and filler-word stats
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/perthho/dailyReco/cmd/dailyreco/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

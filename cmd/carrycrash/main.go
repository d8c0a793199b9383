package main

import (
	"os"

	"github.com/wonny/carrycrash/cmd/carrycrash/commands"
)

// main is the entry point for the carrycrash CLI:
// go run ./cmd/carrycrash [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

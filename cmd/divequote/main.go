package main

import (
	"os"

	"divequote/cmd/divequote/commands"
)

// ENTRY POINT

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

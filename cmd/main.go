package main

// Main entry point of the application
// Initializes and executes Cobra commands
// Exit status 1 means a chart could not be written

import (
	"fmt"
	"os"

	"activity-charts/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

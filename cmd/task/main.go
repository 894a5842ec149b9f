package main

import (
	"context"
	"fmt"
	"os"

	"task-cli/internal/cli"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns the process exit code
func run() int {
	// Create repository factory based on environment
	factory := NewRepositoryFactory(getEnvironment())

	root := cli.NewRootCommand(factory.APIFactory())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// jumble: project-context MCP server
//
// Scans a workspace for .jumble/project.toml descriptors and answers
// questions about them over the Model Context Protocol, so AI coding tools
// get exact commands, architecture and conventions instead of guessing.
//
// Usage:
//
//	jumble [serve]          # Start MCP server (stdio transport)
//	jumble check [--print]  # Scan once and report projects and load errors
//	jumble version          # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

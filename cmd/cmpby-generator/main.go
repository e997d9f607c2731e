// Package main provides the CLI entrypoint for cmpby-generator.
//
// cmpby-generator is a Go codegen tool that:
//   - Loads Go packages (AST + go/types) or a YAML manifest
//   - Validates the //cmpby and //hashby key lists of annotated types
//   - Generates total-order comparison and hashing code next to them
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
)

var (
	// version is set via -ldflags.
	version = "dev"
	// commit is set via -ldflags.
	commit = ""
)

func main() {
	err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}

		os.Exit(1)
	}
}

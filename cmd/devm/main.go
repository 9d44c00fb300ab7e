// Package main is the entry point for the devm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/devm/cmd/devm/commands"
	"github.com/thoreinstein/devm/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintln(os.Stderr, exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		os.Exit(errors.ExitUser)
	}
}

// Package editor launches the user's configured editor command.
package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrEmptyCommand indicates the editor command is blank.
var ErrEmptyCommand = errors.New("editor command is empty")

// Launch runs the configured editor command with target appended as the
// final argument, inheriting the caller's stdio so terminal editors work.
//
// The command is split on whitespace: the first token is the program, the
// rest are arguments. Shell quoting is intentionally not supported; commands
// like "code -n" or "vim" cover the expected cases.
func Launch(command, target string) error {
	cmd, err := Build(command, target)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// Build constructs the exec.Cmd for the given editor command line and
// target, without running it. Returns ErrEmptyCommand for a blank command.
func Build(command, target string) (*exec.Cmd, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, ErrEmptyCommand
	}

	args := append(parts[1:], target)
	return exec.Command(parts[0], args...), nil
}

// Detect returns a sensible default editor command for the setup flow.
// Fallback chain: $EDITOR → $VISUAL → nano → vi
func Detect() string {
	// Check $EDITOR first (most common)
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Then $VISUAL (for full-screen editors)
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// User-friendly fallback (nano is easier for beginners)
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// POSIX standard fallback (vi is available on all Unix systems)
	return "vi"
}

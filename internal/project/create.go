// Package project implements project creation and discovery under the
// configured projects directory.
package project

import (
	"bytes"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/thoreinstein/devm/internal/config"
	"github.com/thoreinstein/devm/internal/errors"
	"github.com/thoreinstein/devm/internal/git"
	"github.com/thoreinstein/devm/internal/paths"
)

// Type selects the starter layout for a new project.
type Type int

const (
	// TypeBinary scaffolds a runnable program with a main package.
	TypeBinary Type = iota

	// TypeLibrary scaffolds an importable package with no main.
	TypeLibrary
)

func (t Type) String() string {
	if t == TypeLibrary {
		return "library"
	}
	return "binary"
}

// ErrGoToolNotFound indicates the go tool is not on PATH.
var ErrGoToolNotFound = errors.New("go tool not found in PATH")

// ToolError carries the output of a failed scaffolding command.
type ToolError struct {
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return "go mod init failed: " + e.Stderr
	}
	return "go mod init failed: " + e.Err.Error()
}

func (e *ToolError) Unwrap() error { return e.Err }

// CreateParams are the caller-supplied inputs for a new project.
type CreateParams struct {
	// Name is the project (and module) name.
	Name string

	// Type selects the starter layout. Defaults to TypeBinary.
	Type Type
}

// Result describes a successfully created project.
type Result struct {
	// Name is the project name.
	Name string

	// Path is the absolute path of the created project directory.
	Path string
}

// Create scaffolds a new project inside the configured projects directory.
//
// Steps:
//  1. Validate the project name.
//  2. Re-validate the projects directory; time may have passed since the
//     configuration was loaded.
//  3. Refuse a target path that already exists.
//  4. Initialize a Go module by shelling out to go mod init, plus a starter
//     source file matching the project type.
//  5. Best effort: set the global default branch to main and git init the
//     project. Failures here warn and do not fail the creation.
func Create(cfg *config.Record, params CreateParams, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := ValidateName(params.Name); err != nil {
		return nil, err
	}

	root := cfg.ProjectsDirectory()
	if fault := config.ValidateDirectory(root); fault != nil {
		return nil, errors.Wrap(fault, "projects directory invalid")
	}

	target := filepath.Join(root, params.Name)
	if _, err := os.Stat(target); err == nil {
		return nil, errors.Wrapf(errors.ErrProjectExists, "%s", target)
	}

	if err := paths.EnsureDir(target, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating project directory")
	}

	if err := runGoModInit(target, params.Name); err != nil {
		// Leave nothing half-made behind.
		os.RemoveAll(target)
		return nil, err
	}

	if err := writeStarter(target, params); err != nil {
		os.RemoveAll(target)
		return nil, errors.Wrap(err, "writing starter file")
	}

	logger.Info("project scaffolded", "name", params.Name, "type", params.Type.String(), "path", target)

	if err := git.SetDefaultBranch("main"); err != nil {
		logger.Warn("could not set global default branch", "error", err)
	}
	if err := git.Init(target); err != nil {
		logger.Warn("could not initialize git repository", "path", target, "error", err)
	}

	return &Result{Name: params.Name, Path: target}, nil
}

// ValidateName checks a candidate project name: it must start with an ASCII
// letter and contain only ASCII letters, digits, '_' or '-'.
func ValidateName(name string) error {
	if config.IsBlank(name) {
		return errors.Wrap(errors.ErrInvalidProjectName, "name cannot be blank")
	}

	first := name[0]
	if !isASCIILetter(first) {
		return errors.Wrap(errors.ErrInvalidProjectName, "name must start with an ASCII letter")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isASCIILetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '-' {
			continue
		}
		return errors.Wrapf(errors.ErrInvalidProjectName,
			"name can only contain ASCII letters, digits, '_' or '-', got %q", c)
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func runGoModInit(dir, module string) error {
	cmd := exec.Command("go", "mod", "init", module)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrGoToolNotFound
		}
		return &ToolError{Stderr: string(bytes.TrimSpace(stderr.Bytes())), Err: err}
	}
	return nil
}

func writeStarter(dir string, params CreateParams) error {
	if params.Type == TypeLibrary {
		name := packageName(params.Name)
		content := "// Package " + name + " is a work in progress.\npackage " + name + "\n"
		return os.WriteFile(filepath.Join(dir, name+".go"), []byte(content), 0o644)
	}

	content := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hello from " +
		params.Name + "\")\n}\n"
	return os.WriteFile(filepath.Join(dir, "main.go"), []byte(content), 0o644)
}

// packageName lowercases a project name and strips characters that are not
// valid in a Go package identifier.
func packageName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			out = append(out, c)
		}
	}
	if len(out) == 0 || out[0] >= '0' && out[0] <= '9' {
		return "pkg" + string(out)
	}
	return string(out)
}

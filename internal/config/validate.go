package config

import (
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Fault identifies the specific reason a field or directory failed validation.
type Fault int

const (
	// FaultEmptyField indicates a required field is blank after trimming.
	FaultEmptyField Fault = iota

	// FaultDirectoryMissing indicates the path does not exist on disk.
	FaultDirectoryMissing

	// FaultNotADirectory indicates the path exists but is not a directory.
	FaultNotADirectory

	// FaultNotReadable indicates the directory cannot be listed.
	FaultNotReadable

	// FaultNotWritable indicates a probe file could not be created inside
	// the directory.
	FaultNotWritable
)

// String returns a stable identifier for the fault, used in logs.
func (f Fault) String() string {
	switch f {
	case FaultEmptyField:
		return "empty-field"
	case FaultDirectoryMissing:
		return "directory-missing"
	case FaultNotADirectory:
		return "not-a-directory"
	case FaultNotReadable:
		return "not-readable"
	case FaultNotWritable:
		return "not-writable"
	default:
		return "unknown"
	}
}

// ValidationError is a structured reason a candidate directory or field fails
// acceptance. Field names the configuration field, Path the offending path
// when the fault concerns a directory.
type ValidationError struct {
	Fault Fault
	Field string
	Path  string
}

func (e *ValidationError) Error() string {
	switch e.Fault {
	case FaultEmptyField:
		return "field '" + e.Field + "' cannot be blank"
	case FaultDirectoryMissing:
		return "projects directory does not exist: " + e.Path
	case FaultNotADirectory:
		return "projects directory is not a directory: " + e.Path
	case FaultNotReadable:
		return "projects directory is not readable: " + e.Path
	case FaultNotWritable:
		return "projects directory is not writable: " + e.Path
	default:
		return "validation failed for field '" + e.Field + "'"
	}
}

// IsBlank reports whether s is empty after trimming leading and trailing
// whitespace. Both configuration fields use this definition of blankness.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateDirectory checks that path names a usable projects directory: it
// must be non-blank, exist, be a directory, be listable, and accept a probe
// file. Checks run in that order and the first failure short-circuits, so a
// nonexistent path is always reported as missing rather than unreadable.
//
// The function inspects filesystem state but never logs and never mutates
// anything except a probe file it creates and immediately removes (removal
// is best-effort). It is the single source of truth for directory
// acceptance: both the load and save paths call it.
func ValidateDirectory(path string) *ValidationError {
	if IsBlank(path) {
		return &ValidationError{Fault: FaultEmptyField, Field: FieldProjectsDirectory}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ValidationError{Fault: FaultDirectoryMissing, Field: FieldProjectsDirectory, Path: path}
		}
		// Stat failed for another reason (e.g. permission on a parent).
		return &ValidationError{Fault: FaultNotReadable, Field: FieldProjectsDirectory, Path: path}
	}

	if !info.IsDir() {
		return &ValidationError{Fault: FaultNotADirectory, Field: FieldProjectsDirectory, Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return &ValidationError{Fault: FaultNotReadable, Field: FieldProjectsDirectory, Path: path}
	}
	_, err = f.Readdirnames(1)
	f.Close()
	if err != nil && err != io.EOF {
		return &ValidationError{Fault: FaultNotReadable, Field: FieldProjectsDirectory, Path: path}
	}

	probe, err := os.CreateTemp(path, ".devm-probe-*")
	if err != nil {
		return &ValidationError{Fault: FaultNotWritable, Field: FieldProjectsDirectory, Path: path}
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}

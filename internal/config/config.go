package config

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/devm/internal/paths"
	"github.com/thoreinstein/devm/pkg/fileutil"
)

// Configuration field names as they appear in the on-disk file.
const (
	FieldProjectsDirectory = "projects_directory"
	FieldEditorCommand     = "editor_command"
)

// FilePerm is the permission applied to the configuration file.
const FilePerm = 0o600

// Record is an immutable, fully validated configuration. It is constructed
// only by Store.Load and Store.CreateAndPersist; every Record in existence
// had both fields non-blank and a usable projects directory at validation
// time. The directory guarantee is point-in-time only: consumers acting on
// it later should re-run ValidateDirectory defensively.
//
// Records are safe to share by pointer across goroutines; an "update" is a
// fresh CreateAndPersist producing a new Record, never a mutation.
type Record struct {
	projectsDirectory string
	editorCommand     string
}

// ProjectsDirectory returns the validated projects root directory.
func (r *Record) ProjectsDirectory() string { return r.projectsDirectory }

// EditorCommand returns the editor launch command, trimmed.
func (r *Record) EditorCommand() string { return r.editorCommand }

// SetupReason says why initial setup is required.
type SetupReason int

const (
	// ReasonMissingFile means no configuration file exists yet.
	ReasonMissingFile SetupReason = iota

	// ReasonIncompleteData means the file exists but a required value is
	// absent, blank, or no longer valid.
	ReasonIncompleteData
)

func (r SetupReason) String() string {
	switch r {
	case ReasonMissingFile:
		return "missing-file"
	case ReasonIncompleteData:
		return "incomplete-data"
	default:
		return "unknown"
	}
}

// LoadState is the top-level classification of a load attempt.
type LoadState int

const (
	// StateReady means a validated Record is available.
	StateReady LoadState = iota

	// StateNeedsSetup means the user must (re-)enter the required fields.
	StateNeedsSetup
)

// LoadResult is the outcome of a successful Load call. Exactly one of the
// two shapes holds: StateReady with a non-nil Record, or StateNeedsSetup
// with a Reason (and, when the reason is a validation downgrade, the
// specific Fault that triggered it).
type LoadResult struct {
	State  LoadState
	Record *Record
	Reason SetupReason

	// Fault carries the specific validation failure behind an
	// incomplete-data downgrade, when one is known. The UI can use it to
	// point at the exact corrective action; it is informational only.
	Fault *ValidationError
}

// CorruptError means the configuration file exists but cannot be parsed.
// Recovery requires repairing or deleting the file; re-entering values
// through the setup flow will not help until the file is writable again
// under the canonical name.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return "configuration file is corrupt: " + e.Path + ": " + e.Err.Error()
}

func (e *CorruptError) Unwrap() error { return e.Err }

// SerializeError means the two-field record could not be encoded. This
// should be unreachable for two plain strings, but the failure is surfaced
// rather than dropped.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return "encoding configuration: " + e.Err.Error()
}

func (e *SerializeError) Unwrap() error { return e.Err }

// fileRecord is the on-disk shape. Pointer fields distinguish an absent key
// from a present-but-empty value during decode.
type fileRecord struct {
	ProjectsDirectory *string `yaml:"projects_directory"`
	EditorCommand     *string `yaml:"editor_command"`
}

// persistedRecord is the shape written on save.
type persistedRecord struct {
	ProjectsDirectory string `yaml:"projects_directory"`
	EditorCommand     string `yaml:"editor_command"`
}

// Store owns the canonical configuration path and performs all reads and
// writes against it.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store for the given path. A nil logger discards
// diagnostic output.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// DefaultStore creates a Store backed by the canonical per-user path,
// <ConfigHome>/devm/config.yaml.
func DefaultStore(logger *slog.Logger) *Store {
	return NewStore(paths.ConfigFile(), logger)
}

// Path returns the canonical configuration file path this store uses.
func (s *Store) Path() string { return s.path }

// Load reads and classifies the on-disk configuration.
//
// Returns:
//   - a StateReady result when the file parses and both fields validate
//   - a StateNeedsSetup result when the file is missing, a required key is
//     absent, a field is blank, or the projects directory no longer
//     validates (the fault is logged and threaded through, never fatal)
//   - a *CorruptError when the file exists but the YAML is malformed
//   - a wrapped I/O error for unexpected read failures
//
// Load never mutates state and may be called any number of times; a missing
// file always classifies as needing setup, never as an error.
func (s *Store) Load() (*LoadResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{State: StateNeedsSetup, Reason: ReasonMissingFile}, nil
		}
		return nil, errors.Wrap(err, "reading configuration file")
	}

	var raw fileRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}

	// A key the parser never saw is recoverable: the user re-enters values.
	if raw.ProjectsDirectory == nil {
		return s.needsSetup(FieldProjectsDirectory, nil), nil
	}
	if raw.EditorCommand == nil {
		return s.needsSetup(FieldEditorCommand, nil), nil
	}

	// Re-run full validation even though the file parsed cleanly: a value
	// can be syntactically present but semantically blank, or point at a
	// directory that no longer exists.
	if IsBlank(*raw.ProjectsDirectory) {
		fault := &ValidationError{Fault: FaultEmptyField, Field: FieldProjectsDirectory}
		return s.needsSetup(FieldProjectsDirectory, fault), nil
	}
	if IsBlank(*raw.EditorCommand) {
		fault := &ValidationError{Fault: FaultEmptyField, Field: FieldEditorCommand}
		return s.needsSetup(FieldEditorCommand, fault), nil
	}
	if fault := ValidateDirectory(*raw.ProjectsDirectory); fault != nil {
		return s.needsSetup(FieldProjectsDirectory, fault), nil
	}

	return &LoadResult{
		State: StateReady,
		Record: &Record{
			projectsDirectory: *raw.ProjectsDirectory,
			editorCommand:     *raw.EditorCommand,
		},
	}, nil
}

// needsSetup builds an incomplete-data result, logging the downgrade.
func (s *Store) needsSetup(field string, fault *ValidationError) *LoadResult {
	if fault != nil {
		s.logger.Warn("configuration validation failed, setup required",
			"field", field, "fault", fault.Fault.String())
	} else {
		s.logger.Warn("configuration missing required field, setup required",
			"field", field)
	}
	return &LoadResult{State: StateNeedsSetup, Reason: ReasonIncompleteData, Fault: fault}
}

// CreateAndPersist validates the two fields, writes them durably to the
// canonical path, and returns a fresh immutable Record reflecting exactly
// what was written.
//
// Validation failures surface as *ValidationError before any disk I/O.
// Encoding failures surface as *SerializeError. The write itself is
// temp-file + fsync + rename: if any step fails, the previous file on disk
// is untouched and the error is returned wrapped; a partially written file
// is never visible under the canonical name.
func (s *Store) CreateAndPersist(projectsDirectory, editorCommand string) (*Record, error) {
	editorCommand = strings.TrimSpace(editorCommand)
	if editorCommand == "" {
		return nil, &ValidationError{Fault: FaultEmptyField, Field: FieldEditorCommand}
	}
	if fault := ValidateDirectory(projectsDirectory); fault != nil {
		return nil, fault
	}

	out := persistedRecord{
		ProjectsDirectory: projectsDirectory,
		EditorCommand:     editorCommand,
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, &SerializeError{Err: err}
	}

	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return nil, errors.Wrap(err, "creating configuration directory")
	}
	if err := fileutil.AtomicWriteFile(s.path, data, FilePerm); err != nil {
		return nil, errors.Wrap(err, "persisting configuration")
	}

	s.logger.Info("configuration saved", "path", s.path)

	return &Record{
		projectsDirectory: projectsDirectory,
		editorCommand:     editorCommand,
	}, nil
}

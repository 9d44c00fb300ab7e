package project

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/devm/internal/errors"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "myproj", wantErr: false},
		{name: "with digits", input: "proj2", wantErr: false},
		{name: "with underscore", input: "my_proj", wantErr: false},
		{name: "with dash", input: "my-proj", wantErr: false},
		{name: "blank", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "starts with digit", input: "9start", wantErr: true},
		{name: "contains space", input: "bad name", wantErr: true},
		{name: "bad character", input: "bad*char", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidProjectName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate_InvalidName(t *testing.T) {
	cfg := testRecord(t, t.TempDir())

	_, err := Create(cfg, CreateParams{Name: "bad name"}, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidProjectName)
}

func TestCreate_ExistingTarget(t *testing.T) {
	root := t.TempDir()
	cfg := testRecord(t, root)
	require.NoError(t, os.Mkdir(filepath.Join(root, "taken"), 0o755))

	_, err := Create(cfg, CreateParams{Name: "taken"}, nil)
	assert.ErrorIs(t, err, errors.ErrProjectExists)
}

func TestCreate_VanishedProjectsDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "projects")
	require.NoError(t, os.Mkdir(root, 0o755))
	cfg := testRecord(t, root)

	// The directory validated at setup time but has since disappeared.
	require.NoError(t, os.RemoveAll(root))

	_, err := Create(cfg, CreateParams{Name: "proj"}, nil)
	require.Error(t, err)
}

func TestCreate_Binary(t *testing.T) {
	requireGo(t)
	root := t.TempDir()
	cfg := testRecord(t, root)

	res, err := Create(cfg, CreateParams{Name: "hello-tool"}, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hello-tool"), res.Path)

	assert.FileExists(t, filepath.Join(res.Path, "go.mod"))
	assert.FileExists(t, filepath.Join(res.Path, "main.go"))
}

func TestCreate_Library(t *testing.T) {
	requireGo(t)
	root := t.TempDir()
	cfg := testRecord(t, root)

	res, err := Create(cfg, CreateParams{Name: "My-Lib", Type: TypeLibrary}, nil)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(res.Path, "go.mod"))
	assert.FileExists(t, filepath.Join(res.Path, "mylib.go"))
	assert.NoFileExists(t, filepath.Join(res.Path, "main.go"))
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mylib", "mylib"},
		{"My-Lib", "mylib"},
		{"a_b-c", "abc"},
		{"X9", "x9"},
	}

	for _, tt := range tests {
		if got := packageName(tt.in); got != tt.want {
			t.Errorf("packageName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func requireGo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not available")
	}
}

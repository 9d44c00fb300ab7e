// Package git provides Git operation wrappers for project scaffolding and
// status checks.
package git

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// IsRepo reports whether dir contains a .git directory.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a new git repository in dir.
func Init(dir string) error {
	cmd := exec.Command("git", "-C", dir, "init", "--quiet")
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "git init failed: %s", bytes.TrimSpace(out))
	}
	return nil
}

// SetDefaultBranch sets the global default branch for new repositories.
func SetDefaultBranch(name string) error {
	cmd := exec.Command("git", "config", "--global", "init.defaultBranch", name)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "git config failed: %s", bytes.TrimSpace(out))
	}
	return nil
}

// IsDirty reports whether the repository at dir has uncommitted changes,
// including untracked files. A directory that is not a git repository is
// reported as clean.
func IsDirty(dir string) (bool, error) {
	if !IsRepo(dir) {
		return false, nil
	}

	cmd := exec.Command("git", "-C", dir, "status", "--porcelain", "--untracked-files=all")
	out, err := cmd.Output()
	if err != nil {
		return false, errors.Wrap(err, "git status failed")
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

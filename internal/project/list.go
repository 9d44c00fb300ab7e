package project

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/devm/internal/config"
	"github.com/thoreinstein/devm/internal/errors"
	"github.com/thoreinstein/devm/internal/git"
	"github.com/thoreinstein/devm/pkg/fileutil"
)

// Kind identifies how a project directory was recognized.
type Kind string

const (
	// KindGo marks a directory containing a go.mod file.
	KindGo Kind = "go"

	// KindRust marks a directory containing a Cargo.toml manifest.
	KindRust Kind = "rust"
)

// Info describes a discovered project.
type Info struct {
	// Name is the directory name.
	Name string `json:"name"`

	// Path is the full path to the project directory.
	Path string `json:"path"`

	// Kind says which manifest identified the project.
	Kind Kind `json:"kind"`

	// Module is the Go module path or the Cargo package name, when the
	// manifest could be parsed; empty otherwise.
	Module string `json:"module,omitempty"`

	// Dirty reports whether the project's git repository has uncommitted
	// changes, including untracked files. Always false for non-repos.
	Dirty bool `json:"dirty"`
}

// cargoManifest is the subset of Cargo.toml we read.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// List discovers projects in the configured projects directory.
//
// A project is any immediate subdirectory holding a go.mod or a Cargo.toml.
// Per-entry failures (unreadable manifest, git errors) degrade with a
// warning rather than failing the whole listing. Results are sorted by
// name, case-insensitively.
func List(cfg *config.Record, logger *slog.Logger) ([]Info, error) {
	if logger == nil {
		logger = slog.Default()
	}

	root := cfg.ProjectsDirectory()
	if fault := config.ValidateDirectory(root); fault != nil {
		return nil, errors.Wrap(fault, "projects directory invalid")
	}

	logger.Debug("listing projects", "root", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, "reading projects directory")
	}

	var projects []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(root, entry.Name())
		info, ok := classify(path, entry.Name(), logger)
		if !ok {
			continue
		}

		dirty, err := git.IsDirty(path)
		if err != nil {
			logger.Warn("git status check failed, assuming clean", "path", path, "error", err)
		}
		info.Dirty = dirty

		projects = append(projects, info)
	}

	sort.Slice(projects, func(i, j int) bool {
		return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
	})
	return projects, nil
}

// classify inspects a directory for a recognized project manifest.
func classify(path, name string, logger *slog.Logger) (Info, bool) {
	if goMod := filepath.Join(path, "go.mod"); isFile(goMod) {
		info := Info{Name: name, Path: path, Kind: KindGo}
		if module, err := goModulePath(goMod); err != nil {
			logger.Warn("could not parse go.mod", "path", goMod, "error", err)
		} else {
			info.Module = module
		}
		return info, true
	}

	if manifest := filepath.Join(path, "Cargo.toml"); isFile(manifest) {
		info := Info{Name: name, Path: path, Kind: KindRust}
		if pkg, err := cargoPackageName(manifest); err != nil {
			logger.Warn("could not parse Cargo.toml", "path", manifest, "error", err)
		} else {
			info.Module = pkg
		}
		return info, true
	}

	return Info{}, false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// goModulePath extracts the module path from the first module directive.
func goModulePath(path string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "module" {
			return strings.Trim(fields[1], `"`), nil
		}
	}
	return "", errors.Newf("no module directive in %s", path)
}

// cargoPackageName extracts package.name from a Cargo manifest.
func cargoPackageName(path string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return "", err
	}

	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return "", errors.Wrap(err, "parsing Cargo.toml")
	}
	if manifest.Package.Name == "" {
		return "", errors.Newf("no package.name in %s", path)
	}
	return manifest.Package.Name, nil
}

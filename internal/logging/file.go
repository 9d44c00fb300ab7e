package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/thoreinstein/devm/internal/errors"
	"github.com/thoreinstein/devm/internal/paths"
)

// fileInit guards the process-wide log file. The file is opened at most once
// per process; later calls reuse the first handler and ignore their
// arguments.
var fileInit struct {
	once    sync.Once
	handler slog.Handler
	err     error
}

// InitFile opens the process-wide log file and returns a JSON handler
// appending to it, creating parent directories as needed. If path is empty,
// the standard location beside the configuration file is used.
//
// Returns:
//   - (handler, true, nil) if this call opened the file
//   - (handler, false, nil) if the file had already been opened
//   - (nil, false, err) if the very first call failed; later calls keep
//     returning the same error
func InitFile(path string, level slog.Level) (slog.Handler, bool, error) {
	opened := false
	fileInit.once.Do(func() {
		fileInit.handler, fileInit.err = openFileHandler(path, level)
		if fileInit.err == nil {
			opened = true
		}
	})
	return fileInit.handler, opened, fileInit.err
}

func openFileHandler(path string, level slog.Level) (slog.Handler, error) {
	if path == "" {
		path = paths.LogFile()
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "opening log file")
	}

	return slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}), nil
}

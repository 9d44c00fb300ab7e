package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/devm/internal/editor"
	"github.com/thoreinstein/devm/internal/errors"
	"github.com/thoreinstein/devm/internal/logging"
	"github.com/thoreinstein/devm/internal/project"
)

var (
	createLib  bool
	createOpen bool
)

func init() {
	createCmd.Flags().BoolVar(&createLib, "lib", false, "scaffold a library instead of a binary")
	createCmd.Flags().BoolVar(&createOpen, "open", false, "open the new project in the configured editor")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new project in the projects directory",
	Long: `Create a new project directory under the configured projects
directory and initialize it as a Go module with a starter source file and
a git repository.

The name must start with an ASCII letter and contain only ASCII letters,
digits, '_' or '-'. Creation refuses to touch an existing directory.`,
	Example: `  # A runnable program
  devm create my-tool

  # A library, opened in the editor right away
  devm create my-lib --lib --open`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	rec, err := loadReady(cmd)
	if err != nil {
		return err
	}

	logger := logging.FromContext(cmd.Context())

	params := project.CreateParams{Name: args[0]}
	if createLib {
		params.Type = project.TypeLibrary
	}

	res, err := project.Create(rec, params, logger)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrInvalidProjectName):
			return errors.NewUserError(err, "Pick a name like my-tool or my_lib")
		case errors.Is(err, errors.ErrProjectExists):
			return errors.NewUserError(err, "Pick another name or remove the existing directory")
		case errors.Is(err, project.ErrGoToolNotFound):
			return errors.NewSystemError(err, "Install Go and make sure 'go' is on PATH")
		default:
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Created", res.Path)

	if createOpen {
		if err := editor.Launch(rec.EditorCommand(), res.Path); err != nil {
			return errors.NewUserError(errors.Wrap(err, "project created but editor failed"),
				"Check the configured editor command with: devm config")
		}
	}
	return nil
}

package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/devm/internal/config"
	"github.com/thoreinstein/devm/internal/editor"
	"github.com/thoreinstein/devm/internal/errors"
)

var (
	setupDir    string
	setupEditor string
)

func init() {
	setupCmd.Flags().StringVar(&setupDir, "dir", "", "projects directory (skips the prompt)")
	setupCmd.Flags().StringVar(&setupEditor, "editor", "", "editor command (skips the prompt)")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the projects directory and editor command",
	Long: `Collect and persist the two required settings: the directory your
projects live in and the command used to launch your editor.

The projects directory must already exist and be readable and writable.
The editor command is a program name optionally followed by arguments,
for example "code -n" or "vim".

Values can be passed with --dir and --editor for non-interactive use;
otherwise devm prompts for anything missing. The configuration is written
atomically, so an interrupted save never corrupts a previous good file.`,
	Example: `  # Interactive
  devm setup

  # Non-interactive
  devm setup --dir ~/projects --editor "code -n"`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, _ []string) error {
	store := configStore(cmd)

	// Classify the current state to frame the prompts; a corrupt file is
	// not overwritten behind the user's back.
	res, err := store.Load()
	if err != nil {
		var corrupt *config.CorruptError
		if errors.As(err, &corrupt) {
			return errors.NewUserError(err,
				"Fix or delete "+store.Path()+" first, then re-run: devm setup")
		}
		return errors.NewSystemError(err, "Check permissions on "+store.Path())
	}

	out := cmd.OutOrStdout()
	switch {
	case res.State == config.StateReady:
		fmt.Fprintln(out, "Updating existing configuration.")
	case res.Reason == config.ReasonMissingFile:
		fmt.Fprintln(out, "Welcome! Let's set up devm.")
	default:
		fmt.Fprintln(out, "Configuration incomplete. Please re-enter the required values.")
		if res.Fault != nil {
			fmt.Fprintln(out, "Problem:", res.Fault.Error())
		}
	}

	in := bufio.NewReader(cmd.InOrStdin())

	dir := setupDir
	if dir == "" {
		dir, err = promptLine(in, out, "Projects directory", previousDir(res))
		if err != nil {
			return err
		}
	}

	editorCmd := setupEditor
	if editorCmd == "" {
		editorCmd, err = promptLine(in, out, "Editor command", previousEditor(res))
		if err != nil {
			return err
		}
	}

	rec, err := store.CreateAndPersist(dir, editorCmd)
	if err != nil {
		var fault *config.ValidationError
		if errors.As(err, &fault) {
			return errors.NewUserError(err, setupSuggestion(fault))
		}
		return errors.NewSystemError(err, "Check permissions on "+store.Path())
	}

	fmt.Fprintln(out, "Configuration saved to", store.Path())
	fmt.Fprintln(out, "  projects directory:", rec.ProjectsDirectory())
	fmt.Fprintln(out, "  editor command:    ", rec.EditorCommand())
	return nil
}

// promptLine asks for a single value, offering def as the default.
func promptLine(in *bufio.Reader, out io.Writer, label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "reading input")
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// previousDir returns the projects directory to offer as a prompt default.
func previousDir(res *config.LoadResult) string {
	if res.State == config.StateReady {
		return res.Record.ProjectsDirectory()
	}
	return ""
}

// previousEditor returns the editor command to offer as a prompt default,
// falling back to the detected system editor.
func previousEditor(res *config.LoadResult) string {
	if res.State == config.StateReady {
		return res.Record.EditorCommand()
	}
	return editor.Detect()
}

// setupSuggestion maps a validation fault to the corrective action.
func setupSuggestion(fault *config.ValidationError) string {
	switch fault.Fault {
	case config.FaultEmptyField:
		return "Provide a non-empty value for " + fault.Field
	case config.FaultDirectoryMissing:
		return "Create the directory first: mkdir -p " + fault.Path
	case config.FaultNotADirectory:
		return fault.Path + " is a file; point devm at a directory"
	case config.FaultNotReadable, config.FaultNotWritable:
		return "Fix permissions on " + fault.Path
	default:
		return "Adjust the value and try again"
	}
}

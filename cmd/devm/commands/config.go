package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/devm/internal/errors"
)

var configJSON bool

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Long: `Show the canonical configuration file path and, when a valid
configuration exists, its values.

Exits non-zero when setup is still required or the file is corrupt.`,
	RunE: runConfig,
}

type configView struct {
	Path              string `json:"path"`
	ProjectsDirectory string `json:"projects_directory"`
	EditorCommand     string `json:"editor_command"`
}

func runConfig(cmd *cobra.Command, _ []string) error {
	store := configStore(cmd)

	rec, err := loadReady(cmd)
	if err != nil {
		return err
	}

	view := configView{
		Path:              store.Path(),
		ProjectsDirectory: rec.ProjectsDirectory(),
		EditorCommand:     rec.EditorCommand(),
	}

	out := cmd.OutOrStdout()
	if configJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}

	fmt.Fprintln(out, "Configuration:", view.Path)
	fmt.Fprintln(out, "  projects directory:", view.ProjectsDirectory)
	fmt.Fprintln(out, "  editor command:    ", view.EditorCommand)
	return nil
}

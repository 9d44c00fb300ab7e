package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/devm/internal/errors"
	"github.com/thoreinstein/devm/internal/logging"
	"github.com/thoreinstein/devm/internal/project"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in the projects directory",
	Long: `List the projects found directly under the configured projects
directory. A project is any subdirectory holding a go.mod or Cargo.toml.

Projects whose git repository has uncommitted changes (including untracked
files) are marked with '*'.`,
	Example: `  devm list

  # Machine-readable
  devm list --json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	rec, err := loadReady(cmd)
	if err != nil {
		return err
	}

	projects, err := project.List(rec, logging.FromContext(cmd.Context()))
	if err != nil {
		return errors.NewUserError(err, "Re-check the projects directory with: devm config")
	}

	out := cmd.OutOrStdout()

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(projects), "encoding JSON")
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found in", rec.ProjectsDirectory())
		return nil
	}

	dirtyMark := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, p := range projects {
		mark := " "
		if p.Dirty {
			mark = dirtyMark("*")
		}
		if p.Module != "" {
			fmt.Fprintf(out, "%s %-24s %-5s %s (%s)\n", mark, p.Name, p.Kind, p.Path, p.Module)
		} else {
			fmt.Fprintf(out, "%s %-24s %-5s %s\n", mark, p.Name, p.Kind, p.Path)
		}
	}
	return nil
}

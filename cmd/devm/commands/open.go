package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/devm/internal/editor"
	"github.com/thoreinstein/devm/internal/errors"
	"github.com/thoreinstein/devm/internal/logging"
	"github.com/thoreinstein/devm/internal/project"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open [name]",
	Short: "Open a project in the configured editor",
	Long: `Open a project from the projects directory in the configured
editor. With a name argument the matching project opens directly;
without one, a fuzzy finder lets you pick interactively.`,
	Example: `  # Pick interactively
  devm open

  # Open a known project
  devm open my-tool`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	rec, err := loadReady(cmd)
	if err != nil {
		return err
	}

	projects, err := project.List(rec, logging.FromContext(cmd.Context()))
	if err != nil {
		return errors.NewUserError(err, "Re-check the projects directory with: devm config")
	}
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects found in", rec.ProjectsDirectory())
		return nil
	}

	var target *project.Info
	if len(args) == 1 {
		target = findByName(projects, args[0])
		if target == nil {
			return errors.NewUserError(errors.Newf("no project named %q", args[0]),
				"Run 'devm list' to see available projects")
		}
	} else {
		target, err = pickProject(projects)
		if err != nil {
			return err
		}
		if target == nil {
			// Selection aborted; not an error.
			return nil
		}
	}

	if err := editor.Launch(rec.EditorCommand(), target.Path); err != nil {
		return errors.NewUserError(err, "Check the configured editor command with: devm config")
	}
	return nil
}

func findByName(projects []project.Info, name string) *project.Info {
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i]
		}
	}
	return nil
}

func pickProject(projects []project.Info) (*project.Info, error) {
	idx, err := fuzzyfinder.Find(
		projects,
		func(i int) string {
			return projects[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			p := projects[i]
			state := "clean"
			if p.Dirty {
				state = "uncommitted changes"
			}
			return fmt.Sprintf("Name: %s\nKind: %s\nPath: %s\nModule: %s\nGit: %s",
				p.Name, p.Kind, p.Path, p.Module, state)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &projects[idx], nil
}

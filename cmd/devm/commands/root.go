// Package commands implements the CLI commands for devm.
package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/devm/internal/config"
	"github.com/thoreinstein/devm/internal/errors"
	"github.com/thoreinstein/devm/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"log file path (default: devm.log beside the configuration file)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"configuration file path (default: standard per-user location)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("devm version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// initEnv wires DEVM_* environment variables as fallbacks for the
// presentation-layer flags. The configuration file itself never reads the
// environment.
func initEnv() {
	viper.SetEnvPrefix("DEVM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

var rootCmd = &cobra.Command{
	Use:   "devm",
	Short: "Manage your local development projects",
	Long: `devm is a small manager for the projects under your projects
directory. It remembers two things for you - where your projects live and
how to launch your editor - and keeps that configuration valid on disk.

Run 'devm setup' once to configure the tool, then use 'devm create',
'devm list' and 'devm open' day to day.`,
	Example: `  # First-time configuration
  devm setup

  # Scaffold a new project
  devm create my-tool

  # What's in the projects directory, and what has uncommitted changes?
  devm list

  # Fuzzy-pick a project and open it in the configured editor
  devm open`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		level = logging.LevelFromVerbosity(verbosity)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(viper.GetString("log-format")) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	// Every invocation also logs to the JSON log file beside the
	// configuration file (or --log-file / DEVM_LOG_FILE). An unopenable
	// file degrades to console-only logging.
	fileHandler, _, err := logging.InitFile(viper.GetString("log-file"), level)
	if err != nil {
		slog.New(primaryHandler).Warn("file logging unavailable", "error", err)
	} else {
		handlers = append(handlers, fileHandler)
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// configStore returns the Store for the effective configuration path.
func configStore(cmd *cobra.Command) *config.Store {
	logger := logging.FromContext(cmd.Context())
	if path := viper.GetString("config"); path != "" {
		return config.NewStore(path, logger)
	}
	return config.DefaultStore(logger)
}

// loadReady loads the configuration and converts every non-ready outcome
// into a user-facing error: needs-setup points at 'devm setup', a corrupt
// file points at manual repair, and unexpected I/O surfaces as a system
// error.
func loadReady(cmd *cobra.Command) (*config.Record, error) {
	store := configStore(cmd)

	res, err := store.Load()
	if err != nil {
		var corrupt *config.CorruptError
		if errors.As(err, &corrupt) {
			return nil, errors.NewUserError(err,
				"Fix or delete "+store.Path()+", then run: devm setup")
		}
		return nil, errors.NewSystemError(err, "Check permissions on "+store.Path())
	}

	if res.State == config.StateNeedsSetup {
		if res.Fault != nil {
			return nil, errors.NewSetupError(errors.Wrap(errors.ErrSetupRequired, res.Fault.Error()))
		}
		return nil, errors.NewSetupError(errors.ErrSetupRequired)
	}

	return res.Record, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/config"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/logging"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/project"
	"github.com/alexiusacademia/goframe/internal/version"
)

var (
	envFile  string
	logLevel string

	cfg    = config.Default()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "goframe",
	Short: "Frame load case combination tool",
	Long: `goframe - Go Frame Load Combiner

A CLI tool that reads a frame model (nodes, bars, supports, load cases),
checks that the structure can be analysed and combines the internal effort
diagrams of the load cases following EN 1990.

This tool helps structural engineers:
  - Verify connectivity, coincident nodes, zero-length bars and supports
  - Generate ULS and SLS combinations from the ψ factors of each category
  - Combine piecewise polynomial diagrams and nodal results
  - Plot or export the diagram of any member

Settings are read from the environment or a .env file:
  GOFRAME_LOG_LEVEL, GOFRAME_TOL_ABS, GOFRAME_TOL_REL,
  GOFRAME_WORKERS, GOFRAME_DECIMALS`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			level, ok := logging.ParseLevel(logLevel)
			if !ok {
				return errors.Newf(errors.CodeConfig, "--log-level: unknown level %q", logLevel)
			}
			loaded.LogLevel = level
		}
		loaded.Apply()
		cfg = loaded
		logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		logger.Debug("tolerance abs=%g rel=%g, %d workers", cfg.Tolerance.Abs, cfg.Tolerance.Rel, cfg.Workers)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   goframe v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Frame Load Combiner                                  ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'goframe --help' to see available commands.")
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Read settings from this file instead of ./.env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override GOFRAME_LOG_LEVEL (error, warn, info, debug)")
}

// loadProject reads a model file and builds its project with the configured
// logger and worker count.
func loadProject(path string) (*project.Project, *model.Model, error) {
	m, err := model.Load(path)
	if err != nil {
		return nil, nil, err
	}
	p, err := m.Build(project.WithLogger(logger), project.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("loaded %s: %d nodes, %d bars, %d actions",
		path, p.Structure().NodeCount(), p.Structure().BarCount(), len(p.Actions()))
	return p, m, nil
}

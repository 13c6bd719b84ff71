// Package cli implements the nine command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/nine/internal/metrics"
	"github.com/mesh-intelligence/nine/internal/paths"
	"github.com/mesh-intelligence/nine/pkg/nine"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by the invocation (exit 1).
func userError(err error) error { return &exitError{code: exitUserError, err: err} }

// sysError marks err as an environment or storage failure (exit 2).
func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by the root command to a process exit code.
// Errors without a code come from cobra argument parsing and count as user
// errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
	metrics   bool
}

// app is the state shared by subcommands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *zap.Logger
	metrics   *metrics.Metrics

	// newLogger builds the logger; tests replace it.
	newLogger func(verbose bool) (*zap.Logger, error)
}

// NewRootCmd creates the top-level "nine" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{newLogger: buildLogger})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "nine",
		Short:   "Reach 9 from a start number using a handful of operations",
		Long:    "nine generates, stores and replays number puzzles whose goal is always 9.",
		Version: nine.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.metrics && a.metrics != nil {
				if err := a.printMetrics(cmd.ErrOrStderr()); err != nil {
					return sysError(err)
				}
			}
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir, or $"+paths.EnvConfigDir+")")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.flags.metrics, "metrics", false, "print metric counters to stderr when the command finishes")

	root.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newOpsCmd(a),
		newSeedCmd(a),
		newPageCmd(a),
		newPlayCmd(a),
		newStatsCmd(a),
	)
	return root
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	logger, err := a.newLogger(a.flags.verbose)
	if err != nil {
		return sysError(fmt.Errorf("initialize logger: %w", err))
	}

	a.configDir = configDir
	a.config = cfg
	a.logger = logger
	a.metrics = metrics.New()
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("config_file", cfg.ConfigFileUsed()))
	return nil
}

// printMetrics writes the counters gathered by this invocation, as JSON in
// --json mode and in the Prometheus text format otherwise.
func (a *app) printMetrics(w io.Writer) error {
	if !a.flags.jsonMode {
		return a.metrics.WriteText(w)
	}
	counters, err := a.metrics.Snapshot()
	if err != nil {
		return err
	}
	return printJSON(w, counters)
}

// buildLogger returns a production zap logger writing JSON to stderr. Only
// warnings are shown unless verbose selects debug.
func buildLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "nine:", err)
	}
	return exitCode(err)
}

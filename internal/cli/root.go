// Package cli implements the ifcmodel command-line interface: open a model
// snapshot, read elements by ID or type, resolve properties and references,
// and export enumerated models to JSONL or SQLite.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ifcmodel/internal/metrics"
	"github.com/mesh-intelligence/ifcmodel/internal/paths"
	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Output formats for --output.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	output    string
	logLevel  string
	metrics   bool
}

var flags rootFlags

// session holds state built by the root command before a subcommand runs.
type session struct {
	configDir string
	dataDir   string
	config    types.Config
	logger    logr.Logger
	registry  *prometheus.Registry
	recorder  *metrics.Recorder
}

var current session

// NewRootCmd creates the top-level "ifcmodel" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ifcmodel",
		Short: "Inspect IFC models through a parsing engine",
		Long: `ifcmodel opens an IFC model through a parsing engine and reads its
elements by express ID or type, resolves property sets and references, and
exports the enumerated model to JSONL or SQLite.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return dumpMetrics(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory for exports (default: $(CWD)/.ifcmodel-db)")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", outputJSON, "output format: json or yaml")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	root.PersistentFlags().BoolVar(&flags.metrics, "metrics", false, "print engine metrics to stderr after the command")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTypesCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newPropsCmd())
	root.AddCommand(newDerefCmd())
	root.AddCommand(newHeaderCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newExportsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup resolves directories, loads configuration, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if flags.output != outputJSON && flags.output != outputYAML {
		return usageError(fmt.Errorf("unknown output format %q (valid: json, yaml)", flags.output))
	}

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	st, err := loadSettings(configDir)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		st.LogLevel = flags.logLevel
	}

	cfg, err := st.modelConfig()
	if err != nil {
		return usageError(err)
	}
	logger, err := newLogger(st.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return usageError(err)
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, st.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	current = session{
		configDir: configDir,
		dataDir:   dataDir,
		config:    cfg,
		logger:    logger,
	}
	if flags.metrics {
		current.registry = prometheus.NewRegistry()
		if current.recorder, err = metrics.NewRecorder(current.registry); err != nil {
			return err
		}
	}
	return nil
}

// cliError carries an exit code.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// usageError marks err as caused by the caller's input.
func usageError(err error) error {
	return &cliError{code: exitUserError, err: err}
}

// userErrors are failures caused by the command's arguments or input file.
var userErrors = []error{
	types.ErrInvalidArgument,
	types.ErrUnknownType,
	types.ErrParse,
	types.ErrLineNotFound,
	types.ErrNoDataSection,
	types.ErrCircularReference,
	types.ErrMaxDepth,
	os.ErrNotExist,
}

// exitCode maps err to a process exit code.
func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// dumpMetrics writes the session's metrics, if enabled, to w.
func dumpMetrics(w io.Writer) error {
	if current.registry == nil {
		return nil
	}
	return writeMetrics(w, current.registry)
}

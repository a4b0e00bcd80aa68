package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ifcmodel/internal/paths"
	"github.com/mesh-intelligence/ifcmodel/internal/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and the export store",
		Long:  "Create the configuration directory with a default config.yaml, then create the export database in the data directory.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dbPath := paths.ExportDBPath(current.dataDir)
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("initialize export store: %w", err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("finalize export store: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config: %s\n", filepath.Join(current.configDir, configFileExt))
	fmt.Fprintf(out, "exports: %s\n", dbPath)
	fmt.Fprintln(out, "ifcmodel initialized successfully")
	return nil
}

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ifcmodel/internal/jsonl"
	"github.com/mesh-intelligence/ifcmodel/internal/paths"
	"github.com/mesh-intelligence/ifcmodel/internal/sqlite"
	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// exportSummary is printed after a successful export.
type exportSummary struct {
	Source   string `json:"source" yaml:"source"`
	Elements int    `json:"elements" yaml:"elements"`
	Skipped  int    `json:"skipped" yaml:"skipped"`
	JSONL    string `json:"jsonl,omitempty" yaml:"jsonl,omitempty"`
	DB       string `json:"db,omitempty" yaml:"db,omitempty"`
	ExportID string `json:"export_id,omitempty" yaml:"export_id,omitempty"`
}

func newExportCmd() *cobra.Command {
	var jsonlPath, dbPath string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export every element to JSONL or SQLite",
		Long: `Export enumerates the model and writes the loaded elements to a JSONL
file (--jsonl), an SQLite export store (--db), or both. Without either flag
the elements are stored in the export database under the data directory.

Example:
  ifcmodel export wall.json --jsonl wall.jsonl
  ifcmodel export wall.json --db exports.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openModel(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeModel(h)

			res, err := h.GetAllElements()
			if err != nil {
				return fmt.Errorf("enumerate elements: %w", err)
			}
			summary := exportSummary{
				Source:   filepath.Base(args[0]),
				Elements: len(res.Elements),
				Skipped:  res.Skipped,
			}

			if jsonlPath != "" {
				if err := jsonl.WriteElements(jsonlPath, res.Elements); err != nil {
					return fmt.Errorf("write jsonl: %w", err)
				}
				summary.JSONL = jsonlPath
			}
			if dbPath == "" && jsonlPath == "" {
				dbPath = paths.ExportDBPath(current.dataDir)
			}
			if dbPath != "" {
				store, err := sqlite.Open(dbPath)
				if err != nil {
					return fmt.Errorf("open export store: %w", err)
				}
				defer store.Close()
				if summary.ExportID, err = store.SaveExport(summary.Source, res); err != nil {
					return fmt.Errorf("save export: %w", err)
				}
				summary.DB = dbPath
			}
			current.logger.V(1).Info("export finished", "elements", summary.Elements, "skipped", summary.Skipped)
			return printResult(cmd, summary)
		},
	}
	cmd.Flags().StringVar(&jsonlPath, "jsonl", "", "write elements to this JSONL file")
	cmd.Flags().StringVar(&dbPath, "db", "", "store elements in this SQLite database")
	return cmd
}

func newExportsCmd() *cobra.Command {
	var dbPath, exportID, typeName string
	var remove bool
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "List or query stored exports",
		Long: `Exports lists the exports in the SQLite export store. With --id it prints
the elements of one export, optionally filtered by --type; with --id and
--delete it removes the export.

Example:
  ifcmodel exports
  ifcmodel exports --id 0192... --type IfcWall`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = paths.ExportDBPath(current.dataDir)
			}
			store, err := sqlite.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open export store: %w", err)
			}
			defer store.Close()

			if exportID == "" {
				if remove || typeName != "" {
					return usageError(fmt.Errorf("--delete and --type require --id"))
				}
				exports, err := store.Exports()
				if err != nil {
					return fmt.Errorf("list exports: %w", err)
				}
				return printResult(cmd, exports)
			}
			if remove {
				if err := store.DeleteExport(exportID); err != nil {
					return usageError(fmt.Errorf("delete export: %w", err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted export %s\n", exportID)
				return nil
			}
			var elts []types.Element
			if typeName == "" {
				elts, err = store.Elements(exportID)
			} else {
				elts, err = store.ElementsOfType(exportID, typeName)
			}
			if err != nil {
				return usageError(fmt.Errorf("read export: %w", err))
			}
			return printResult(cmd, elts)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite export database (default: data dir)")
	cmd.Flags().StringVar(&exportID, "id", "", "export ID to read")
	cmd.Flags().StringVar(&typeName, "type", "", "only elements of this type name")
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the export given by --id")
	return cmd
}

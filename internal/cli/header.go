package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ifcmodel/internal/header"
)

func newHeaderCmd() *cobra.Command {
	var entries bool
	cmd := &cobra.Command{
		Use:   "header <file>",
		Short: "Print the STEP header of an IFC file",
		Long: `Header prints everything before the DATA section of a STEP physical file.
With --entries the header records are printed one per element.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			hdr, err := header.Extract(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if entries {
				return printResult(cmd, header.Entries(hdr))
			}
			_, err = cmd.OutOrStdout().Write(hdr)
			return err
		},
	}
	cmd.Flags().BoolVar(&entries, "entries", false, "print header records as a list")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDerefCmd() *cobra.Command {
	var deep bool
	cmd := &cobra.Command{
		Use:   "deref <file> <id>",
		Short: "Resolve the typed values of an element",
		Long: `Deref reads the raw element and replaces its typed values with the values
the engine resolves them to. With --deep, references are replaced by the
records they point to, following nested references up to max_deref_depth.

Example:
  ifcmodel deref wall.json 8 --deep`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			h, err := openModel(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeModel(h)

			raw, err := h.GetElementProperties(cmd.Context(), id, false)
			if err != nil {
				return fmt.Errorf("get element %d: %w", id, err)
			}
			resolve := h.Dereference
			if deep {
				resolve = h.DereferenceDeep
			}
			out, err := resolve(raw)
			if err != nil {
				return fmt.Errorf("dereference element %d: %w", id, err)
			}
			return printResult(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&deep, "deep", false, "replace references with their target records")
	return cmd
}

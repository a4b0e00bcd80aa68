package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

func newListCmd() *cobra.Command {
	var typeName string
	var ids bool
	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List elements, optionally filtered by type",
		Long: `List enumerates every element in the model, or only those of one type
when --type is given. Lines the engine fails to load are skipped and
reported on stderr.

Example:
  ifcmodel list wall.json
  ifcmodel list wall.json --type IfcWall
  ifcmodel list wall.json --ids`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openModel(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeModel(h)

			if typeName != "" {
				elts, err := h.GetElementsOfType(typeName)
				if err != nil {
					return fmt.Errorf("list %s: %w", typeName, err)
				}
				if ids {
					return printResult(cmd, expressIDs(elts))
				}
				return printResult(cmd, elts)
			}

			res, err := h.GetAllElements()
			if err != nil {
				return fmt.Errorf("list elements: %w", err)
			}
			if res.Skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d line(s)\n", res.Skipped)
			}
			if ids {
				return printResult(cmd, types.SortedIDs(res.Elements))
			}
			return printResult(cmd, res.Elements)
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "only list elements of this IFC type (e.g. IfcWall)")
	cmd.Flags().BoolVar(&ids, "ids", false, "print express IDs only")
	return cmd
}

func expressIDs(elts []types.Element) []int {
	out := make([]int, 0, len(elts))
	for _, e := range elts {
		if id, ok := e.ExpressID(); ok {
			out = append(out, id)
		}
	}
	return out
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var deref bool
	cmd := &cobra.Command{
		Use:   "get <file> <id>",
		Short: "Get an element by express ID",
		Long: `Get opens the model and prints the element with the given express ID.

Example:
  ifcmodel get wall.json 3
  ifcmodel get wall.json 3 --deref -o yaml`,
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

			elt, err := h.GetElement(id)
			if err != nil {
				return fmt.Errorf("get element %d: %w", id, err)
			}
			if deref {
				if elt, err = h.Dereference(elt); err != nil {
					return fmt.Errorf("dereference element %d: %w", id, err)
				}
			}
			return printResult(cmd, elt)
		},
	}
	cmd.Flags().BoolVar(&deref, "deref", false, "replace typed values with their resolved values")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPropsCmd() *cobra.Command {
	var recursive, psets bool
	cmd := &cobra.Command{
		Use:   "props <file> <id>",
		Short: "Print the properties of an element",
		Long: `Props prints the engine's item properties for an element. With --psets
the element's property sets are attached under "__psets".

Example:
  ifcmodel props wall.json 3 --psets --recursive`,
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

			get := h.GetElementProperties
			if psets {
				get = h.GetElementPropertiesAndSets
			}
			props, err := get(cmd.Context(), id, recursive)
			if err != nil {
				return fmt.Errorf("properties of %d: %w", id, err)
			}
			return printResult(cmd, props)
		},
	}
	cmd.Flags().BoolVar(&recursive, "recursive", false, "resolve nested references")
	cmd.Flags().BoolVar(&psets, "psets", false, "attach property sets")
	return cmd
}

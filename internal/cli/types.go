package cli

import (
	"github.com/spf13/cobra"
)

// typeEntry is one row of the types command output.
type typeEntry struct {
	Name string `json:"name" yaml:"name"`
	Code uint32 `json:"code" yaml:"code"`
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the configured IFC type names and codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := current.config.Types
			names := table.Names()
			out := make([]typeEntry, 0, len(names))
			for _, name := range names {
				code, _ := table.Code(name)
				out = append(out, typeEntry{Name: name, Code: code})
			}
			return printResult(cmd, out)
		},
	}
}

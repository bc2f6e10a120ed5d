package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor/plugins"
)

func tableCmd() *cobra.Command {
	var (
		rows   int
		cols   int
		minify bool
	)

	cmd := cobra.Command{
		Use:   "table",
		Short: "Print an empty table styled with the configured border policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getConfig()

			table, err := plugins.BuildTable(rows, cols, getIdentityResolver(c), tableStyle(c))
			if err != nil {
				return err
			}

			return writeDocument(cmd, &document.Document{Children: []document.Node{table}}, minify)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 2, "Number of rows.")
	cmd.Flags().IntVar(&cols, "cols", 2, "Number of columns.")
	cmd.Flags().BoolVar(&minify, "minify", false, "Minify the output.")

	return &cmd
}

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/qedit/pkg/document"
)

func treeCmd() *cobra.Command {
	var section string

	cmd := cobra.Command{
		Use:   "tree <file|-|url>",
		Short: "Print the document tree of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getConfig()

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			selector, err := sectionSelector(c, section)
			if err != nil {
				return err
			}

			doc, err := parseDocument(args[0], data, markupOptions(c, getIdentityResolver(c), selector, false))
			if err != nil {
				return errors.Wrap(err, "failed to deserialize source")
			}

			_, err = cmd.OutOrStdout().Write([]byte(document.Dump(doc)))
			return errors.Wrap(err, "failed to write result")
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Only print the named section of the page.")

	return &cmd
}

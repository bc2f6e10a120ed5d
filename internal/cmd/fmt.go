package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func fmtCmd() *cobra.Command {
	var (
		section  string
		sanitize bool
		minify   bool
	)

	cmd := cobra.Command{
		Use:   "fmt <file|-|url>",
		Short: "Rewrite an HTML document in canonical form",
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

			opts := markupOptions(c, getIdentityResolver(c), selector, sanitize)
			doc, err := parseDocument(args[0], data, opts)
			if err != nil {
				return errors.Wrap(err, "failed to deserialize source")
			}

			return writeDocument(cmd, doc, minify)
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Only format the named section of the page.")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Sanitize the input before parsing.")
	cmd.Flags().BoolVar(&minify, "minify", false, "Minify the output.")

	return &cmd
}

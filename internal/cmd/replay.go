package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/qedit/internal/log"
	"github.com/stateful/qedit/internal/replay"
	"github.com/stateful/qedit/pkg/document"
)

func replayCmd() *cobra.Command {
	var (
		scriptPath string
		printTree  bool
	)

	cmd := cobra.Command{
		Use:   "replay [file|-|url]",
		Short: "Apply an editing script to a document",
		Long: `Apply an editing script to a document and print the result.

Without a file, the script starts from a document with one empty paragraph.
See package replay for the list of commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getConfig()
			ids := getIdentityResolver(c)

			doc := document.NewDocument(ids)
			if len(args) == 1 {
				data, err := readInput(cmd, args[0])
				if err != nil {
					return err
				}
				doc, err = parseDocument(args[0], data, markupOptions(c, ids, "", false))
				if err != nil {
					return errors.Wrap(err, "failed to deserialize source")
				}
			}

			script, err := os.Open(scriptPath)
			if err != nil {
				return errors.Wrapf(err, "failed to open script %q", scriptPath)
			}
			defer func() { _ = script.Close() }()

			e := newEditor(c, doc, ids)
			r := replay.New(
				e,
				replay.WithLogger(log.Get()),
				replay.WithTableStyle(tableStyle(c)),
				replay.WithMarkupOptions(markupOptions(c, ids, "", false)),
			)
			if err := r.Run(cmd.Context(), script); err != nil {
				return err
			}

			if printTree {
				_, err := cmd.OutOrStdout().Write([]byte(document.Dump(e.Document())))
				return errors.Wrap(err, "failed to write result")
			}
			return writeDocument(cmd, e.Document(), false)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to the editing script.")
	cmd.Flags().BoolVar(&printTree, "tree", false, "Print the document tree instead of HTML.")
	_ = cmd.MarkFlagRequired("script")

	return &cmd
}

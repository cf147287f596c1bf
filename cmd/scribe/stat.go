package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/scribe/internal/filestore"
)

func (c *cli) newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <file>",
		Short: "Show how scribe reads a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := filestore.NewStore(filestore.WithEditorOptions(editorOptions(c.cfg)...))
			doc, err := store.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeStat(cmd.OutOrStdout(), doc)
		},
	}
}

func writeStat(out io.Writer, doc *filestore.Document) error {
	ed := doc.Editor()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "path:\t%s\n", doc.Path())
	fmt.Fprintf(tw, "id:\t%s\n", doc.ID)
	fmt.Fprintf(tw, "language:\t%s\n", doc.Language().Name())
	if prefix := doc.Language().LineComment(); prefix != "" {
		fmt.Fprintf(tw, "comment:\t%s\n", prefix)
	}
	fmt.Fprintf(tw, "lines:\t%d\n", ed.LenLines())
	fmt.Fprintf(tw, "chars:\t%d\n", ed.LenChars())
	fmt.Fprintf(tw, "bytes:\t%d\n", len(doc.Bytes()))
	fmt.Fprintf(tw, "line ending:\t%s\n", doc.LineEnding())
	fmt.Fprintf(tw, "bom:\t%t\n", doc.HasBOM())
	fmt.Fprintf(tw, "modified:\t%s\n", doc.DiskModTime().Format("2006-01-02 15:04:05"))
	return tw.Flush()
}

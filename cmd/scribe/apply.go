package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/scribe/internal/clipboard"
	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/engine/tracking"
	"github.com/dshills/scribe/internal/filestore"
	"github.com/dshills/scribe/internal/highlight"
	"github.com/dshills/scribe/internal/script"
)

func (c *cli) newApplyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <file> <script.yaml>",
		Short: "Run a YAML edit script against a file",
		Long: `Run a YAML edit script against a file and save the result.

Each step names one action: find, replace, replace_all, goto, insert,
type, move, select, cursor, block, block_insert or do. Positions are
1-based "line:col". With --dry-run the file is left alone and the change
is printed as a unified diff.

Example script:
  steps:
    - find: oldName
    - replace_all: newName
    - goto: "1:1"
    - insert: "// generated\n"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.apply(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], dryRun)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print a unified diff instead of writing the file")
	return cmd
}

func (c *cli) apply(ctx context.Context, out io.Writer, path, scriptPath string, dryRun bool) error {
	s, err := script.Load(scriptPath)
	if err != nil {
		return err
	}

	// Scripts run headless, so copy and paste share a private clipboard.
	opts := append(editorOptions(c.cfg), engine.WithClipboard(clipboard.NewMemory()))
	store := filestore.NewStore(filestore.WithEditorOptions(opts...))
	doc, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	if s.Language != "" {
		lang, err := highlight.Lookup(s.Language)
		if err != nil {
			return err
		}
		doc.SetLanguage(lang)
	}

	ed := doc.Editor()
	res, err := s.Run(ctx, ed)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}

	if dryRun {
		name := filepath.ToSlash(path)
		_, err := io.WriteString(out, tracking.UnifiedDiff(ed.SavedDiff(), "a/"+name, "b/"+name))
		return err
	}
	if !ed.IsDirty() {
		fmt.Fprintf(out, "%s: unchanged\n", path)
		return nil
	}
	if err := store.Save(ctx, doc); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d steps, %d replaced\n", path, res.Steps, res.Replaced)
	return nil
}

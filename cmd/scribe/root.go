package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/log"
)

// cli holds the state shared by every subcommand.
type cli struct {
	configPath string
	logPath    string
	logLevel   string

	cfg      *config.Config
	closeLog func()
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{}
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	c.teardown()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scribe",
		Short: "A text editing engine with multi-cursor and block selection",
		Long: `scribe edits text files through an editing engine with undo coalescing,
multiple cursors and block selection.

Examples:
  # Open a file in the terminal
  scribe view main.go

  # Preview a scripted edit, then apply it
  scribe apply --dry-run main.go rename.yaml
  scribe apply main.go rename.yaml

  # Show what scribe detects about a file
  scribe stat main.go`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"config file (default: ~/.config/scribe/config.toml)")
	root.PersistentFlags().StringVar(&c.logPath, "log", "",
		"write a log to this file (overrides log.path)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "",
		"log level: debug, info, warn or error (overrides log.level)")

	root.AddCommand(
		c.newApplyCmd(),
		c.newStatCmd(),
		c.newViewCmd(),
	)
	return root
}

// setup loads the configuration and opens the log.
func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.cfg = cfg

	path := c.logPath
	if path == "" {
		path = cfg.Log.Path
	}
	if path == "" {
		return nil
	}

	levelName := c.logLevel
	if levelName == "" {
		levelName = cfg.Log.Level
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}

	closeLog, err := log.Init(path)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	c.closeLog = closeLog
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "scribe starting", "version", version, "config", c.configPath)
	return nil
}

func (c *cli) teardown() {
	if c.closeLog != nil {
		c.closeLog()
		c.closeLog = nil
	}
}

// editorOptions turns the editor settings into engine options.
func editorOptions(cfg *config.Config) []engine.Option {
	return []engine.Option{
		engine.WithTabWidth(cfg.Editor.TabWidth),
		engine.WithPageSize(cfg.Editor.PageSize),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndo),
		engine.WithCoalesceWindow(cfg.Editor.CoalesceWindow.Duration),
		engine.WithAutoIndent(cfg.Editor.AutoIndent),
		engine.WithAutoBrackets(cfg.Editor.AutoBrackets),
		engine.WithCaseSensitiveSearch(cfg.Search.CaseSensitive),
		engine.WithFolding(cfg.Editor.Folding),
		engine.WithWordWrap(wrapColumns(cfg.Editor)),
	}
}

func wrapColumns(ec config.EditorConfig) int {
	if !ec.WordWrap {
		return 0
	}
	return ec.WrapWidth
}

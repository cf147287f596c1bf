package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/scribe/internal/clipboard"
	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/filestore"
	"github.com/dshills/scribe/internal/highlight"
	"github.com/dshills/scribe/internal/log"
	"github.com/dshills/scribe/internal/render"
)

func (c *cli) newViewCmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Edit a file in the terminal",
		Long: `Edit a file in the terminal. A file that does not exist yet is created
on the first save.

Keys:
  Ctrl+S save            Ctrl+Q quit            Ctrl+R reload from disk
  Ctrl+Z undo            Ctrl+Y redo            Ctrl+A select all
  Ctrl+C/X/V copy/cut/paste                     Ctrl+D duplicate line
  Ctrl+/ toggle comment  Ctrl+B block mode      Ctrl+F find
  Ctrl+N/P next/previous match                  Esc clear
  Ctrl+Up/Down add cursor                       Alt+Up/Down move line
  Ctrl+K toggle fold     Ctrl+T fold all        Ctrl+O unfold all
  Ctrl+W toggle word wrap; clicking a line number toggles its fold.
  Shift+motion extends the selection; in block mode it grows the block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.view(cmd.Context(), args[0], !noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not watch the file for external changes")
	return cmd
}

func (c *cli) view(ctx context.Context, path string, watch bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}

	opts := []filestore.Option{
		filestore.WithEditorOptions(append(editorOptions(c.cfg), engine.WithClipboard(clipboard.New()))...),
	}
	var watcher *filestore.Watcher
	if watch {
		watcher, err = filestore.NewWatcher()
		if err != nil {
			log.Warn(log.CatWatcher, "file watching disabled", "error", err)
		} else {
			defer watcher.Close()
			opts = append(opts, filestore.WithWatcher(watcher))
		}
	}
	store := filestore.NewStore(opts...)

	v, err := openViewer(ctx, screen, store, path, c.cfg)
	if err != nil {
		return err
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()

	var events <-chan filestore.Event
	var errs <-chan error
	if watcher != nil {
		events, errs = watcher.Events(), watcher.Errors()
	}
	return v.run(ctx, events, errs)
}

// viewer is an interactive editing session on one document.
type viewer struct {
	screen  tcell.Screen
	store   *filestore.Store
	doc     *filestore.Document
	ed      *engine.Editor
	hl      *highlight.Highlighter
	painter *render.Painter

	// newPath is where an untitled document is first saved.
	newPath string

	message     string
	finding     bool
	query       []rune
	confirmQuit bool
	quit        bool
}

// openViewer opens path, or starts an empty document that will be saved
// there.
func openViewer(ctx context.Context, screen tcell.Screen, store *filestore.Store, path string, cfg *config.Config) (*viewer, error) {
	doc, err := store.Open(ctx, path)
	newPath := ""
	switch {
	case errors.Is(err, fs.ErrNotExist):
		doc = store.New()
		newPath = path
	case err != nil:
		return nil, err
	}
	v := newViewer(screen, store, doc, cfg)
	v.newPath = newPath
	if newPath != "" {
		v.message = "new file"
		if lang := highlight.Detect(path); !lang.IsPlainText() {
			doc.SetLanguage(lang)
			if v.hl != nil {
				v.hl.SetLanguage(lang)
			}
		}
	}
	return v, nil
}

func newViewer(screen tcell.Screen, store *filestore.Store, doc *filestore.Document, cfg *config.Config) *viewer {
	v := &viewer{
		screen: screen,
		store:  store,
		doc:    doc,
		ed:     doc.Editor(),
	}
	painterOpts := []render.Option{render.WithTabWidth(cfg.Editor.TabWidth)}
	if cfg.Highlight.Enabled {
		v.hl = highlight.New(doc.Language(),
			highlight.WithTheme(cfg.Highlight.Style),
			highlight.WithCacheTTL(cfg.Highlight.CacheTTL.Duration))
		v.ed.OnInvalidate(v.hl.Invalidate)
		painterOpts = append(painterOpts, render.WithTheme(v.hl.Theme()))
	}
	v.painter = render.New(screen, painterOpts...)
	return v
}

// run processes terminal and file events until the user quits or ctx
// ends.
func (v *viewer) run(ctx context.Context, fileEvents <-chan filestore.Event, fileErrs <-chan error) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	v.resize()
	v.paint()
	for !v.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			v.handleEvent(ctx, ev)
		case fe, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			v.handleFileEvent(ctx, fe)
		case err, ok := <-fileErrs:
			if !ok {
				fileErrs = nil
				continue
			}
			log.Warn(log.CatWatcher, "watch error", "error", err)
		}
		v.paint()
	}
	return nil
}

func (v *viewer) handleEvent(ctx context.Context, ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ctx, e)
	case *tcell.EventMouse:
		v.handleMouse(e)
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	}
}

// resize keeps page motions one line short of a full screen.
func (v *viewer) resize() {
	v.ed.SetPageSize(max(v.painter.TextHeight()-1, 1))
}

func (v *viewer) paint() {
	snap := v.ed.Snapshot()
	frame := render.Frame{
		Snapshot: snap,
		Name:     v.name(),
		Message:  v.message,
	}
	if v.finding {
		frame.Message = "Find: " + string(v.query)
	}
	if v.hl != nil && !v.doc.Language().IsPlainText() {
		spans, err := v.hl.Highlight(snap.Text)
		if err == nil {
			frame.Spans = spans
		}
	}
	v.painter.Paint(frame)
}

func (v *viewer) name() string {
	if v.newPath != "" {
		return v.newPath
	}
	return v.doc.Name()
}

func (v *viewer) handleKey(ctx context.Context, ev *tcell.EventKey) {
	if v.finding {
		v.handlePrompt(ev)
		return
	}

	mod := ev.Modifiers()
	extend := mod&tcell.ModShift != 0
	ctrl := mod&tcell.ModCtrl != 0
	alt := mod&tcell.ModAlt != 0

	key := normalizeKey(ev)
	v.message = ""
	if key != tcell.KeyCtrlQ {
		v.confirmQuit = false
	}

	switch key {
	case tcell.KeyCtrlQ:
		if v.ed.Modified() && !v.confirmQuit {
			v.confirmQuit = true
			v.message = "unsaved changes, Ctrl+Q again to quit"
			return
		}
		v.quit = true
	case tcell.KeyCtrlS:
		v.save(ctx)
	case tcell.KeyCtrlR:
		v.reload(ctx)
	case tcell.KeyCtrlZ:
		if !v.ed.Undo() {
			v.message = "nothing to undo"
		}
	case tcell.KeyCtrlY:
		if !v.ed.Redo() {
			v.message = "nothing to redo"
		}
	case tcell.KeyCtrlC:
		v.report(v.ed.Copy())
	case tcell.KeyCtrlX:
		v.report(v.ed.Cut())
	case tcell.KeyCtrlV:
		v.report(v.ed.Paste())
	case tcell.KeyCtrlA:
		v.ed.SelectAll()
	case tcell.KeyCtrlD:
		v.ed.DuplicateLine()
	case tcell.KeyCtrlUnderscore:
		if !v.ed.ToggleComment() {
			v.message = "no comment syntax for " + v.doc.Language().Name()
		}
	case tcell.KeyCtrlB:
		v.ed.ToggleBlockSelection()
	case tcell.KeyCtrlK:
		if !v.ed.ToggleFold() {
			v.message = "nothing to fold"
		}
	case tcell.KeyCtrlT:
		v.ed.FoldAll()
	case tcell.KeyCtrlO:
		v.ed.UnfoldAll()
	case tcell.KeyCtrlW:
		if v.ed.ToggleWordWrap() {
			v.message = "wrap on"
		} else {
			v.message = "wrap off"
		}
	case tcell.KeyCtrlF:
		v.finding = true
		v.query = v.query[:0]
	case tcell.KeyCtrlN, tcell.KeyF3:
		if extend {
			v.ed.FindPrev()
		} else {
			v.ed.FindNext()
		}
		v.message = v.ed.SearchStatus()
	case tcell.KeyCtrlP:
		v.ed.FindPrev()
		v.message = v.ed.SearchStatus()
	case tcell.KeyEscape:
		v.ed.ClearSearch()
		v.ed.CollapseCursors()
		v.ed.ClearSelection()

	case tcell.KeyLeft:
		if ctrl {
			v.ed.MoveWordLeft(extend)
		} else {
			v.ed.MoveLeft(extend)
		}
	case tcell.KeyRight:
		if ctrl {
			v.ed.MoveWordRight(extend)
		} else {
			v.ed.MoveRight(extend)
		}
	case tcell.KeyUp:
		switch {
		case alt:
			v.ed.MoveLineUp()
		case ctrl:
			v.ed.AddCursorAbove()
		default:
			v.ed.MoveUp(extend)
		}
	case tcell.KeyDown:
		switch {
		case alt:
			v.ed.MoveLineDown()
		case ctrl:
			v.ed.AddCursorBelow()
		default:
			v.ed.MoveDown(extend)
		}
	case tcell.KeyHome:
		if ctrl {
			v.ed.MoveToBufferStart(extend)
		} else {
			v.ed.MoveToLineStartSmart(extend)
		}
	case tcell.KeyEnd:
		if ctrl {
			v.ed.MoveToBufferEnd(extend)
		} else {
			v.ed.MoveToLineEnd(extend)
		}
	case tcell.KeyPgUp:
		v.ed.MovePageUp(extend)
	case tcell.KeyPgDn:
		v.ed.MovePageDown(extend)

	case tcell.KeyEnter:
		v.typeRune('\n')
	case tcell.KeyTab:
		v.typeRune('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.ed.DeleteBackward()
	case tcell.KeyDelete:
		if !v.ed.DeleteBlockSelection() {
			v.ed.DeleteForward()
		}
	case tcell.KeyRune:
		v.typeRune(ev.Rune())
	}
}

// normalizeKey maps a rune typed with Ctrl to its control key, since
// terminals report Ctrl+letter either way.
func normalizeKey(ev *tcell.EventKey) tcell.Key {
	key := ev.Key()
	if key != tcell.KeyRune || ev.Modifiers()&tcell.ModCtrl == 0 {
		return key
	}
	switch r := ev.Rune(); {
	case r >= 'a' && r <= 'z':
		return tcell.KeyCtrlA + tcell.Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return tcell.KeyCtrlA + tcell.Key(r-'A')
	case r == '/' || r == '_':
		return tcell.KeyCtrlUnderscore
	}
	return key
}

func (v *viewer) typeRune(r rune) {
	if v.ed.IsBlockMode() {
		v.ed.InsertTextAtBlock(string(r))
		return
	}
	v.ed.TypeChar(r)
}

// handlePrompt edits the find query.
func (v *viewer) handlePrompt(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.finding = false
		v.message = ""
	case tcell.KeyEnter:
		v.finding = false
		if v.ed.Find(string(v.query)) == 0 {
			v.message = "not found: " + string(v.query)
			return
		}
		v.message = v.ed.SearchStatus()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(v.query); n > 0 {
			v.query = v.query[:n-1]
		}
	case tcell.KeyRune:
		v.query = append(v.query, ev.Rune())
	}
}

func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	snap := v.ed.Snapshot()
	if line, ok := v.painter.GutterLine(snap, x, y); ok {
		v.ed.ToggleFoldAt(line)
		return
	}
	pos, ok := v.painter.ScreenToPosition(snap, x, y)
	if !ok {
		return
	}
	mod := ev.Modifiers()
	if mod&tcell.ModAlt != 0 {
		v.ed.AddCursorAt(pos.Line, pos.Col)
		return
	}
	v.ed.SetCursorPosition(pos.Line, pos.Col, mod&tcell.ModShift != 0)
}

func (v *viewer) handleFileEvent(ctx context.Context, ev filestore.Event) {
	change, ok := v.store.ExternalChange(ev)
	if !ok || change.Doc != v.doc {
		return
	}
	switch {
	case change.Removed:
		v.message = "file removed on disk"
	case v.ed.Modified():
		v.message = "file changed on disk, Ctrl+R reloads"
	default:
		if err := v.store.Reload(ctx, v.doc, false); err != nil {
			v.report(err)
			return
		}
		v.message = "reloaded"
	}
}

func (v *viewer) save(ctx context.Context) {
	var err error
	if v.newPath != "" {
		err = v.store.SaveAs(ctx, v.doc, v.newPath)
		if err == nil {
			v.newPath = ""
			if v.hl != nil {
				v.hl.SetLanguage(v.doc.Language())
			}
		}
	} else {
		err = v.store.Save(ctx, v.doc)
	}
	if err != nil {
		v.report(err)
		return
	}
	v.message = "saved " + v.doc.Name()
}

func (v *viewer) reload(ctx context.Context) {
	if v.newPath != "" {
		v.message = "not saved yet"
		return
	}
	if err := v.store.Reload(ctx, v.doc, true); err != nil {
		v.report(err)
		return
	}
	v.message = "reloaded"
}

// report shows err on the status line.
func (v *viewer) report(err error) {
	if err == nil {
		return
	}
	v.message = err.Error()
	log.Warn(log.CatEditor, "command failed", "error", err)
}

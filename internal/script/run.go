package script

import (
	"context"
	"fmt"

	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/log"
)

// Result summarizes a run.
type Result struct {
	Steps    int // steps executed, repeats counted once
	Replaced int // occurrences replaced
	Matches  int // matches found by the last find
	Version  engine.Version
}

var motions = map[string]func(e *engine.Editor, extend bool){
	"left":         (*engine.Editor).MoveLeft,
	"right":        (*engine.Editor).MoveRight,
	"up":           (*engine.Editor).MoveUp,
	"down":         (*engine.Editor).MoveDown,
	"word_left":    (*engine.Editor).MoveWordLeft,
	"word_right":   (*engine.Editor).MoveWordRight,
	"page_up":      (*engine.Editor).MovePageUp,
	"page_down":    (*engine.Editor).MovePageDown,
	"line_start":   (*engine.Editor).MoveToLineStart,
	"smart_home":   (*engine.Editor).MoveToLineStartSmart,
	"line_end":     (*engine.Editor).MoveToLineEnd,
	"buffer_start": (*engine.Editor).MoveToBufferStart,
	"buffer_end":   (*engine.Editor).MoveToBufferEnd,
}

var commands = map[string]func(e *engine.Editor) error{
	"newline":          func(e *engine.Editor) error { e.InsertNewline(); return nil },
	"delete_backward":  func(e *engine.Editor) error { e.DeleteBackward(); return nil },
	"delete_forward":   func(e *engine.Editor) error { e.DeleteForward(); return nil },
	"delete_selection": func(e *engine.Editor) error { e.DeleteSelection(); return nil },
	"delete_block":     func(e *engine.Editor) error { e.DeleteBlockSelection(); return nil },
	"select_all":       func(e *engine.Editor) error { e.SelectAll(); return nil },
	"clear_selection":  func(e *engine.Editor) error { e.ClearSelection(); return nil },
	"undo":             func(e *engine.Editor) error { e.Undo(); return nil },
	"redo":             func(e *engine.Editor) error { e.Redo(); return nil },
	"duplicate_line":   func(e *engine.Editor) error { e.DuplicateLine(); return nil },
	"move_line_up":     func(e *engine.Editor) error { e.MoveLineUp(); return nil },
	"move_line_down":   func(e *engine.Editor) error { e.MoveLineDown(); return nil },
	"toggle_comment":   func(e *engine.Editor) error { e.ToggleComment(); return nil },
	"add_cursor_above": func(e *engine.Editor) error { e.AddCursorAbove(); return nil },
	"add_cursor_below": func(e *engine.Editor) error { e.AddCursorBelow(); return nil },
	"collapse_cursors": func(e *engine.Editor) error { e.CollapseCursors(); return nil },
	"exit_block":       func(e *engine.Editor) error { e.ExitBlockSelection(); return nil },
	"find_next":        func(e *engine.Editor) error { e.FindNext(); return nil },
	"find_prev":        func(e *engine.Editor) error { e.FindPrev(); return nil },
	"clear_search":     func(e *engine.Editor) error { e.ClearSearch(); return nil },
	"copy":             (*engine.Editor).Copy,
	"cut":              (*engine.Editor).Cut,
	"paste":            (*engine.Editor).Paste,
}

// Run executes the script's steps in order against e. It stops at the
// first failing step; edits made before it stay applied and undoable.
func (s *Script) Run(ctx context.Context, e *engine.Editor) (Result, error) {
	var res Result
	if err := s.Validate(); err != nil {
		return res, err
	}
	if s.CaseSensitive != nil {
		e.SetSearchCaseSensitive(*s.CaseSensitive)
	}

	log.Debug(log.CatScript, "running script", "name", s.Name, "steps", len(s.Steps))
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		name, _ := step.action()
		for range max(step.Repeat, 1) {
			if err := s.apply(e, step, &res); err != nil {
				log.Warn(log.CatScript, "step failed", "name", s.Name, "step", i+1, "action", name, "error", err)
				return res, &StepError{Index: i, Action: name, Err: err}
			}
		}
		res.Steps++
	}
	res.Version = e.Version()
	log.Info(log.CatScript, "script done", "name", s.Name, "steps", res.Steps, "replaced", res.Replaced)
	return res, nil
}

func (s *Script) apply(e *engine.Editor, step Step, res *Result) error {
	switch {
	case step.Find != nil:
		res.Matches = e.Find(*step.Find)
		if res.Matches == 0 && s.Strict {
			return fmt.Errorf("%w: %q", ErrNoMatch, *step.Find)
		}
	case step.Replace != nil:
		if e.ReplaceCurrent(*step.Replace) {
			res.Replaced++
		} else if s.Strict {
			return ErrNoMatch
		}
	case step.ReplaceAll != nil:
		n := e.ReplaceAll(*step.ReplaceAll)
		if n == 0 && s.Strict {
			return ErrNoMatch
		}
		res.Replaced += n
	case step.Goto != nil:
		if !e.GoToLineCol(step.Goto.Line, max(step.Goto.Col, 1)) {
			return fmt.Errorf("%w: %s", ErrOutOfRange, step.Goto)
		}
	case step.Insert != nil:
		e.InsertText(*step.Insert)
	case step.Type != nil:
		for _, r := range *step.Type {
			e.TypeChar(r)
		}
	case step.Move != nil:
		motions[step.Move.To](e, step.Move.Extend)
	case step.Select != nil:
		fl, fc := step.Select.From.zero()
		tl, tc := step.Select.To.zero()
		e.SetCursorPosition(fl, fc, false)
		e.SetCursorPosition(tl, tc, true)
	case step.Cursor != nil:
		e.AddCursorAt(step.Cursor.zero())
	case step.Block != nil:
		fl, fc := step.Block.From.zero()
		tl, tc := step.Block.To.zero()
		e.SetCursorPosition(fl, fc, false)
		e.StartBlockSelection()
		e.ExtendBlockSelection(tl, tc)
	case step.BlockInsert != nil:
		e.InsertTextAtBlock(*step.BlockInsert)
	case step.Do != nil:
		return commands[*step.Do](e)
	}
	return nil
}

package script

import (
	"errors"
	"fmt"
)

// Errors returned while parsing or running scripts.
var (
	// ErrNoSteps indicates a script without steps.
	ErrNoSteps = errors.New("script has no steps")

	// ErrInvalidStep indicates a step with zero or several actions, or
	// with malformed arguments.
	ErrInvalidStep = errors.New("invalid step")

	// ErrUnknownCommand indicates a "do" step naming no known command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownMotion indicates a "move" step naming no known motion.
	ErrUnknownMotion = errors.New("unknown motion")

	// ErrOutOfRange indicates a goto past the last line.
	ErrOutOfRange = errors.New("position out of range")

	// ErrNoMatch indicates a find in a strict script matched nothing.
	ErrNoMatch = errors.New("no match")
)

// StepError reports which step failed.
type StepError struct {
	Index  int // 0-based
	Action string
	Err    error
}

func (e *StepError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Action, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

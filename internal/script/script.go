// Package script runs YAML edit scripts against an editor.
//
// A script is a list of steps, each naming exactly one action:
//
//	name: rename
//	steps:
//	  - find: oldName
//	  - replace_all: newName
//	  - goto: 3:1
//	  - type: "// renamed\n"
//	  - move: {to: line_end, extend: true}
//	  - do: toggle_comment
//	    repeat: 2
//
// Positions are 1-based and written either as "line:col", a bare line
// number, or a {line, col} mapping.
package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is a parsed edit script.
type Script struct {
	Name string `yaml:"name"`

	// Language overrides detection from the target filename.
	Language string `yaml:"language"`

	// CaseSensitive sets the search mode before the first step.
	CaseSensitive *bool `yaml:"case_sensitive"`

	// Strict makes a find that matches nothing fail the script.
	Strict bool `yaml:"strict"`

	Steps []Step `yaml:"steps"`
}

// Step is one action. Exactly one action field is set.
type Step struct {
	Find        *string `yaml:"find"`
	Replace     *string `yaml:"replace"`
	ReplaceAll  *string `yaml:"replace_all"`
	Goto        *Point  `yaml:"goto"`
	Insert      *string `yaml:"insert"`
	Type        *string `yaml:"type"`
	Move        *Move   `yaml:"move"`
	Select      *Range  `yaml:"select"`
	Cursor      *Point  `yaml:"cursor"`
	Block       *Range  `yaml:"block"`
	BlockInsert *string `yaml:"block_insert"`
	Do          *string `yaml:"do"`

	// Repeat runs the action this many times. Zero means once.
	Repeat int `yaml:"repeat"`
}

// Point is a 1-based document position. Col 0 means the first column.
type Point struct {
	Line int `yaml:"line"`
	Col  int `yaml:"col"`
}

// UnmarshalYAML accepts "12", "12:4" or {line: 12, col: 4}.
func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return p.parse(node.Value)
	}
	type plain Point
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Point(v)
	return nil
}

func (p *Point) parse(s string) error {
	lineStr, colStr, hasCol := strings.Cut(strings.TrimSpace(s), ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return fmt.Errorf("%w: bad position %q", ErrInvalidStep, s)
	}
	col := 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil {
			return fmt.Errorf("%w: bad position %q", ErrInvalidStep, s)
		}
	}
	p.Line, p.Col = line, col
	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// zero returns the 0-based line and column.
func (p Point) zero() (int, int) {
	return max(p.Line-1, 0), max(p.Col-1, 0)
}

// Move is a cursor motion.
type Move struct {
	To     string `yaml:"to"`
	Extend bool   `yaml:"extend"`
}

// UnmarshalYAML accepts a bare motion name or {to, extend}.
func (m *Move) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		m.To = node.Value
		return nil
	}
	type plain Move
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*m = Move(v)
	return nil
}

// Range spans two positions.
type Range struct {
	From Point `yaml:"from"`
	To   Point `yaml:"to"`
}

// action returns the name of the single action set on s, or an error when
// none or several are.
func (s Step) action() (string, error) {
	set := []struct {
		name string
		ok   bool
	}{
		{"find", s.Find != nil},
		{"replace", s.Replace != nil},
		{"replace_all", s.ReplaceAll != nil},
		{"goto", s.Goto != nil},
		{"insert", s.Insert != nil},
		{"type", s.Type != nil},
		{"move", s.Move != nil},
		{"select", s.Select != nil},
		{"cursor", s.Cursor != nil},
		{"block", s.Block != nil},
		{"block_insert", s.BlockInsert != nil},
		{"do", s.Do != nil},
	}
	var found []string
	for _, a := range set {
		if a.ok {
			found = append(found, a.name)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: no action", ErrInvalidStep)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: several actions (%s)", ErrInvalidStep, strings.Join(found, ", "))
	}
}

// Parse decodes a script from YAML. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, ErrNoSteps
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseString decodes a script held in memory.
func ParseString(src string) (*Script, error) {
	return Parse(bytes.NewReader([]byte(src)))
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks every step without running anything.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrNoSteps
	}
	for i, step := range s.Steps {
		name, err := step.action()
		if err != nil {
			return &StepError{Index: i, Err: err}
		}
		if step.Repeat < 0 {
			return &StepError{Index: i, Action: name, Err: fmt.Errorf("%w: negative repeat", ErrInvalidStep)}
		}
		switch name {
		case "do":
			if _, ok := commands[*step.Do]; !ok {
				return &StepError{Index: i, Action: name, Err: fmt.Errorf("%w: %q", ErrUnknownCommand, *step.Do)}
			}
		case "move":
			if _, ok := motions[step.Move.To]; !ok {
				return &StepError{Index: i, Action: name, Err: fmt.Errorf("%w: %q", ErrUnknownMotion, step.Move.To)}
			}
		case "goto", "cursor":
			p := step.Goto
			if p == nil {
				p = step.Cursor
			}
			if p.Line < 1 {
				return &StepError{Index: i, Action: name, Err: fmt.Errorf("%w: line %d", ErrInvalidStep, p.Line)}
			}
		}
	}
	return nil
}

package ui

import (
	"errors"
	"fmt"
)

// ErrNotTerminal is wrapped by setup errors when stdin or stdout is not a TTY.
var ErrNotTerminal = errors.New("not a terminal")

// TerminalError reports a failure to take over or give back the terminal.
// Op is "setup", "draw" or "teardown".
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

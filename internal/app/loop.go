package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/tailboard/internal/state"
)

// Terminal is the drawing and input side of the screen as the render loop
// sees it.
type Terminal interface {
	// Rows returns how many lines each pane can show for the given view.
	Rows(view state.ViewSelection, panes int) int
	Draw(frame state.Frame) error
	// Actions delivers decoded user input. A closed channel ends the loop.
	Actions() <-chan state.Action
}

// Loop redraws the session whenever a file changes or the user acts.
type Loop struct {
	Session  *state.Session
	Changes  <-chan struct{}
	Drain    func() int
	Terminal Terminal
	Logger   *slog.Logger
}

type wake int

const (
	wakeAction wake = iota
	wakeChange
	wakeStop
)

// Run draws, waits and repeats until the user quits, the action channel
// closes or ctx ends, all of which return nil. A failed draw returns its
// error.
func (l *Loop) Run(ctx context.Context) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	actions := l.Terminal.Actions()

	for {
		view := l.Session.View()
		rows := l.Terminal.Rows(view, l.Session.Visible())
		if err := l.Terminal.Draw(l.Session.Frame(rows)); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		action, why := l.wait(ctx, actions)
		switch why {
		case wakeStop:
			return nil
		case wakeChange:
			continue
		}
		if l.Session.Apply(action) {
			logger.Debug("quit requested")
			return nil
		}
		if action.Kind == state.ActionSelectTab {
			logger.Debug("view selected", "digit", action.Digit, "single", l.Session.View().Single, "index", l.Session.View().Index)
		}
	}
}

// wait blocks until input, a change or cancellation. Input wins whenever it
// is ready at the same time as a change.
func (l *Loop) wait(ctx context.Context, actions <-chan state.Action) (state.Action, wake) {
	select {
	case a, ok := <-actions:
		return input(a, ok)
	default:
	}

	select {
	case a, ok := <-actions:
		return input(a, ok)
	case <-l.Changes:
		select {
		case a, ok := <-actions:
			return input(a, ok)
		default:
		}
		if l.Drain != nil {
			l.Drain()
		}
		return state.Action{}, wakeChange
	case <-ctx.Done():
		return state.Action{}, wakeStop
	}
}

func input(a state.Action, ok bool) (state.Action, wake) {
	if !ok {
		return state.Action{}, wakeStop
	}
	return a, wakeAction
}

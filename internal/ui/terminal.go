package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/five82/tailboard/internal/state"
)

const actionBuffer = 64

// Options configure the terminal.
type Options struct {
	Theme     string
	PrefsPath string // empty uses ~/.config/tailboard/prefs.toml
	Logger    *slog.Logger
	Input     *os.File // defaults to os.Stdin
	Output    *os.File // defaults to os.Stdout
}

// Terminal owns the screen for the lifetime of the dashboard. It runs a
// Bubble Tea program on its own goroutine; the render loop hands it frames
// through Draw and receives decoded keys from Actions.
type Terminal struct {
	opts   Options
	logger *slog.Logger

	program *tea.Program
	actions chan state.Action
	kick    chan struct{}
	done    chan struct{}
	stop    chan struct{}
	runErr  error

	mu     sync.Mutex
	frame  state.Frame
	width  int
	height int

	sendMu sync.RWMutex
	closed bool

	closeOnce sync.Once
	closeErr  error
}

// NewTerminal returns a terminal that has not taken over the screen yet.
func NewTerminal(opts Options) *Terminal {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Terminal{
		opts:    opts,
		logger:  logger.With("component", "ui"),
		actions: make(chan state.Action, actionBuffer),
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stop:    make(chan struct{}),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Start switches to the alternate screen and begins reading keys. Both ends
// must be terminals.
func (t *Terminal) Start() error {
	in, out := t.opts.Input, t.opts.Output
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	for _, f := range []*os.File{in, out} {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return &TerminalError{Op: "setup", Err: fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)}
		}
	}

	t.program = tea.NewProgram(newModel(t),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	go t.run()
	go t.forward()
	return nil
}

func (t *Terminal) run() {
	_, err := t.program.Run()
	t.runErr = err
	close(t.done)

	t.sendMu.Lock()
	t.closed = true
	close(t.actions)
	t.sendMu.Unlock()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		t.logger.Error("terminal program exited", "error", err)
	}
}

// forward turns Draw kicks into frame messages. Program.Send blocks until
// the program reads, so it must not run on the render loop goroutine.
func (t *Terminal) forward() {
	for {
		select {
		case <-t.kick:
			t.program.Send(frameMsg{})
		case <-t.done:
			return
		}
	}
}

// Rows returns the number of log lines each pane can show for view with the
// given number of visible panes.
func (t *Terminal) Rows(view state.ViewSelection, panes int) int {
	if view.Single {
		panes = 1
	}
	width, height := t.size()
	return layoutGrid(width, height, panes).lineRows()
}

// Draw hands frame to the program. It never blocks; when several frames
// arrive before the program repaints, only the newest is shown.
func (t *Terminal) Draw(frame state.Frame) error {
	select {
	case <-t.done:
		if t.runErr != nil && !errors.Is(t.runErr, tea.ErrProgramKilled) {
			return &TerminalError{Op: "draw", Err: t.runErr}
		}
		return nil
	default:
	}

	t.mu.Lock()
	t.frame = frame
	t.mu.Unlock()

	select {
	case t.kick <- struct{}{}:
	default:
	}
	return nil
}

// Actions delivers decoded key presses. It is closed once the program has
// exited.
func (t *Terminal) Actions() <-chan state.Action {
	return t.actions
}

// Close leaves the alternate screen and restores the terminal mode. It is
// safe to call on every exit path and more than once.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		close(t.stop)
		if t.program == nil {
			return
		}
		t.program.Quit()
		<-t.done
		if t.runErr != nil && !errors.Is(t.runErr, tea.ErrProgramKilled) {
			t.closeErr = &TerminalError{Op: "teardown", Err: t.runErr}
		}
	})
	return t.closeErr
}

func (t *Terminal) latest() state.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

func (t *Terminal) size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

func (t *Terminal) setSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
}

// send queues an action for the render loop. Noop is dropped when the queue
// is full; Quit and SelectTab wait for room unless the terminal is closing.
func (t *Terminal) send(a state.Action) {
	t.sendMu.RLock()
	defer t.sendMu.RUnlock()
	if t.closed {
		return
	}
	if a.Kind == state.ActionNoop {
		select {
		case t.actions <- a:
		default:
		}
		return
	}
	select {
	case t.actions <- a:
	case <-t.done:
	case <-t.stop:
	}
}

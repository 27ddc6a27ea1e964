package state

import (
	"iter"
	"slices"

	"github.com/five82/tailboard/internal/logtail"
)

// ViewSelection is either the overview of every file or a single file by
// zero-based index.
type ViewSelection struct {
	Single bool
	Index  int
}

// Overview shows every file.
func Overview() ViewSelection { return ViewSelection{} }

// Single shows the file at index i.
func Single(i int) ViewSelection { return ViewSelection{Single: true, Index: i} }

// Source is the read side of a tailer.
type Source interface {
	Path() string
	Snapshot(n int) logtail.Snapshot
}

// Pane is one file's copied window of lines and its status.
type Pane struct {
	Index       int
	Path        string
	Total       int
	Truncations int
	Rotated     bool
	Err         error

	lines []string
}

// Lines yields the pane's window oldest first.
func (p Pane) Lines() iter.Seq[string] {
	return slices.Values(p.lines)
}

// LineCount returns the number of lines in the window.
func (p Pane) LineCount() int {
	return len(p.lines)
}

// Unavailable reports whether the last poll of the file failed.
func (p Pane) Unavailable() bool {
	return p.Err != nil
}

// Frame is everything needed to draw one screen.
type Frame struct {
	View  ViewSelection
	Tabs  []string
	Panes []Pane
}

// Session holds the tailers in argument order and the active view. The view
// is owned by the render loop goroutine and is not guarded.
type Session struct {
	sources []Source
	view    ViewSelection
}

// NewSession starts in the overview.
func NewSession(sources []Source) *Session {
	return &Session{sources: slices.Clone(sources), view: Overview()}
}

// Len returns the number of tailed files.
func (s *Session) Len() int {
	return len(s.sources)
}

// View returns the active selection.
func (s *Session) View() ViewSelection {
	return s.view
}

// Select maps a tab digit to a selection: 0 and anything outside 1..Len()
// mean the overview.
func (s *Session) Select(digit int) ViewSelection {
	if digit >= 1 && digit <= len(s.sources) {
		return Single(digit - 1)
	}
	return Overview()
}

// Apply updates the active view for SelectTab and reports true for Quit.
func (s *Session) Apply(a Action) (quit bool) {
	switch a.Kind {
	case ActionSelectTab:
		s.view = s.Select(a.Digit)
	case ActionQuit:
		return true
	}
	return false
}

// Visible returns how many panes the active view shows.
func (s *Session) Visible() int {
	if s.view.Single {
		return 1
	}
	return len(s.sources)
}

// Frame snapshots the newest rows lines of each visible file, one tailer
// lock at a time.
func (s *Session) Frame(rows int) Frame {
	frame := Frame{View: s.view, Tabs: make([]string, len(s.sources))}
	for i, src := range s.sources {
		frame.Tabs[i] = src.Path()
	}
	if s.view.Single {
		if s.view.Index < len(s.sources) {
			frame.Panes = []Pane{paneOf(s.view.Index, s.sources[s.view.Index], rows)}
		}
		return frame
	}
	frame.Panes = make([]Pane, 0, len(s.sources))
	for i, src := range s.sources {
		frame.Panes = append(frame.Panes, paneOf(i, src, rows))
	}
	return frame
}

func paneOf(i int, src Source, rows int) Pane {
	snap := src.Snapshot(rows)
	return Pane{
		Index:       i,
		Path:        snap.Path,
		Total:       snap.Total,
		Truncations: snap.Truncations,
		Rotated:     snap.Rotated,
		Err:         snap.Err,
		lines:       snap.Lines,
	}
}

// NewPane builds a pane from literal lines. Used by renderers and tests that
// have no tailer behind them.
func NewPane(i int, path string, lines []string) Pane {
	return Pane{Index: i, Path: path, Total: len(lines), lines: lines}
}

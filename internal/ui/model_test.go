package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/tailboard/internal/prefs"
	"github.com/five82/tailboard/internal/state"
)

func newTestModel(t *testing.T, width, height int) (Model, *Terminal) {
	t.Helper()
	term := NewTerminal(Options{PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	m := newModel(term)
	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	drainActions(term)
	return next.(Model), term
}

func drainActions(term *Terminal) []state.Action {
	var out []state.Action
	for {
		select {
		case a := <-term.actions:
			out = append(out, a)
		default:
			return out
		}
	}
}

func press(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_KeysBecomeActions(t *testing.T) {
	tests := []struct {
		key  string
		want state.Action
	}{
		{"0", state.SelectTab(0)},
		{"1", state.SelectTab(1)},
		{"9", state.SelectTab(9)},
		{"q", state.Quit()},
		{"ctrl+c", state.Quit()},
		{"x", state.Noop()},
		{"esc", state.Noop()},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, term := newTestModel(t, 80, 24)
			press(m, tt.key)
			got := drainActions(term)
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("actions = %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestModel_WindowSizeUpdatesRowsAndRedraws(t *testing.T) {
	term := NewTerminal(Options{})
	m := newModel(term)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if got := drainActions(term); len(got) != 1 || got[0] != state.Noop() {
		t.Fatalf("actions = %v, want one Noop", got)
	}
	if w, h := term.size(); w != 120 || h != 40 {
		t.Fatalf("size = %dx%d, want 120x40", w, h)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, term := newTestModel(t, 100, 30)

	m = press(m, "?")
	if !m.showHelp {
		t.Fatalf("showHelp = false after ?")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help view missing title:\n%s", view)
	}

	m = press(m, "2")
	if m.showHelp {
		t.Fatalf("showHelp = true after another key")
	}
	if got := drainActions(term); len(got) != 2 || got[1] != state.SelectTab(2) {
		t.Fatalf("actions = %v, want the closing key to select tab 2", got)
	}

	m = press(m, "h")
	m = press(m, "q")
	if m.showHelp {
		t.Fatalf("showHelp = true after q")
	}
	if got := drainActions(term); len(got) != 2 || got[1] != state.Quit() {
		t.Fatalf("actions = %v, want Quit to pass through help", got)
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	start := m.theme.Name

	m = press(m, "T")
	if m.theme.Name != NextTheme(start) {
		t.Fatalf("theme = %q, want %q", m.theme.Name, NextTheme(start))
	}
	if saved := prefs.Load(m.prefsPath); saved.Theme != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", saved.Theme, m.theme.Name)
	}
}

func TestModel_RendersFrame(t *testing.T) {
	m, term := newTestModel(t, 120, 30)

	panes := []state.Pane{
		state.NewPane(0, "/var/log/app.log", []string{"2024-05-01 10:00:00 INFO started", "\x1b[31mred\x1b[0m"}),
		state.NewPane(1, "/var/log/db.log", nil),
		state.NewPane(2, "/var/log/cache.log", []string{"plain"}),
	}
	panes[1].Err = errors.New("open db.log: no such file")
	frame := state.Frame{
		View:  state.Overview(),
		Tabs:  []string{"/var/log/app.log", "/var/log/db.log", "/var/log/cache.log"},
		Panes: panes,
	}
	if err := term.Draw(frame); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	next, _ := m.Update(frameMsg{})
	m = next.(Model)

	raw := m.View()
	view := ansi.Strip(raw)
	for _, want := range []string{"tailboard", "0 All", "1 app.log", "2 db.log", "3 cache.log", "INFO started", "red", "! unavailable", "no such file", "plain"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	lines := strings.Split(raw, "\n")
	if len(lines) > 30 {
		t.Fatalf("view has %d lines, want at most 30", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w > 120 {
			t.Fatalf("line %d is %d cells wide, want at most 120", i, w)
		}
	}
}

func TestModel_NotReadyBeforeSize(t *testing.T) {
	m := newModel(NewTerminal(Options{}))
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

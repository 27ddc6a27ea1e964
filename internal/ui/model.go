package ui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tailboard/internal/prefs"
	"github.com/five82/tailboard/internal/state"
)

// frameMsg tells the model a new frame is waiting in the terminal.
type frameMsg struct{}

// Model is the Bubble Tea model. It only renders frames handed over by the
// render loop and turns key presses into actions; it never reads files.
type Model struct {
	term      *Terminal
	keys      keyMap
	theme     Theme
	prefsPath string
	logger    *slog.Logger

	width    int
	height   int
	ready    bool
	showHelp bool
	frame    state.Frame
}

func newModel(t *Terminal) Model {
	return Model{
		term:      t,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(t.opts.Theme),
		prefsPath: t.opts.PrefsPath,
		logger:    t.logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.term.setSize(msg.Width, msg.Height)
		// Pane heights changed; the loop has to take a new frame.
		m.term.send(state.Noop())
		return m, nil

	case frameMsg:
		m.frame = m.term.latest()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help and still acts, so a tab digit is not lost.
		m.showHelp = false
		m.term.send(m.keys.actionFor(msg))
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
	}
	m.term.send(m.keys.actionFor(msg))
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	return b.String()
}

// renderBody lays the frame's panes out in the grid Terminal.Rows promised
// the render loop.
func (m Model) renderBody() string {
	panes := m.frame.Panes
	if len(panes) == 0 {
		styles := m.theme.Styles()
		return lipgloss.Place(m.width, max(m.height-chromeLines, 1), lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No files"))
	}

	g := layoutGrid(m.width, m.height, len(panes))
	focused := m.frame.View.Single
	rows := make([]string, 0, g.rows)
	for start := 0; start < len(panes); start += g.columns {
		end := min(start+g.columns, len(panes))
		boxes := make([]string, 0, g.columns)
		for _, p := range panes[start:end] {
			boxes = append(boxes, m.renderPane(p, g.paneWidth, g.paneHeight, focused))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

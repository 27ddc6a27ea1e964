package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/tailboard/internal/state"
)

// renderHeader renders the logo and one tab per file, the active view
// highlighted.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	status := make(map[int]state.Pane, len(m.frame.Panes))
	for _, p := range m.frame.Panes {
		status[p.Index] = p
	}

	tabs := []string{m.renderTab("0 All", !m.frame.View.Single, styles, bg)}
	nameLimit := max(m.width/(len(m.frame.Tabs)+2)-4, 8)
	for i, path := range m.frame.Tabs {
		label := fmt.Sprintf("%d %s", i+1, truncateMiddle(filepath.Base(path), nameLimit))
		active := m.frame.View.Single && m.frame.View.Index == i
		tab := m.renderTab(label, active, styles, bg)
		if p, ok := status[i]; ok {
			if p.Unavailable() {
				tab += bg.Render("!", styles.DangerText)
			}
			if p.Rotated {
				tab += bg.Render("~", styles.WarningText)
			}
		}
		tabs = append(tabs, tab)
	}

	content := bg.Render("tailboard", styles.Logo) + bg.Spaces(2) + strings.Join(tabs, bg.Space())
	return m.bar(content, styles)
}

func (m Model) renderTab(label string, active bool, styles Styles, bg BgStyle) string {
	if active {
		return styles.Selected.Bold(true).Render(" " + label + " ")
	}
	return bg.Render(" "+label+" ", styles.MutedText)
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Sep(":")

	segments := make([]string, 0, len(m.keys.ShortHelp())+2)
	for _, binding := range m.keys.ShortHelp() {
		k, desc := helpLabel(binding)
		segments = append(segments, bg.Render(k, styles.AccentText)+colon+bg.Render(desc, styles.MutedText))
	}

	view := "All files"
	if m.frame.View.Single && m.frame.View.Index < len(m.frame.Tabs) {
		view = truncateMiddle(m.frame.Tabs[m.frame.View.Index], 50)
	}
	segments = append(segments, bg.Render(view, styles.FaintText))

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return m.bar(strings.Join(segments, bg.Spaces(2)), styles)
}

// bar renders a single full-width line; content that does not fit is cut
// rather than wrapped.
func (m Model) bar(content string, styles Styles) string {
	return styles.Header.Width(m.width).Render(ansi.Truncate(content, max(m.width-2, 0), "…"))
}

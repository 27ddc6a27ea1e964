package ui

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tailboard/internal/state"
)

// Patterns for highlighting plain log lines.
var (
	timestampRe = regexp.MustCompile(`^\[?(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?:Z|[+-]\d{2}:?\d{2})?)\]?`)
	levelRe     = regexp.MustCompile(`\b(TRACE|DEBUG|INFO|WARN|WARNING|ERROR|FATAL)\b`)
)

const ansiReset = "\x1b[0m"

// renderPane draws one file as a bordered box of width x height cells.
func (m Model) renderPane(p state.Pane, width, height int, focused bool) string {
	bgColor := m.theme.Pane
	borderColor := m.theme.Border
	if focused {
		bgColor = m.theme.PaneFocus
		borderColor = m.theme.BorderLit
	}
	if p.Unavailable() {
		borderColor = m.theme.Danger
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	inner := max(width-2, 1)
	rows := max(height-paneChrome, 1)

	lines := make([]string, 0, rows+1)
	lines = append(lines, bg.FillLine(m.paneTitle(p, styles, bg), inner))

	var body []string
	for line := range p.Lines() {
		body = append(body, bg.FillLine(m.colorizeLine(line, styles, bg), inner))
	}
	switch {
	case len(body) == 0 && p.Unavailable():
		body = append(body, bg.FillLine(bg.Render(p.Err.Error(), styles.DangerText), inner))
	case len(body) == 0:
		body = append(body, bg.FillLine(bg.Render("Waiting for data", styles.MutedText), inner))
	}
	if len(body) > rows {
		body = body[len(body)-rows:]
	}
	lines = append(lines, body...)
	for len(lines) < rows+1 {
		lines = append(lines, bg.Spaces(inner))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Render(strings.Join(lines, "\n"))
}

// paneTitle renders "N name  lines" plus the status indicators.
func (m Model) paneTitle(p state.Pane, styles Styles, bg BgStyle) string {
	parts := []string{
		bg.Render(fmt.Sprintf("%d", p.Index+1), styles.AccentText.Bold(true)) + bg.Space() +
			bg.Render(truncateMiddle(filepath.Base(p.Path), 40), styles.Text.Bold(true)),
		bg.Render(fmt.Sprintf("%d lines", p.Total), styles.FaintText),
	}
	if p.Unavailable() {
		parts = append(parts, bg.Render("! unavailable", styles.DangerText))
	}
	if p.Rotated {
		parts = append(parts, bg.Render("~ rotated", styles.WarningText))
	}
	if p.Truncations > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("truncated x%d", p.Truncations), styles.MutedText))
	}
	return strings.Join(parts, bg.Spaces(2))
}

// colorizeLine highlights the timestamp and level of a plain log line. Lines
// that carry their own ANSI styling are passed through and reset at the end.
func (m Model) colorizeLine(line string, styles Styles, bg BgStyle) string {
	line = expandTabs(line)
	if hasEscapes(line) {
		return line + ansiReset
	}
	if strings.TrimSpace(line) == "" {
		return ""
	}

	var result strings.Builder
	remaining := line

	if match := timestampRe.FindStringIndex(remaining); match != nil {
		result.WriteString(bg.Render(remaining[:match[1]], styles.FaintText))
		remaining = remaining[match[1]:]
	}

	if match := levelRe.FindStringSubmatchIndex(remaining); match != nil {
		start, end := match[2], match[3]
		result.WriteString(bg.Render(remaining[:start], styles.Text))
		level := remaining[start:end]
		result.WriteString(bg.Render(level, levelStyle(level, styles).Bold(true)))
		remaining = remaining[end:]
	}

	result.WriteString(bg.Render(remaining, styles.Text))
	return result.String()
}

// levelStyle returns the style for a log level.
func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN", "WARNING":
		return styles.WarningText
	case "ERROR", "FATAL":
		return styles.DangerText
	case "DEBUG", "TRACE":
		return styles.InfoText
	default:
		return styles.Text
	}
}

// Package ui draws the dashboard with Bubble Tea and Lipgloss.
//
// # Architecture
//
// Terminal wraps a tea.Program running on its own goroutine. The render loop
// in package app stays in charge of when to draw:
//
//	render loop                       tea.Program goroutine
//	───────────                       ─────────────────────
//	Rows(view, panes)  ← size ←────── WindowSizeMsg
//	Draw(frame) ─── latest frame ───→ frameMsg → Model.View
//	Actions()   ←── state.Action ──── KeyMsg   → keyMap.actionFor
//
// Draw never blocks: it stores the frame and nudges the program, and the
// model repaints the newest frame it finds. Keys are decoded into the three
// actions the loop understands (select a tab, quit, noop). Help and theme
// cycling are handled inside the model and still emit a Noop, so every key
// press causes one redraw.
//
// # Layout
//
//	┌ header: logo, 0 All, 1 app.log, 2 db.log! ... ─────────────┐
//	├ command bar: 0:All files  1-9:Single file  h/?:Help ... ───┤
//	│ ╭ 1 app.log  120 lines ╮ ╭ 2 db.log  0 lines  ! unavail. ╮ │
//	│ │ ...                  │ │ open db.log: no such file     │ │
//	│ ╰──────────────────────╯ ╰───────────────────────────────╯ │
//
// The overview puts panes in two columns when there is more than one file and
// the terminal is at least LayoutColumnsWidth cells wide. Lines that already
// carry ANSI colour are shown as written; plain lines get their timestamp and
// level highlighted.
//
// # Themes
//
// Nightfox and Kanagawa. T switches between them and saves the choice
// with package prefs.
package ui

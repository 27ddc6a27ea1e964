// Package app wires tailboard together and runs the render loop.
//
// # Startup
//
// Run resolves settings (config file, then command-line overrides), opens the
// diagnostic log and starts one logtail.Tailer per file in argument order.
// Every tailer reports changes through a shared fanin.Bus. If any watch
// cannot be registered, all registration errors are returned joined and the
// watches already made are released. The terminal is started last.
//
// # Render Loop
//
//	┌──────────────────────────────┐
//	│ rows  := Terminal.Rows(view) │
//	│ frame := Session.Frame(rows) │
//	│ Terminal.Draw(frame)         │
//	└──────────────┬───────────────┘
//	               │ wait
//	   ┌───────────┼──────────────┐
//	   ▼           ▼              ▼
//	 action      change          ctx done
//	 (checked    (drain queued    │
//	  first)      signals)        │
//	   │           │              ▼
//	   │           └──> redraw   return nil
//	   ├─ Quit ────────────────> return nil
//	   └─ SelectTab / Noop ────> redraw
//
// Input always wins when it is ready at the same time as a change, so a busy
// file cannot delay quitting. The loop never touches the filesystem; frames
// are built from snapshots the tailers copy out under their own locks.
//
// # Shutdown
//
// On every return path Run cancels the shared context (releasing producers
// blocked on a full bus), closes each tailer's watch and only then restores
// the terminal.
package app

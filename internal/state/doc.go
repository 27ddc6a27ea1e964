// Package state holds the session: the ordered set of tailed files and which
// of them is on screen.
//
// # Views
//
// A ViewSelection is either the overview (every file, one pane each) or a
// single file. Digit keys select: 0 is the overview, 1..N pick a file and any
// other digit falls back to the overview.
//
// # Frames
//
// Session.Frame takes one Snapshot per visible tailer. Each snapshot is a
// copy made under that tailer's own lock, so a frame never holds two locks
// at once and never sees half of a poll. Files are not read here.
//
// # Ownership
//
// Only the render loop calls Apply, so the active view needs no lock. The
// tailers behind a Session are shared with their watch goroutines and do
// their own locking.
package state

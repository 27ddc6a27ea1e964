// Package logtail follows growing log files incrementally.
//
// # Overview
//
// A Tailer owns three things for one file: a Cursor recording how many bytes
// have been consumed, a bounded history of decoded lines (ring.Buffer) and an
// fsnotify watch. Each write notification triggers a poll that reads only the
// bytes appended since the previous poll. The whole file is never re-read
// unless it shrank or was replaced.
//
// # Delta Reads
//
// Cursor.Read works in five steps:
//
//  1. Open the file and stat it to learn its current length L
//  2. If L is smaller than the cursor, or the path now names a different
//     file, restart from offset zero and flag the delta as truncated
//  3. Read [position, L) and split it on newlines
//  4. Keep a trailing partial line back; it is surfaced once its newline
//     arrives, so a line is never emitted twice or half-written
//  5. Advance the cursor to just after the last complete line
//
// Lines longer than MaxLineBytes without a newline are surfaced early so a
// writer that never terminates its output cannot pin the cursor.
//
// # Decoding
//
// Bytes are decoded with a WHATWG encoding from golang.org/x/text (UTF-8 by
// default). Undecodable input becomes U+FFFD instead of failing the poll.
// ANSI escape sequences are kept for the renderer unless StripANSI is set.
//
// # Concurrency
//
// Exactly one goroutine per Tailer consumes its watch events, so polls for a
// file run strictly in arrival order. The history is guarded by a mutex that
// is held only while a finished poll result is applied or while a reader
// copies lines out. File I/O happens outside that lock.
//
//	fsnotify Write ──> watch goroutine ──> Poll()
//	                                        │ Cursor.Read (no history lock)
//	                                        │ lock; apply delta; unlock
//	                                        └─> notify() when something changed
//
//	renderer ──> Snapshot(n) (lock; copy newest n; unlock)
//
// # Error Handling
//
//   - Watch registration failures are returned from Start as *WatchError
//   - Open/stat/read failures during a poll wrap ErrUnavailable; history and
//     cursor are kept, the status is exposed through Snapshot.Err and the next
//     notification retries
//   - Truncation is not an error: history is cleared and the file re-read
//   - Remove/Rename events mark the tailer as rotated; the watch is not moved
//     to the replacement file
package logtail

package logtail

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/encoding"

	"github.com/five82/tailboard/internal/ring"
)

// DefaultHistoryLines is the per-file history capacity.
const DefaultHistoryLines = 10000

// Options configure a Tailer.
type Options struct {
	HistoryLines int // zero uses DefaultHistoryLines; negative keeps nothing
	MaxLineBytes int
	Encoding     encoding.Encoding
	StripANSI    bool
	Logger       *slog.Logger
}

// PollResult summarises one poll cycle.
type PollResult struct {
	Lines     int
	Truncated bool
	Lossy     int
	// StatusChanged reports that the file became unavailable or recovered.
	StatusChanged bool
}

// Changed reports whether the cycle altered anything a viewer would see.
func (r PollResult) Changed() bool {
	return r.Lines > 0 || r.Truncated || r.StatusChanged
}

// Snapshot is a copy of a tailer's newest lines and status.
type Snapshot struct {
	Path        string
	Lines       []string
	Total       int // lines read since start
	Truncations int
	Rotated     bool
	Err         error
}

// Tailer follows one file: a cursor, a bounded history and a filesystem
// watch. The history is only mutated by Poll; readers copy it out through
// Snapshot or Tail.
type Tailer struct {
	path   string
	opts   Options
	logger *slog.Logger

	pollMu sync.Mutex // serialises cursor use
	cursor Cursor

	mu          sync.Mutex
	history     *ring.Buffer[string]
	total       int
	truncations int
	rotated     bool
	lastErr     error
	watcher     *fsnotify.Watcher
	done        chan struct{}

	closeOnce sync.Once
}

// New returns an idle tailer. No file is opened until the first poll.
func New(path string, opts Options) *Tailer {
	if opts.HistoryLines == 0 {
		opts.HistoryLines = DefaultHistoryLines
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tailer{
		path:    path,
		opts:    opts,
		logger:  logger.With("path", path),
		history: ring.New[string](opts.HistoryLines),
	}
}

// Path returns the file this tailer follows.
func (t *Tailer) Path() string {
	return t.path
}

// Start registers the filesystem watch, performs an initial poll and then
// polls on every write notification from a dedicated goroutine. notify is
// called once for each cycle that changed visible state, always from that
// goroutine, so Start returns even when notify blocks.
func (t *Tailer) Start(ctx context.Context, notify func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &WatchError{Path: t.path, Err: err}
	}
	if err := watcher.Add(t.path); err != nil {
		_ = watcher.Close()
		return &WatchError{Path: t.path, Err: err}
	}

	t.mu.Lock()
	if t.watcher != nil {
		t.mu.Unlock()
		_ = watcher.Close()
		return fmt.Errorf("tailer %s already started", t.path)
	}
	t.watcher = watcher
	t.done = make(chan struct{})
	t.mu.Unlock()

	if notify == nil {
		notify = func() {}
	}
	initial := t.poll()
	go t.watch(ctx, watcher, notify, initial.Changed())
	return nil
}

func (t *Tailer) watch(ctx context.Context, watcher *fsnotify.Watcher, notify func(), pending bool) {
	defer close(t.done)
	if pending {
		notify()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Has(fsnotify.Write):
				t.cycle(notify)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				if t.markRotated() {
					t.logger.Info("log rotated away; watch not re-attached", "op", event.Op.String())
					notify()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			t.logger.Warn("watch error", "error", err)
		}
	}
}

func (t *Tailer) cycle(notify func()) {
	if t.poll().Changed() {
		notify()
	}
}

func (t *Tailer) poll() PollResult {
	res, err := t.Poll()
	if err != nil && !errors.Is(err, ErrUnavailable) {
		t.logger.Error("poll failed", "error", err)
	}
	return res
}

// Poll reads the lines appended since the previous poll into the history.
// A truncated or replaced file clears the history before the re-read lines
// are added. Errors wrap ErrUnavailable and leave history and cursor as they
// were.
func (t *Tailer) Poll() (PollResult, error) {
	t.pollMu.Lock()
	defer t.pollMu.Unlock()

	delta, err := t.cursor.Read(t.path, ReadOptions{
		Keep:         t.history.Cap(),
		MaxLineBytes: t.opts.MaxLineBytes,
		Encoding:     t.opts.Encoding,
		StripANSI:    t.opts.StripANSI,
	})

	t.mu.Lock()
	wasUnavailable := t.lastErr != nil
	if err != nil {
		t.lastErr = err
		t.mu.Unlock()
		if wasUnavailable {
			t.logger.Debug("log still unavailable", "error", err)
		} else {
			t.logger.Warn("log unavailable", "error", err)
		}
		return PollResult{StatusChanged: !wasUnavailable}, err
	}
	t.lastErr = nil
	if delta.Truncated {
		t.history.Reset()
		t.truncations++
		t.rotated = false
	}
	for _, line := range delta.Lines {
		t.history.Push(line)
	}
	t.total += delta.Count
	t.mu.Unlock()

	if wasUnavailable {
		t.logger.Info("log available again")
	}
	if delta.Truncated {
		t.logger.Info("truncation detected; history cleared")
	}
	if delta.Lossy > 0 {
		t.logger.Debug("lossy decode", "lines", delta.Lossy)
	}
	return PollResult{
		Lines:         delta.Count,
		Truncated:     delta.Truncated,
		Lossy:         delta.Lossy,
		StatusChanged: wasUnavailable,
	}, nil
}

func (t *Tailer) markRotated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rotated {
		return false
	}
	t.rotated = true
	return true
}

// Snapshot copies the newest n lines and the current status.
func (t *Tailer) Snapshot(n int) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Path:        t.path,
		Lines:       slices.Collect(t.history.IterLast(n)),
		Total:       t.total,
		Truncations: t.truncations,
		Rotated:     t.rotated,
		Err:         t.lastErr,
	}
}

// Tail returns the newest n history entries, oldest first. The sequence is
// backed by a copy, so it stays valid while polling continues.
func (t *Tailer) Tail(n int) iter.Seq[string] {
	return slices.Values(t.Snapshot(n).Lines)
}

// Len returns the number of lines currently held in history.
func (t *Tailer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Len()
}

// Close releases the filesystem watch and waits for the watch goroutine to
// exit. It is safe to call more than once, and on a tailer never started.
func (t *Tailer) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.mu.Lock()
		watcher, done := t.watcher, t.done
		t.mu.Unlock()
		if watcher == nil {
			return
		}
		if cerr := watcher.Close(); cerr != nil {
			err = fmt.Errorf("close watch %s: %w", t.path, cerr)
		}
		<-done
	})
	return err
}

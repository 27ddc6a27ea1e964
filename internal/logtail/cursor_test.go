package logtail

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
}

func readOpts() ReadOptions {
	return ReadOptions{Keep: 100}
}

func TestCursorRead_IncrementalAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeLog(t, path, "a\nb\nc\nd\ne\n")

	var c Cursor
	delta, err := c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []string{"a", "b", "c", "d", "e"}; !slices.Equal(delta.Lines, want) {
		t.Fatalf("Lines = %v, want %v", delta.Lines, want)
	}
	if delta.Truncated {
		t.Fatalf("Truncated = true on first read")
	}
	if c.Position != 10 || c.LastKnownLength != 10 {
		t.Fatalf("cursor = %+v, want position 10 length 10", c)
	}

	appendLog(t, path, "f\n")
	before := c.Position
	delta, err = c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !slices.Equal(delta.Lines, []string{"f"}) || delta.Count != 1 {
		t.Fatalf("delta = %+v, want one line f", delta)
	}
	if c.Position-before != 2 {
		t.Fatalf("cursor advanced %d bytes, want 2", c.Position-before)
	}

	delta, err = c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read with no new data: %v", err)
	}
	if delta.Count != 0 || len(delta.Lines) != 0 {
		t.Fatalf("delta = %+v, want no lines", delta)
	}
}

func TestCursorRead_PartialLineWaitsForNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeLog(t, path, "first\n")

	var c Cursor
	if _, err := c.Read(path, readOpts()); err != nil {
		t.Fatalf("Read: %v", err)
	}

	appendLog(t, path, "sec")
	delta, err := c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if delta.Count != 0 {
		t.Fatalf("Count = %d, want 0 for partial line", delta.Count)
	}
	if c.Position != 6 {
		t.Fatalf("Position = %d, want 6 (partial line not consumed)", c.Position)
	}
	if c.LastKnownLength != 9 {
		t.Fatalf("LastKnownLength = %d, want 9", c.LastKnownLength)
	}

	appendLog(t, path, "ond\nthird")
	delta, err = c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !slices.Equal(delta.Lines, []string{"second"}) {
		t.Fatalf("Lines = %v, want [second]", delta.Lines)
	}

	appendLog(t, path, "\n")
	delta, err = c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !slices.Equal(delta.Lines, []string{"third"}) {
		t.Fatalf("Lines = %v, want [third]", delta.Lines)
	}
}

func TestCursorRead_TruncationRestartsFromZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeLog(t, path, "one\ntwo\nthree\n")

	var c Cursor
	if _, err := c.Read(path, readOpts()); err != nil {
		t.Fatalf("Read: %v", err)
	}

	writeLog(t, path, "x\n")
	delta, err := c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !delta.Truncated {
		t.Fatalf("Truncated = false, want true after shrink")
	}
	if !slices.Equal(delta.Lines, []string{"x"}) {
		t.Fatalf("Lines = %v, want [x]", delta.Lines)
	}
	if c.Position != 2 {
		t.Fatalf("Position = %d, want 2", c.Position)
	}
}

func TestCursorRead_ReplacedFileRestartsFromZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeLog(t, path, "old\n")

	var c Cursor
	if _, err := c.Read(path, readOpts()); err != nil {
		t.Fatalf("Read: %v", err)
	}

	replacement := filepath.Join(dir, "app.log.new")
	writeLog(t, replacement, "new one\nnew two\n")
	if err := os.Rename(replacement, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	delta, err := c.Read(path, readOpts())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !delta.Truncated {
		t.Fatalf("Truncated = false, want true for replaced file")
	}
	if want := []string{"new one", "new two"}; !slices.Equal(delta.Lines, want) {
		t.Fatalf("Lines = %v, want %v", delta.Lines, want)
	}
}

func TestCursorRead_MissingFileLeavesCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeLog(t, path, "a\nb\n")

	var c Cursor
	if _, err := c.Read(path, readOpts()); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	_, err := c.Read(path, readOpts())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Read error = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read error = %v, want it to wrap os.ErrNotExist", err)
	}
	if c.Position != 4 {
		t.Fatalf("Position = %d, want 4 (unchanged)", c.Position)
	}
}

func TestCursorRead_KeepBoundsLinesButCountsAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeLog(t, path, "1\n2\n3\n4\n5\n")

	var c Cursor
	delta, err := c.Read(path, ReadOptions{Keep: 2})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !slices.Equal(delta.Lines, []string{"4", "5"}) {
		t.Fatalf("Lines = %v, want [4 5]", delta.Lines)
	}
	if delta.Count != 5 {
		t.Fatalf("Count = %d, want 5", delta.Count)
	}
	if c.Position != 10 {
		t.Fatalf("Position = %d, want 10", c.Position)
	}
}

func TestCursorRead_Decoding(t *testing.T) {
	latin1, err := LookupEncoding("latin1")
	if err != nil {
		t.Fatalf("LookupEncoding(latin1): %v", err)
	}

	tests := []struct {
		name      string
		content   []byte
		opts      ReadOptions
		want      []string
		wantLossy int
	}{
		{
			name:    "crlf",
			content: []byte("one\r\ntwo\r\n"),
			opts:    readOpts(),
			want:    []string{"one", "two"},
		},
		{
			name:      "invalid utf-8 is replaced",
			content:   []byte{'a', 0xff, 'b', '\n'},
			opts:      readOpts(),
			want:      []string{"a\uFFFDb"},
			wantLossy: 1,
		},
		{
			name:    "latin1",
			content: []byte{'c', 'a', 'f', 0xe9, '\n'},
			opts:    ReadOptions{Keep: 10, Encoding: latin1},
			want:    []string{"café"},
		},
		{
			name:    "strip ansi",
			content: []byte("\x1b[31mred\x1b[0m plain\n"),
			opts:    ReadOptions{Keep: 10, StripANSI: true},
			want:    []string{"red plain"},
		},
		{
			name:    "ansi kept by default",
			content: []byte("\x1b[31mred\x1b[0m\n"),
			opts:    readOpts(),
			want:    []string{"\x1b[31mred\x1b[0m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "app.log")
			if err := os.WriteFile(path, tt.content, 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			var c Cursor
			delta, err := c.Read(path, tt.opts)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !slices.Equal(delta.Lines, tt.want) {
				t.Fatalf("Lines = %q, want %q", delta.Lines, tt.want)
			}
			if delta.Lossy != tt.wantLossy {
				t.Fatalf("Lossy = %d, want %d", delta.Lossy, tt.wantLossy)
			}
		})
	}
}

func TestCursorRead_OverlongLineIsForced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeLog(t, path, "0123456789abcdef0123456789abcdef01234567")

	var c Cursor
	delta, err := c.Read(path, ReadOptions{Keep: 10, MaxLineBytes: 16})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []string{"0123456789abcdef", "0123456789abcdef"}; !slices.Equal(delta.Lines, want) {
		t.Fatalf("Lines = %v, want %v", delta.Lines, want)
	}
	if c.Position != 32 {
		t.Fatalf("Position = %d, want 32", c.Position)
	}
}

func TestLookupEncoding(t *testing.T) {
	if _, err := LookupEncoding(""); err != nil {
		t.Fatalf("LookupEncoding(empty) error = %v, want default", err)
	}
	if _, err := LookupEncoding(" UTF-8 "); err != nil {
		t.Fatalf("LookupEncoding(UTF-8) error = %v", err)
	}
	if _, err := LookupEncoding("klingon"); err == nil {
		t.Fatalf("LookupEncoding(klingon) returned nil error")
	}
}

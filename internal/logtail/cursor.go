package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/text/encoding"

	"github.com/five82/tailboard/internal/ring"
)

// DefaultMaxLineBytes bounds how long an unterminated line may grow before it
// is surfaced anyway.
const DefaultMaxLineBytes = 1024 * 1024

const readBufferSize = 64 * 1024

// ReadOptions tune a single delta read.
type ReadOptions struct {
	// Keep is how many of the newest completed lines Delta.Lines retains.
	Keep         int
	MaxLineBytes int
	Encoding     encoding.Encoding
	StripANSI    bool
}

// Delta is the outcome of one Cursor.Read.
type Delta struct {
	// Lines holds at most ReadOptions.Keep of the newest completed lines.
	Lines []string
	// Count is the number of lines completed during this read.
	Count int
	// Truncated reports that the file shrank or was replaced and was re-read
	// from offset zero.
	Truncated bool
	// Lossy counts lines that needed replacement characters to decode.
	Lossy int
}

// Cursor tracks how far into a file has been consumed.
type Cursor struct {
	Position        int64
	LastKnownLength int64

	identity os.FileInfo
}

// Read consumes every complete line appended since the previous call. A
// trailing line without its newline is left for the next call. On error the
// cursor is unchanged and the error wraps ErrUnavailable.
func (c *Cursor) Read(path string, opts ReadOptions) (Delta, error) {
	file, err := os.Open(path)
	if err != nil {
		return Delta{}, fmt.Errorf("%w: open %s: %w", ErrUnavailable, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Delta{}, fmt.Errorf("%w: stat %s: %w", ErrUnavailable, path, err)
	}
	size := info.Size()

	var delta Delta
	start := c.Position
	if size < start || (c.identity != nil && !os.SameFile(c.identity, info)) {
		delta.Truncated = true
		start = 0
	}

	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	decoder := newLineDecoder(opts.Encoding, opts.StripANSI)
	kept := ring.New[string](opts.Keep)
	emit := func(raw []byte) {
		text, lossy := decoder.decode(raw)
		if lossy {
			delta.Lossy++
		}
		kept.Push(text)
		delta.Count++
	}

	reader := bufio.NewReaderSize(io.NewSectionReader(file, start, size-start), min(readBufferSize, maxLine))
	offset := start
	var pending []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		pending = append(pending, chunk...)
		switch {
		case err == nil:
			offset += int64(len(pending))
			emit(pending[:len(pending)-1])
			pending = pending[:0]
			continue
		case errors.Is(err, bufio.ErrBufferFull):
			if len(pending) >= maxLine {
				offset += int64(len(pending))
				emit(pending)
				pending = pending[:0]
			}
			continue
		case errors.Is(err, io.EOF):
			// pending holds an incomplete line; leave it for the next read.
		default:
			return Delta{}, fmt.Errorf("%w: read %s: %w", ErrUnavailable, path, err)
		}
		break
	}

	c.Position = offset
	c.LastKnownLength = size
	c.identity = info
	delta.Lines = slices.Collect(kept.IterLast(kept.Len()))
	return delta, nil
}

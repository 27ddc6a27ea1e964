package logtail

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding name is configured.
const DefaultEncoding = "utf-8"

// LookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "latin1" or "shift_jis".
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// lineDecoder turns raw line bytes into display text.
type lineDecoder struct {
	enc       encoding.Encoding
	utf8      bool
	stripANSI bool
}

func newLineDecoder(enc encoding.Encoding, stripANSI bool) lineDecoder {
	d := lineDecoder{enc: enc, stripANSI: stripANSI}
	if enc == nil {
		d.enc = unicode.UTF8
		d.utf8 = true
	} else if name, err := htmlindex.Name(enc); err == nil && name == "utf-8" {
		d.utf8 = true
	}
	return d
}

// decode returns the text for raw and whether replacement characters had to
// be substituted for undecodable input.
func (d lineDecoder) decode(raw []byte) (string, bool) {
	raw = bytes.TrimSuffix(raw, []byte{'\r'})

	var (
		text  string
		lossy bool
	)
	switch {
	case d.utf8 && utf8.Valid(raw):
		text = string(raw)
	case d.utf8:
		// The x/text UTF-8 decoder substitutes U+FFFD for invalid sequences.
		out, err := unicode.UTF8.NewDecoder().Bytes(raw)
		if err != nil {
			out = []byte(strings.ToValidUTF8(string(raw), "\uFFFD"))
		}
		text, lossy = string(out), true
	default:
		out, err := d.enc.NewDecoder().Bytes(raw)
		if err != nil {
			text, lossy = strings.ToValidUTF8(string(raw), "\uFFFD"), true
		} else {
			text = string(out)
			lossy = strings.ContainsRune(text, utf8.RuneError)
		}
	}

	if d.stripANSI {
		text = ansi.Strip(text)
	}
	return text, lossy
}

// Package shellvetica converts terminal output, text mixed with ANSI escape sequences
// for colors and text styles, into a HTML representation.
//
// The conversion is a pipeline of pure functions that can also be used on their own:
//
//	nodes := shellvetica.Lex(p)               // bytes to text, control and sequence nodes
//	resolved := shellvetica.Resolve(nodes)    // SGR sequences folded into styles
//	runs := shellvetica.Optimize(resolved)    // minimal style scopes
//	html := shellvetica.Serialize(runs, pal)  // inline styled spans
//
// None of the stages fail, malformed and truncated sequences are dropped.
package shellvetica

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	ErrReader  = errors.New("reader is nil")
	ErrCharset = errors.New("unsupported character set")
)

// Converter converts terminal output to HTML using a palette and an input character set.
// It holds no state between conversions and is safe for concurrent use.
type Converter struct {
	palette Palette
	charset *charmap.Charmap
}

// NewConverter creates a Converter.
//
// Palette can either be CGA16 or Xterm16, and is used for the 16 standard and bright colors.
//
// Terminal output is usually UTF-8 encoding which can be set with charset as a nil value
// or charset as [charmap.XUserDefined]. Output from legacy systems can be decoded from
// a charset such as [charmap.CodePage437] or [charmap.ISO8859_1].
func NewConverter(pal Palette, charset *charmap.Charmap) *Converter {
	if charset == charmap.XUserDefined {
		charset = nil
	}
	return &Converter{
		palette: pal,
		charset: charset,
	}
}

// Palette returns the palette used for the standard and bright colors.
func (c *Converter) Palette() Palette {
	return c.palette
}

// Convert returns the HTML span elements of the terminal output in p.
func (c *Converter) Convert(p []byte) string {
	return Serialize(Optimize(Resolve(Lex(c.decode(p)))), c.palette)
}

// decode returns p as UTF-8. The ASCII range is shared by the supported charsets,
// so the escape sequences pass through unchanged.
//
// The single byte charsets map all 256 byte values, so decoding does not fail.
// Should it ever fail, p is lexed as is and invalid UTF-8 is replaced by U+FFFD
// when serialized, keeping Convert a total function.
func (c *Converter) decode(p []byte) []byte {
	if c.charset == nil {
		return p
	}
	b, _, err := transform.Bytes(c.charset.NewDecoder(), p)
	if err != nil {
		return p
	}
	return b
}

// Write writes to w the HTML elements of the terminal output in p,
// wrapped in a pre element using the default colors of the palette.
func (c *Converter) Write(w io.Writer, p []byte) error {
	if w == nil {
		w = io.Discard
	}
	colors := c.palette.Colors()
	defFg, defBg := colors[7], colors[0]
	t, err := template.New("ansi").Parse(
		`{{define "T"}}<pre style="` + defFg.FG() + defBg.BG() + `">{{ . }}</pre>{{end}}`)
	if err != nil {
		return fmt.Errorf("write template parse: %w", err)
	}
	if err := t.ExecuteTemplate(w, "T",
		template.HTML(c.Convert(p))); err != nil { //nolint:gosec
		return fmt.Errorf("write template execute: %w", err)
	}
	return nil
}

// Buffer creates a new Buffer containing the HTML elements of the terminal output
// found in the Reader.
//
// The other arguments are used by the [NewConverter] which documents their purpose.
func Buffer(r io.Reader, pal Palette, charset *charmap.Charmap) (*bytes.Buffer, error) {
	if r == nil {
		return nil, ErrReader
	}
	p, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer read all: %w", err)
	}
	c := NewConverter(pal, charset)
	var b bytes.Buffer
	out := bufio.NewWriter(&b)
	if err := c.Write(out, p); err != nil {
		return nil, err
	}
	if err := out.Flush(); err != nil {
		return nil, fmt.Errorf("buffer out flush: %w", err)
	}
	return &b, nil
}

// Bytes returns the HTML elements of the terminal output found in the Reader.
// It assumes the Reader is using UTF-8 encoding and uses the Xterm16 palette.
func Bytes(r io.Reader) ([]byte, error) {
	buf, err := Buffer(r, Xterm16, nil)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the HTML elements of the terminal output found in the Reader.
// It assumes the Reader is using UTF-8 encoding and uses the Xterm16 palette.
func String(r io.Reader) (string, error) {
	buf, err := Buffer(r, Xterm16, nil)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo writes to w the HTML elements of the terminal output found in the Reader.
// It assumes the Reader is using UTF-8 encoding and uses the Xterm16 palette.
//
// The return int64 is the number of bytes written.
func WriteTo(r io.Reader, w io.Writer) (int64, error) {
	buf, err := Buffer(r, Xterm16, nil)
	if err != nil {
		return 0, err
	}
	i, err := buf.WriteTo(w)
	if err != nil {
		return 0, fmt.Errorf("buffer write to: %w", err)
	}
	return i, nil
}

// Charset returns the character map of a named input encoding.
// Supported names are "utf8", "cp437", "cp850" and "iso-8859-1".
// UTF-8 needs no decoding and returns a nil character map.
func Charset(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return nil, nil //nolint:nilnil
	case "cp437":
		return charmap.CodePage437, nil
	case "cp850":
		return charmap.CodePage850, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCharset, name)
}

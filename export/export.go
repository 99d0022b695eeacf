// Package export writes satellite records as a JSON document, formatted like
// Python's json.dumps(records, sort_keys=True, indent=4, separators=(',', ': ')).
package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/ucsjson/atomicfile"
	"github.com/miku/ucsjson/schema/ucs"
	"github.com/segmentio/encoding/json"
)

const hexDigits = "0123456789abcdef"

// Options for the JSON output.
type Options struct {
	// Indent per level, no indentation if empty.
	Indent string
	// EnsureASCII escapes all non-ASCII characters as \uXXXX.
	EnsureASCII bool
}

// DefaultOptions give four space indentation and ASCII only output.
var DefaultOptions = Options{Indent: "    ", EnsureASCII: true}

// encodeValue appends the compact JSON of v, without HTML escaping.
func encodeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(shortEscapes(bytes.TrimRight(tmp.Bytes(), "\n")))
	return nil
}

// shortEscapes rewrites \u0008 and \u000c as \b and \f, which is how Python
// escapes backspace and form feed. Escaped backslashes are copied as is.
func shortEscapes(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u000`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		switch {
		case bytes.HasPrefix(b[i:], []byte(`\u0008`)):
			out = append(out, `\b`...)
			i += 5
		case bytes.HasPrefix(b[i:], []byte(`\u000c`)):
			out = append(out, `\f`...)
			i += 5
		default:
			out = append(out, b[i], b[i+1])
			i++
		}
	}
	return out
}

// appendRecord writes a record with keys in sorted order.
func appendRecord(buf *bytes.Buffer, rec ucs.Record) error {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encodeValue(buf, rec[k]); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// Marshal returns the JSON document for all records. There is no trailing
// newline.
func Marshal(records []ucs.Record, opts Options) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := appendRecord(&compact, rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	compact.WriteByte(']')
	b := compact.Bytes()
	if opts.Indent != "" {
		var indented bytes.Buffer
		if err := json.Indent(&indented, b, "", opts.Indent); err != nil {
			return nil, err
		}
		b = indented.Bytes()
	}
	if opts.EnsureASCII {
		b = EscapeNonASCII(b)
	}
	return b, nil
}

// EscapeNonASCII replaces every rune from U+007F on with a \uXXXX escape,
// using surrogate pairs outside the basic multilingual plane. The input
// must be valid JSON, where such runes only occur inside strings.
func EscapeNonASCII(b []byte) []byte {
	var (
		s   = string(b)
		buf bytes.Buffer
	)
	buf.Grow(len(b))
	for _, r := range s {
		switch {
		case r < 0x7f:
			buf.WriteByte(byte(r))
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			writeEscape(&buf, r1)
			writeEscape(&buf, r2)
		default:
			writeEscape(&buf, r)
		}
	}
	return buf.Bytes()
}

func writeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[r>>12&0xf])
	buf.WriteByte(hexDigits[r>>8&0xf])
	buf.WriteByte(hexDigits[r>>4&0xf])
	buf.WriteByte(hexDigits[r&0xf])
}

// Writer writes to a file that only appears once Close succeeds, compressed
// depending on the file extension.
type Writer struct {
	f       *atomicfile.File
	w       io.Writer
	closers []io.Closer
}

// Create returns a writer for filename; ".zst" and ".gz" files are
// compressed.
func Create(filename string) (*Writer, error) {
	f, err := atomicfile.New(filename)
	if err != nil {
		return nil, err
	}
	w := &Writer{f: f, w: f}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zst":
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Abort()
			return nil, err
		}
		w.w, w.closers = enc, append(w.closers, enc)
	case ".gz":
		zw := gzip.NewWriter(f)
		w.w, w.closers = zw, append(w.closers, zw)
	}
	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Close flushes any compressor and moves the file into place.
func (w *Writer) Close() error {
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			w.f.Abort()
			return err
		}
	}
	return w.f.Close()
}

// Abort discards everything written so far.
func (w *Writer) Abort() error {
	for _, c := range w.closers {
		_ = c.Close()
	}
	return w.f.Abort()
}

// WriteJSON writes the JSON document for all records to w. Nothing is
// written if any record fails to encode.
func WriteJSON(w io.Writer, records []ucs.Record, opts Options) error {
	b, err := Marshal(records, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile writes all records to filename.
func WriteFile(filename string, records []ucs.Record, opts Options) error {
	w, err := Create(filename)
	if err != nil {
		return err
	}
	if err := WriteJSON(w, records, opts); err != nil {
		w.Abort()
		return err
	}
	return w.Close()
}

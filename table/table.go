// Package table reads tab separated files with a header row, as distributed
// by UCS.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrEmpty is returned when there is not even a header row.
var ErrEmpty = errors.New("table: missing header row")

// MissingColumnError is returned if a required column is not in the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// Field is a single cell. Null is set when a short row has no value for the
// column at all.
type Field struct {
	Name  string
	Value string
	Null  bool
}

// Row is a line of the table, fields in header order.
type Row struct {
	Line   int
	Fields []Field
}

// Get returns the value of the last field with the given name, like a
// mapping built from the row would.
func (r Row) Get(name string) (value string, ok bool) {
	for i := len(r.Fields) - 1; i >= 0; i-- {
		if r.Fields[i].Name == name {
			if r.Fields[i].Null {
				return "", false
			}
			return r.Fields[i].Value, true
		}
	}
	return "", false
}

// RenameFunc derives new column names by position from the original header.
type RenameFunc func(header []string) map[int]string

// Option configures a Reader.
type Option func(*Reader)

// WithRename applies a rename once, right after the header has been read.
func WithRename(f RenameFunc) Option {
	return func(r *Reader) {
		for i, name := range f(r.header) {
			if i >= 0 && i < len(r.header) {
				r.header[i] = name
			}
		}
	}
}

// Reader reads rows from a tab separated file.
type Reader struct {
	cr     *csv.Reader
	header []string
}

// NewReader reads the header from r and applies all options.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	tr := &Reader{cr: cr, header: header}
	for _, opt := range opts {
		opt(tr)
	}
	return tr, nil
}

// Header returns the column names, after any renames.
func (r *Reader) Header() []string {
	return r.header
}

// Read returns the next row or io.EOF. Extra fields beyond the header are
// ignored, missing trailing fields are null.
func (r *Reader) Read() (Row, error) {
	rec, err := r.cr.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, fmt.Errorf("read row: %w", err)
	}
	line, _ := r.cr.FieldPos(0)
	row := Row{Line: line, Fields: make([]Field, len(r.header))}
	for i, name := range r.header {
		row.Fields[i] = Field{Name: name}
		if i < len(rec) {
			row.Fields[i].Value = rec[i]
		} else {
			row.Fields[i].Null = true
		}
	}
	return row, nil
}

// Require checks that all columns appear in header.
func Require(header []string, columns ...string) error {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[h] = true
	}
	for _, c := range columns {
		if !seen[c] {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}

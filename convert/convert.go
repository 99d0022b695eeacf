// Package convert turns rows of the UCS alias database into JSON friendly
// records, with official names merged in from the official name database.
package convert

import "errors"

// Skip marks a row that should be dropped instead of failing the whole
// conversion.
type Skip struct {
	err error
}

func (s Skip) Error() string {
	return s.err.Error()
}

var (
	// ErrSkipNoName is returned for rows whose COSPAR number has no official
	// name.
	ErrSkipNoName = Skip{err: errors.New("no official name for COSPAR number")}
)

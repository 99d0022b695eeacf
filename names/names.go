// Package names maps catalog numbers to official satellite names.
//
// UCS distributes two different versions of the database, one with official
// names and one with aliases. The official name version is only used to
// build this lookup.
package names

import (
	"fmt"
	"io"
	"os"

	"github.com/miku/ucsjson/schema/ucs"
	"github.com/miku/ucsjson/table"
)

// Table maps COSPAR and NORAD numbers to the current official name. It is
// not modified after Read returns.
type Table struct {
	cospar map[string]string
	norad  map[string]string
	// null holds COSPAR numbers from rows too short to carry a name.
	null map[string]bool
}

// ByCOSPAR returns the official name for a COSPAR number.
func (t *Table) ByCOSPAR(id string) (string, bool) {
	name, ok := t.cospar[id]
	return name, ok
}

// IsNull reports whether the official name for a COSPAR number is missing
// from its row altogether, as opposed to being empty.
func (t *Table) IsNull(id string) bool {
	return t.null[id]
}

// ByNORAD returns the official name for a NORAD number.
func (t *Table) ByNORAD(id string) (string, bool) {
	name, ok := t.norad[id]
	return name, ok
}

// Len returns the number of distinct COSPAR numbers.
func (t *Table) Len() int {
	return len(t.cospar)
}

// Read builds a table from a tab separated official name file. Later rows
// overwrite earlier rows with the same number.
func Read(r io.Reader) (*Table, error) {
	tr, err := table.NewReader(r)
	if err != nil {
		return nil, err
	}
	if err := table.Require(tr.Header(),
		ucs.ColumnCOSPAR,
		ucs.ColumnNORAD,
		ucs.ColumnCurrentOfficialName); err != nil {
		return nil, err
	}
	t := &Table{
		cospar: make(map[string]string),
		norad:  make(map[string]string),
		null:   make(map[string]bool),
	}
	for {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name, hasName := row.Get(ucs.ColumnCurrentOfficialName)
		if cospar, ok := row.Get(ucs.ColumnCOSPAR); ok {
			t.cospar[cospar] = name
			t.null[cospar] = !hasName
		}
		if norad, ok := row.Get(ucs.ColumnNORAD); ok {
			t.norad[norad] = name
		}
	}
	return t, nil
}

// Load reads the official name file from disk, decoding it from the given
// encoding.
func Load(filename, encoding string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := table.Decode(f, encoding)
	if err != nil {
		return nil, err
	}
	t, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

package convert

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/miku/ucsjson/dateutil"
	"github.com/miku/ucsjson/normal"
	"github.com/miku/ucsjson/schema/ucs"
	"github.com/miku/ucsjson/table"
	log "github.com/sirupsen/logrus"
)

// numSourceColumns is the number of repeated "Source" columns to rename.
const numSourceColumns = 9

// RequiredColumns must be present in the primary database file.
var RequiredColumns = []string{
	ucs.ColumnAliases,
	ucs.ColumnCOSPAR,
	ucs.ColumnNORAD,
	ucs.ColumnLaunchDate,
	ucs.ColumnApogee,
	ucs.ColumnPerigee,
	ucs.ColumnEccentricity,
	ucs.ColumnInclination,
	ucs.ColumnPeriod,
	ucs.ColumnGEOLongitude,
	ucs.ColumnPower,
	ucs.ColumnLaunchMass,
	ucs.ColumnDryMass,
	ucs.ColumnOrbitalDataSource,
}

// NameLookup resolves catalog numbers to official names.
type NameLookup interface {
	ByCOSPAR(id string) (string, bool)
	ByNORAD(id string) (string, bool)
	// IsNull reports a known COSPAR number whose row had no name field.
	IsNull(id string) bool
}

// DateError is a launch date we cannot rewrite. It aborts a conversion.
type DateError struct {
	Line  int
	Value any
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %v: %v", e.Line, ucs.ColumnLaunchDate, e.Value, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// Stats about a conversion run.
type Stats struct {
	Read    int
	Written int
	Dropped int
}

// SourceRename names the repeated "Source" columns. The column right after
// "Source Used for Orbital Data" keeps its name, the following ones become
// source_1, source_2, and so on.
func SourceRename(header []string) map[int]string {
	m := make(map[int]string)
	for i, name := range header {
		if name != ucs.ColumnOrbitalDataSource {
			continue
		}
		for k := 1; k <= numSourceColumns; k++ {
			j := i + k + 1
			if j >= len(header) {
				break
			}
			m[j] = fmt.Sprintf("%s%d", ucs.SourceColumnPrefix, k)
		}
		break
	}
	return m
}

// NormalizeRow converts a single row of the alias database into a record.
// Rows without an official name yield ErrSkipNoName.
func NormalizeRow(row table.Row, names NameLookup) (ucs.Record, error) {
	// Duplicate columns: last value wins, first position counts.
	var (
		order  []string
		fields = make(map[string]table.Field)
	)
	for _, f := range row.Fields {
		if _, ok := fields[f.Name]; !ok {
			order = append(order, f.Name)
		}
		fields[f.Name] = f
	}
	var (
		rec     = make(ucs.Record, len(order)+3)
		sources = []string{}
		source  table.Field
	)
	for _, name := range order {
		f := fields[name]
		switch {
		case name == "":
			// trailing tab in the source files
		case strings.HasPrefix(name, ucs.SourceColumnPrefix):
			if !f.Null && f.Value != "" {
				sources = append(sources, f.Value)
			}
		case name == ucs.ColumnSource:
			source = f
		case f.Null || f.Value == "":
			rec[name] = nil
		default:
			rec[name] = f.Value
		}
	}
	if !source.Null && source.Value != "" {
		sources = append(sources, source.Value)
	}
	rec[ucs.FieldSources] = sources
	for _, col := range ucs.IntegerColumns {
		if v, ok := rec[col].(string); ok {
			rec[col] = tryInt(v)
		}
	}
	for _, col := range ucs.FloatColumns {
		switch v := rec[col].(type) {
		case string:
			rec[col] = tryFloat(v)
		case int64:
			rec[col] = ucs.Float(v)
		}
	}
	date, ok := rec[ucs.ColumnLaunchDate].(string)
	if !ok {
		return nil, &DateError{Line: row.Line, Value: rec[ucs.ColumnLaunchDate], Err: dateutil.ErrMalformedDate}
	}
	reordered, err := dateutil.ReorderUS(date)
	if err != nil {
		return nil, &DateError{Line: row.Line, Value: date, Err: err}
	}
	rec[ucs.ColumnLaunchDate] = reordered
	cospar, ok := rec[ucs.ColumnCOSPAR].(string)
	if !ok {
		return nil, ErrSkipNoName
	}
	name, ok := names.ByCOSPAR(cospar)
	if !ok {
		return nil, ErrSkipNoName
	}
	if names.IsNull(cospar) {
		rec[ucs.FieldOfficialName] = nil
	} else {
		rec[ucs.FieldOfficialName] = name
	}
	if alias, ok := rec[ucs.ColumnAliases].(string); ok {
		rec[ucs.FieldAlternateNames] = normal.Aliases(alias)
	} else {
		rec[ucs.FieldAlternateNames] = []string{}
	}
	delete(rec, ucs.ColumnAliases)
	return rec, nil
}

// tryInt returns an int64, or the value unchanged, if it is not an integer.
func tryInt(v string) any {
	n, err := strconv.ParseInt(normal.Number(v), 10, 64)
	if err != nil {
		return v
	}
	return n
}

// tryFloat returns a ucs.Float, or the value unchanged, if it is not a finite
// decimal number.
func tryFloat(v string) any {
	s := normal.Trim(v)
	if strings.ContainsAny(s, "_xX") {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return v
	}
	return ucs.Float(f)
}

// Database converts a complete alias database file. Rows that cannot be
// matched to an official name are dropped, any other error stops the
// conversion.
func Database(r io.Reader, names NameLookup) ([]ucs.Record, Stats, error) {
	var stats Stats
	tr, err := table.NewReader(r, table.WithRename(SourceRename))
	if err != nil {
		return nil, stats, err
	}
	if err := table.Require(tr.Header(), RequiredColumns...); err != nil {
		return nil, stats, err
	}
	records := make([]ucs.Record, 0)
	for {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Read++
		rec, err := NormalizeRow(row, names)
		if _, ok := err.(Skip); ok {
			stats.Dropped++
			cospar, _ := row.Get(ucs.ColumnCOSPAR)
			norad, _ := row.Get(ucs.ColumnNORAD)
			entry := log.WithFields(log.Fields{"line": row.Line, "cospar": cospar})
			if name, ok := names.ByNORAD(norad); ok && norad != "" {
				entry = entry.WithField("norad_name", name)
			}
			entry.Debugf("dropping row: %v", err)
			continue
		}
		if err != nil {
			return nil, stats, err
		}
		records = append(records, rec)
		stats.Written++
	}
	return records, stats, nil
}

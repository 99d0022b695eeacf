// Package ucs describes the Union of Concerned Scientists satellite database,
// https://www.ucsusa.org/resources/satellite-database.
//
// UCS distributes two versions of the same table: one with official
// satellite names and one with aliases. Both are tab separated text files
// with a header row.
package ucs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names, as found in the header of the distributed files.
const (
	ColumnAliases             = "Name of Satellite, Alternate Names"
	ColumnCurrentOfficialName = "Current Official Name of Satellite"
	ColumnCOSPAR              = "COSPAR Number"
	ColumnNORAD               = "NORAD Number"
	ColumnLaunchDate          = "Date of Launch"
	ColumnApogee              = "Apogee (km)"
	ColumnPerigee             = "Perigee (km)"
	ColumnEccentricity        = "Eccentricity"
	ColumnInclination         = "Inclination (degrees)"
	ColumnPeriod              = "Period (minutes)"
	ColumnGEOLongitude        = "Longitude of GEO (degrees)"
	ColumnPower               = "Power (watts)"
	ColumnLaunchMass          = "Launch Mass (kg.)"
	ColumnDryMass             = "Dry Mass (kg.)"
	ColumnOrbitalDataSource   = "Source Used for Orbital Data"
	ColumnSource              = "Source"
)

// Fields added during conversion.
const (
	FieldSources        = "Sources"
	FieldOfficialName   = "Official Name"
	FieldAlternateNames = "Alternate Names"
)

// SourceColumnPrefix marks the repeated source columns, after renaming.
const SourceColumnPrefix = "source_"

var (
	// IntegerColumns are converted to integers, if possible.
	IntegerColumns = []string{
		ColumnApogee,
		ColumnNORAD,
		ColumnPerigee,
		ColumnPower,
		ColumnLaunchMass,
		ColumnDryMass,
	}
	// FloatColumns are converted to floats, if possible. Power appears in
	// both lists and ends up as a float.
	FloatColumns = []string{
		ColumnEccentricity,
		ColumnGEOLongitude,
		ColumnInclination,
		ColumnPeriod,
		ColumnPower,
	}
)

// Record is a single satellite. Values are nil, string, int64, Float or
// []string.
type Record map[string]any

// Float renders like a Python float, e.g. 98.0 instead of 98 and 1e-05
// instead of 0.00001.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("ucs: unsupported float value: %v", v)
	}
	return []byte(FormatFloat(v)), nil
}

// FormatFloat returns the shortest representation of v, with exponent
// notation for exponents below -4 or from 16 on, always with a fractional
// part otherwise.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if err != nil {
		return s
	}
	if exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

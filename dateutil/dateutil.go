// Package dateutil rewrites dates found in the UCS tables.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedDate is returned for dates that are not MONTH/DAY/YEAR.
var ErrMalformedDate = errors.New("malformed date")

// ReorderUS turns a MONTH/DAY/YEAR date into YEAR-MONTH-DAY. Components are
// reassembled as found, there is no padding or validation, "4/12/1999"
// becomes "1999-4-12".
func ReorderUS(value string) (string, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}
	return parts[2] + "-" + parts[0] + "-" + parts[1], nil
}

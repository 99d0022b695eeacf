package feeds

import (
	"errors"
	"os"
	"sort"
	"strings"
)

const (
	// OfficialNamePrefix starts the file names of the official name version.
	OfficialNamePrefix = "UCS_Satellite_Database_officialname"
	officialNameMarker = "_officialname"
)

// ErrNoDatabase is returned when there is no official name file.
var ErrNoDatabase = errors.New("no official name database file found")

// LatestOfficialName returns the name of the most recent official name file
// in dir, which is the first in reverse lexical order.
func LatestOfficialName(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), OfficialNamePrefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", ErrNoDatabase
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names[0], nil
}

// PrimaryName returns the name of the alias version that belongs to an
// official name file.
func PrimaryName(officialName string) string {
	return strings.ReplaceAll(officialName, officialNameMarker, "")
}

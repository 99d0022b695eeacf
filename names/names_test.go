package names

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miku/ucsjson/table"
)

const officialNames = "Current Official Name of Satellite\tCOSPAR Number\tNORAD Number\t\n" +
	"Aalto-1\t2017-036L\t42775\t\n" +
	"Amazonas Old\t2009-054A\t35942\t\n" +
	"Amazonas 2\t2009-054A\t35942\t\n" +
	"No Norad\t2020-001A\n"

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(officialNames))
	if err != nil {
		t.Fatal(err)
	}
	var cases = []struct {
		lookup func(string) (string, bool)
		id     string
		name   string
		ok     bool
	}{
		{tbl.ByCOSPAR, "2017-036L", "Aalto-1", true},
		{tbl.ByNORAD, "42775", "Aalto-1", true},
		{tbl.ByCOSPAR, "2009-054A", "Amazonas 2", true}, // later row wins
		{tbl.ByNORAD, "35942", "Amazonas 2", true},
		{tbl.ByCOSPAR, "2020-001A", "No Norad", true},
		{tbl.ByNORAD, "", "", false},
		{tbl.ByCOSPAR, "1999-999X", "", false},
	}
	for _, c := range cases {
		name, ok := c.lookup(c.id)
		if name != c.name || ok != c.ok {
			t.Errorf("lookup %q: got (%q, %v), want (%q, %v)", c.id, name, ok, c.name, c.ok)
		}
	}
	if tbl.Len() != 3 {
		t.Errorf("got %d entries, want 3", tbl.Len())
	}
}

func TestReadNullName(t *testing.T) {
	input := "COSPAR Number\tNORAD Number\tCurrent Official Name of Satellite\n" +
		"2021-001B\t47000\n" +
		"2021-001C\t47001\t\n"
	tbl, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	var cases = []struct {
		id   string
		ok   bool
		null bool
	}{
		{"2021-001B", true, true},
		{"2021-001C", true, false},
		{"1999-999X", false, false},
	}
	for _, c := range cases {
		name, ok := tbl.ByCOSPAR(c.id)
		if name != "" || ok != c.ok || tbl.IsNull(c.id) != c.null {
			t.Errorf("%s: got (%q, %v, null=%v), want (\"\", %v, null=%v)",
				c.id, name, ok, tbl.IsNull(c.id), c.ok, c.null)
		}
	}
}

func TestReadMissingColumn(t *testing.T) {
	input := "Current Official Name of Satellite\tCOSPAR Number\nAalto-1\t2017-036L\n"
	_, err := Read(strings.NewReader(input))
	var mce *table.MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("got %v, want MissingColumnError", err)
	}
	if mce.Column != "NORAD Number" {
		t.Errorf("got %q", mce.Column)
	}
}

func TestLoadLatin1(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "UCS_Satellite_Database_officialname_1-1-17.txt")
	data := "Current Official Name of Satellite\tCOSPAR Number\tNORAD Number\n" +
		"Amaz\xf4nas 2\t2009-054A\t35942\n"
	if err := os.WriteFile(filename, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(filename, table.DefaultEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if name, _ := tbl.ByCOSPAR("2009-054A"); name != "Amazônas 2" {
		t.Errorf("got %q, want %q", name, "Amazônas 2")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), ""); err == nil {
		t.Errorf("expected error for missing file")
	}
}

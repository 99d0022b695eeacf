package export

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/ucsjson/schema/ucs"
)

var sampleRecords = []ucs.Record{
	{
		"Sources":        []string{"http://a.example/?q=1&r=<2>"},
		"NORAD Number":   int64(42775),
		"Official Name":  "Amazônas 2",
		"Power (watts)":  ucs.Float(14000),
		"Dry Mass (kg.)": nil,
		"Empty":          []string{},
	},
}

const sampleJSON = `[
    {
        "Dry Mass (kg.)": null,
        "Empty": [],
        "NORAD Number": 42775,
        "Official Name": "Amaz\u00f4nas 2",
        "Power (watts)": 14000.0,
        "Sources": [
            "http://a.example/?q=1&r=<2>"
        ]
    }
]`

func TestMarshal(t *testing.T) {
	b, err := Marshal(sampleRecords, DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleJSON, string(b)); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalEmpty(t *testing.T) {
	for _, records := range [][]ucs.Record{nil, {}} {
		b, err := Marshal(records, DefaultOptions)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != "[]" {
			t.Errorf("got %s, want []", string(b))
		}
	}
}

func TestMarshalCompactUnicode(t *testing.T) {
	records := []ucs.Record{{"a": "é"}}
	b, err := Marshal(records, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `[{"a":"é"}]` {
		t.Errorf("got %s", string(b))
	}
}

func TestMarshalControlCharacters(t *testing.T) {
	records := []ucs.Record{{
		"a": "x\by\fz",
		"b": `\u0008 \u000c`,
		"c": "\t\n\x01",
	}}
	b, err := Marshal(records, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"a":"x\by\fz","b":"\\u0008 \\u000c","c":"\t\n\u0001"}]`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONFailure(t *testing.T) {
	var buf bytes.Buffer
	records := []ucs.Record{{"a": "ok"}, {"b": ucs.Float(math.Inf(1))}}
	if err := WriteJSON(&buf, records, DefaultOptions); err == nil {
		t.Fatal("expected error for Inf")
	}
	if buf.Len() != 0 {
		t.Errorf("got partial output: %s", buf.String())
	}
}

func TestEscapeNonASCII(t *testing.T) {
	var cases = []struct {
		in, out string
	}{
		{`"abc"`, `"abc"`},
		{`"é"`, `"\u00e9"`},
		{`"€"`, `"\u20ac"`},
		{"\"\x7f\"", `"\u007f"`},
		{`"𝄞"`, `"\ud834\udd1e"`},
	}
	for _, c := range cases {
		if got := string(EscapeNonASCII([]byte(c.in))); got != c.out {
			t.Errorf("EscapeNonASCII(%s): got %s, want %s", c.in, got, c.out)
		}
	}
}

func TestWriteFileCompressed(t *testing.T) {
	dir := t.TempDir()
	var cases = []struct {
		name   string
		reader func(io.Reader) (io.Reader, error)
	}{
		{"out.json", func(r io.Reader) (io.Reader, error) { return r, nil }},
		{"out.json.gz", func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }},
		{"out.json.zst", func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			filename := filepath.Join(dir, c.name)
			if err := WriteFile(filename, sampleRecords, DefaultOptions); err != nil {
				t.Fatal(err)
			}
			f, err := os.Open(filename)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			r, err := c.reader(f)
			if err != nil {
				t.Fatal(err)
			}
			b, err := io.ReadAll(r)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(sampleJSON, string(b)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteFileNoPartialOutput(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.json")
	records := []ucs.Record{{"a": ucs.Float(1)}, {"b": ucs.Float(math.NaN())}}
	if err := WriteFile(filename, records, DefaultOptions); err == nil {
		t.Fatal("expected error for NaN")
	}
	if _, err := os.Stat(filename); !os.IsNotExist(err) {
		t.Errorf("output should not exist, got %v", err)
	}
}

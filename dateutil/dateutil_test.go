package dateutil

import (
	"errors"
	"testing"
)

func TestReorderUS(t *testing.T) {
	var cases = []struct {
		value  string
		result string
		err    error
	}{
		{"4/12/1999", "1999-4-12", nil},
		{"06/23/2017", "2017-06-23", nil},
		{"10/1/2009", "2009-10-1", nil},
		{"//", "--", nil},
		{"2017-06-23", "", ErrMalformedDate},
		{"4/12", "", ErrMalformedDate},
		{"1/2/3/4", "", ErrMalformedDate},
		{"", "", ErrMalformedDate},
	}
	for _, c := range cases {
		result, err := ReorderUS(c.value)
		if !errors.Is(err, c.err) {
			t.Errorf("%q: got err %v, want %v", c.value, err, c.err)
		}
		if result != c.result {
			t.Errorf("%q: got %q, want %q", c.value, result, c.result)
		}
	}
}

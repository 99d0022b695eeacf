package normal

import (
	"strings"
)

// asciiSpace is the whitespace trimmed from values; no unicode
// spaces, a no-break space in a name is kept.
const asciiSpace = " \t\n\r\v\f"

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

// ReplaceNormalizer replaces all occurrences of Old with New.
type ReplaceNormalizer struct {
	Old string
	New string
}

func (s *ReplaceNormalizer) Normalize(v string) string {
	return strings.ReplaceAll(v, s.Old, s.New)
}

// TrimNormalizer removes leading and trailing ASCII whitespace.
type TrimNormalizer struct{}

func (s *TrimNormalizer) Normalize(v string) string {
	return Trim(v)
}

// aliasPipeline turns "Foo (Bar, Baz)" into "Foo ,Bar, Baz".
var aliasPipeline = &Pipeline{
	Normalizer: []Normalizer{
		&ReplaceNormalizer{Old: ")", New: ""},
		&ReplaceNormalizer{Old: "(", New: ","},
	},
}

// numberPipeline removes thousands separators, "35,776" becomes "35776".
var numberPipeline = &Pipeline{
	Normalizer: []Normalizer{
		&ReplaceNormalizer{Old: ",", New: ""},
		&TrimNormalizer{},
	},
}

// Trim removes leading and trailing ASCII whitespace.
func Trim(s string) string {
	return strings.Trim(s, asciiSpace)
}

// Aliases splits an alias field like "Foo (Bar, Baz)" into its names. Empty
// tokens are kept, so the result always has at least one element.
func Aliases(s string) []string {
	parts := strings.Split(aliasPipeline.Normalize(s), ",")
	for i, p := range parts {
		parts[i] = Trim(p)
	}
	return parts
}

// Number strips thousands separators and surrounding whitespace.
func Number(s string) string {
	return numberPipeline.Normalize(s)
}

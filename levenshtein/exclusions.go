// Package levenshtein matches locality names fuzzily by edit distance.
package levenshtein

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/fwojciec/contactdir"
)

// DefaultMaxDistance tolerates one edit, enough for spelling variants such
// as a dropped yod or a hyphen in place of a space.
const DefaultMaxDistance = 1

// minFuzzyLen is the shortest listed name, in runes, matched fuzzily.
// Shorter names must match exactly: one edit turns נין into עין.
const minFuzzyLen = 5

var _ contactdir.ExclusionSet = (*ExclusionSet)(nil)

// ExclusionSet excludes localities within MaxDistance edits of a listed
// name, after folding spacing, hyphens and apostrophe variants. Short
// names only match exactly.
type ExclusionSet struct {
	MaxDistance int
	names       []string
}

// NewExclusionSet creates an ExclusionSet for names.
func NewExclusionSet(names []string) *ExclusionSet {
	s := &ExclusionSet{MaxDistance: DefaultMaxDistance}
	for _, n := range names {
		if n = Normalize(n); n != "" {
			s.names = append(s.names, n)
		}
	}
	return s
}

// ReadExclusionSet reads one name per line. Blank lines and lines starting
// with # are ignored.
func ReadExclusionSet(r io.Reader) (*ExclusionSet, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewExclusionSet(names), nil
}

// Len returns the number of listed names.
func (s *ExclusionSet) Len() int {
	return len(s.names)
}

// Excludes reports whether locality matches a listed name.
func (s *ExclusionSet) Excludes(locality string) bool {
	if s == nil {
		return false
	}
	n := Normalize(locality)
	if n == "" {
		return false
	}
	for _, name := range s.names {
		if n == name {
			return true
		}
		if utf8.RuneCountInString(name) >= minFuzzyLen && levenshtein.ComputeDistance(n, name) <= s.MaxDistance {
			return true
		}
	}
	return false
}

// apostrophes folds the geresh and typographic quotes to ASCII.
var apostrophes = strings.NewReplacer("׳", "'", "’", "'", "`", "'", "״", `"`)

// Normalize folds a locality name for comparison: apostrophe variants
// become ASCII, hyphens become spaces and whitespace runs collapse.
func Normalize(name string) string {
	name = apostrophes.Replace(name)
	name = strings.ReplaceAll(name, "-", " ")
	return strings.Join(strings.Fields(name), " ")
}

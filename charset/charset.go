/*
Package charset represents the set of characters requested for a font bake.

A character set is an ordered, deduplicated sequence of Unicode scalar
values. Order is used only to seed iteration; set semantics govern
everything else. Sets may be built from a flat string of sample characters,
from a textual range specification like "32-127,0x20AC", or from a
unicode.RangeTable.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package charset

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/npillmayer/fontbake/core"
	"golang.org/x/text/unicode/rangetable"
)

// Set is an immutable, deduplicated character set. The zero value is the
// empty set.
type Set struct {
	runes []rune // sorted ascending
}

// FromString collects the distinct characters of s into a set.
// Duplicates collapse; the original ordering carries no meaning.
func FromString(s string) Set {
	seen := make(map[rune]bool)
	var rs []rune
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return Set{runes: rs}
}

// FromRanges parses a range specification of the form
//
//	"32-127, 0x20AC, 0x2000-0x206F"
//
// where entries are separated by comma and each entry is a single
// code-point or an inclusive range. Numbers are decimal or, with a 0x
// prefix, hexadecimal.
func FromRanges(spec string) (Set, error) {
	seen := make(map[rune]bool)
	var rs []rune
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		lo, hi, err := parseRange(entry)
		if err != nil {
			return Set{}, err
		}
		for r := lo; r <= hi; r++ {
			if utf16.IsSurrogate(r) {
				continue
			}
			if !seen[r] {
				seen[r] = true
				rs = append(rs, r)
			}
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return Set{runes: rs}, nil
}

func parseRange(entry string) (lo, hi rune, err error) {
	bounds := strings.SplitN(entry, "-", 2)
	lo, err = parseCodepoint(strings.TrimSpace(bounds[0]))
	if err != nil {
		return 0, 0, err
	}
	hi = lo
	if len(bounds) == 2 {
		hi, err = parseCodepoint(strings.TrimSpace(bounds[1]))
		if err != nil {
			return 0, 0, err
		}
	}
	if hi < lo {
		return 0, 0, core.Error(core.EINVALID, "descending code-point range: %s", entry)
	}
	return lo, hi, nil
}

func parseCodepoint(s string) (rune, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), base(s), 32)
	if err != nil || n > unicode.MaxRune {
		return 0, core.Error(core.EINVALID, "not a code-point: %q", s)
	}
	if utf16.IsSurrogate(rune(n)) {
		return 0, core.Error(core.EINVALID, "surrogate is not a Unicode scalar value: %q", s)
	}
	return rune(n), nil
}

func base(s string) int {
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		return 16
	}
	return 10
}

// FromTable collects all code-points of one or more unicode.RangeTables
// into a set.
func FromTable(tables ...*unicode.RangeTable) Set {
	var rs []rune
	rangetable.Visit(rangetable.Merge(tables...), func(r rune) {
		rs = append(rs, r)
	})
	return Set{runes: rs} // Visit walks in ascending order
}

// Union merges any number of sets into one.
func Union(sets ...Set) Set {
	seen := make(map[rune]bool)
	var rs []rune
	for _, set := range sets {
		for _, r := range set.runes {
			if !seen[r] {
				seen[r] = true
				rs = append(rs, r)
			}
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return Set{runes: rs}
}

// Runes returns the set's code-points in ascending order. Callers must not
// modify the returned slice.
func (set Set) Runes() []rune {
	return set.runes
}

// Len returns the number of code-points in the set.
func (set Set) Len() int {
	return len(set.runes)
}

// IsEmpty returns true for the empty set.
func (set Set) IsEmpty() bool {
	return len(set.runes) == 0
}

// Contains tests set membership of a single code-point.
func (set Set) Contains(r rune) bool {
	i := sort.Search(len(set.runes), func(i int) bool { return set.runes[i] >= r })
	return i < len(set.runes) && set.runes[i] == r
}

// Run is a contiguous range of code-points, both bounds inclusive.
type Run struct {
	Lo, Hi rune
}

// Runs decomposes the set into its maximal contiguous runs, ascending.
// Rasterizer subset filters are built from this decomposition.
func (set Set) Runs() []Run {
	var runs []Run
	for i := 0; i < len(set.runes); {
		j := i
		for j+1 < len(set.runes) && set.runes[j+1] == set.runes[j]+1 {
			j++
		}
		runs = append(runs, Run{Lo: set.runes[i], Hi: set.runes[j]})
		i = j + 1
	}
	return runs
}

// String renders the set as a range specification parsable by FromRanges.
func (set Set) String() string {
	var sb strings.Builder
	for i, run := range set.Runs() {
		if i > 0 {
			sb.WriteByte(',')
		}
		if run.Lo == run.Hi {
			sb.WriteString(strconv.Itoa(int(run.Lo)))
		} else {
			sb.WriteString(strconv.Itoa(int(run.Lo)))
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(int(run.Hi)))
		}
	}
	return sb.String()
}

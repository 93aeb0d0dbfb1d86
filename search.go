// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package fmindex

import (
	"slices"
	"unicode/utf8"
)

// Search returns the ascending start offsets of every exact occurrence
// of pattern in the logical text, overlapping occurrences included. A
// pattern that does not occur yields an empty slice; an empty pattern is
// an error. The configured transforms apply to pattern first.
func (x *Index) Search(pattern string) ([]int, error) {
	if !utf8.ValidString(pattern) {
		return nil, ErrInvalidUTF8
	}
	return x.SearchRunes([]rune(x.transform(pattern)))
}

// SearchRunes is Search over a rune pattern. No transforms apply.
func (x *Index) SearchRunes(pattern []rune) ([]int, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	l, r, ok := x.interval(pattern)
	if !ok {
		return []int{}, nil
	}
	offsets := make([]int, 0, r-l+1)
	for k := l; k <= r; k++ {
		offsets = append(offsets, int(x.sa[k]))
	}
	slices.Sort(offsets)
	return offsets, nil
}

// Count reports how many times pattern occurs in the logical text. It
// resolves the suffix-array interval only, without extracting offsets.
func (x *Index) Count(pattern string) (int, error) {
	if !utf8.ValidString(pattern) {
		return 0, ErrInvalidUTF8
	}
	p := []rune(x.transform(pattern))
	if len(p) == 0 {
		return 0, ErrEmptyPattern
	}
	l, r, ok := x.interval(p)
	if !ok {
		return 0, nil
	}
	return int(r - l + 1), nil
}

// Contains reports whether pattern occurs in the logical text.
func (x *Index) Contains(pattern string) (bool, error) {
	n, err := x.Count(pattern)
	return n > 0, err
}

// interval narrows a suffix-array interval with backward search,
// consuming pattern runes from last to first. For each rune c the
// interval [l, r] becomes [C[c]+rank[c][l-1], C[c]+rank[c][r]-1], with
// rank[c][-1] taken as zero. ok is false when the interval empties or a
// pattern rune never occurs in the text.
func (x *Index) interval(pattern []rune) (l, r int32, ok bool) {
	l, r = 0, int32(len(x.bwt))-1
	for i := len(pattern) - 1; i >= 0; i-- {
		c := pattern[i]
		if c == sentinel {
			// The sentinel never occurs in the logical text.
			return 0, 0, false
		}
		base, hit := x.c[c]
		if !hit {
			return 0, 0, false
		}
		rank := x.rank[c]
		if l > 0 {
			l = base + rank[l-1]
		} else {
			l = base
		}
		r = base + rank[r] - 1
		if l > r {
			return 0, 0, false
		}
	}
	return l, r, true
}

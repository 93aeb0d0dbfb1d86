// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package fmindex implements an FM-index: a full-text exact-match index
// over a single mutable text, built on the Burrows-Wheeler transform and
// queried with backward search. The index reports every offset at which
// a pattern occurs without scanning the text per query. Single-rune
// inserts and deletes are supported by rebuilding the derived structures
// from the updated text.
package fmindex

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// sentinel terminates the indexed text. It must sort below every other
// rune, so NUL is used and NUL is rejected from all input.
const sentinel rune = 0

var (
	ErrEmptyText     = errors.New("fmindex: text must not be empty")
	ErrEmptyPattern  = errors.New("fmindex: pattern must not be empty")
	ErrNotSingleRune = errors.New("fmindex: insert expects exactly one rune")
	ErrIndexRange    = errors.New("fmindex: delete index out of range")
	ErrSentinelRune  = errors.New("fmindex: NUL is reserved as the sentinel")
	ErrInvalidUTF8   = errors.New("fmindex: invalid UTF-8 encoding in input")
)

// Index is a full-text index over a single text. The text and the three
// structures derived from it (suffix array, BWT, rank and C tables) form
// one generation; Insert and Delete discard the generation and derive a
// new one, nothing is patched in place.
//
// An Index is not safe for concurrent use. A rebuild replaces every
// derived structure, so interleaving Search with Insert or Delete needs
// an external lock held for the whole call.
type Index struct {
	text []rune // sentinel-terminated
	sa   []int32
	bwt  []rune
	rank map[rune][]int32
	c    map[rune]int32

	foldCase  bool
	normalize bool
}

// Builder configures an Index before construction.
type Builder struct {
	text      string
	foldCase  bool
	normalize bool
}

// NewBuilder prepares an index over text. Without options the index
// matches exactly as given.
func NewBuilder(text string) *Builder {
	return &Builder{text: text}
}

// FoldCase lowercases the text and every pattern before matching.
func (b *Builder) FoldCase() *Builder {
	b.foldCase = true
	return b
}

// Normalize applies Unicode NFC normalization to the text and every
// pattern before matching.
func (b *Builder) Normalize() *Builder {
	b.normalize = true
	return b
}

// Build constructs the index.
func (b *Builder) Build() (*Index, error) {
	if !utf8.ValidString(b.text) {
		return nil, ErrInvalidUTF8
	}
	x := &Index{foldCase: b.foldCase, normalize: b.normalize}
	if err := x.init([]rune(x.transform(b.text))); err != nil {
		return nil, err
	}
	return x, nil
}

// New creates an index over text, matching exactly as given.
func New(text string) (*Index, error) {
	return NewBuilder(text).Build()
}

// NewRunes creates an index over a rune text. No transforms apply.
func NewRunes(text []rune) (*Index, error) {
	x := &Index{}
	if err := x.init(slices.Clone(text)); err != nil {
		return nil, err
	}
	return x, nil
}

func (x *Index) init(text []rune) error {
	if len(text) == 0 {
		return ErrEmptyText
	}
	for _, r := range text {
		if r == sentinel {
			return ErrSentinelRune
		}
	}
	x.text = append(text, sentinel)
	x.build()
	return nil
}

// build derives a fresh generation of suffix array, BWT, rank table and
// C-table from the current text.
func (x *Index) build() {
	x.sa = suffixArray(x.text)
	x.bwt = bwtFromSA(x.text, x.sa)
	x.rank, x.c = countTables(x.bwt)
}

// transform applies the configured case folding and normalization.
func (x *Index) transform(s string) string {
	if x.foldCase {
		s = strings.ToLower(s)
	}
	if x.normalize {
		s = norm.NFC.String(s)
	}
	return s
}

// Insert appends one rune to the end of the logical text, immediately
// before the sentinel, and rebuilds the index. The configured transforms
// apply to s first; the result must be exactly one rune.
func (x *Index) Insert(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	s = x.transform(s)
	if utf8.RuneCountInString(s) != 1 {
		return ErrNotSingleRune
	}
	r, _ := utf8.DecodeRuneInString(s)
	return x.InsertRune(r)
}

// InsertRune appends r to the end of the logical text, bypassing the
// transforms, and rebuilds the index.
func (x *Index) InsertRune(r rune) error {
	if r == sentinel {
		return ErrSentinelRune
	}
	n := len(x.text)
	text := make([]rune, n+1)
	copy(text, x.text[:n-1])
	text[n-1] = r
	text[n] = sentinel
	x.text = text
	x.build()
	return nil
}

// Delete removes the rune at position i of the logical text and rebuilds
// the index. The sentinel cannot be deleted; a failed call leaves the
// index unchanged.
func (x *Index) Delete(i int) error {
	if i < 0 || i >= len(x.text)-1 {
		return ErrIndexRange
	}
	text := make([]rune, 0, len(x.text)-1)
	text = append(text, x.text[:i]...)
	text = append(text, x.text[i+1:]...)
	x.text = text
	x.build()
	return nil
}

// Len returns the length of the logical text, excluding the sentinel.
func (x *Index) Len() int {
	return len(x.text) - 1
}

// String returns the logical text, excluding the sentinel.
func (x *Index) String() string {
	return string(x.text[:len(x.text)-1])
}

// Text returns a copy of the indexed text including the trailing
// sentinel.
func (x *Index) Text() []rune {
	return slices.Clone(x.text)
}

// SuffixArray returns a copy of the suffix array of the current
// generation.
func (x *Index) SuffixArray() []int32 {
	return slices.Clone(x.sa)
}

// BWT returns a copy of the Burrows-Wheeler transform of the current
// generation.
func (x *Index) BWT() []rune {
	return slices.Clone(x.bwt)
}

// RankTable returns a copy of the per-rune cumulative occurrence rows
// over the BWT.
func (x *Index) RankTable() map[rune][]int32 {
	rank := make(map[rune][]int32, len(x.rank))
	for r, row := range x.rank {
		rank[r] = slices.Clone(row)
	}
	return rank
}

// CTable returns a copy of the smaller-runes count table.
func (x *Index) CTable() map[rune]int32 {
	c := make(map[rune]int32, len(x.c))
	for r, n := range x.c {
		c[r] = n
	}
	return c
}

// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package fmindex

import "slices"

// sortedAlphabet returns the distinct runes of s in ascending order.
func sortedAlphabet(s []rune) []rune {
	seen := make(map[rune]struct{}, 16)
	alphabet := make([]rune, 0, 16)
	for _, r := range s {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			alphabet = append(alphabet, r)
		}
	}
	slices.Sort(alphabet)
	return alphabet
}

// bwtFromSA derives the Burrows-Wheeler transform of text from its suffix
// array: entry k is the rune cyclically preceding the suffix starting at
// sa[k]. The suffix at position 0 is preceded by the text's last rune,
// which is always the sentinel, so the sentinel is substituted directly.
func bwtFromSA(text []rune, sa []int32) []rune {
	bwt := make([]rune, len(sa))
	for k, p := range sa {
		if p == 0 {
			bwt[k] = sentinel
		} else {
			bwt[k] = text[p-1]
		}
	}
	return bwt
}

// countTables builds the two occurrence tables backward search runs on.
// rank[c][k] is the number of occurrences of c in bwt[0..k] inclusive;
// ctable[c] is the number of runes in bwt lexicographically smaller
// than c. The rank rows are dense: one int32 per BWT position per
// distinct rune, trading space for constant-time lookups.
func countTables(bwt []rune) (map[rune][]int32, map[rune]int32) {
	alphabet := sortedAlphabet(bwt)
	rank := make(map[rune][]int32, len(alphabet))
	for _, c := range alphabet {
		row := make([]int32, len(bwt))
		var n int32
		for k, r := range bwt {
			if r == c {
				n++
			}
			row[k] = n
		}
		rank[c] = row
	}
	ctable := make(map[rune]int32, len(alphabet))
	var total int32
	for _, c := range alphabet {
		ctable[c] = total
		total += rank[c][len(bwt)-1]
	}
	return rank, ctable
}

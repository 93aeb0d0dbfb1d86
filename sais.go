// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package fmindex

// suffixArray builds the suffix array of text: a permutation of 0..n-1
// with the suffixes in ascending lexicographic order. Runes are first
// compressed to dense ranks so induced sorting can bucket directly by
// character regardless of how sparse the rune alphabet is.
func suffixArray(text []rune) []int32 {
	ranked, alphaSize := rankRunes(text)
	return sais(ranked, alphaSize)
}

// rankRunes maps each rune of text to its rank within the sorted distinct
// runes. Ranking is strictly monotone, so the suffix order of the ranked
// text equals the suffix order of the original.
func rankRunes(text []rune) ([]int32, int32) {
	alphabet := sortedAlphabet(text)
	rank := make(map[rune]int32, len(alphabet))
	for i, r := range alphabet {
		rank[r] = int32(i)
	}
	ranked := make([]int32, len(text))
	for i, r := range text {
		ranked[i] = rank[r]
	}
	return ranked, int32(len(alphabet))
}

// sais constructs the suffix array of text with the SA-IS induced sorting
// algorithm. Text values must be dense in [0, alphaSize).
func sais(text []int32, alphaSize int32) []int32 {
	sa := make([]int32, len(text))
	if len(text) > 1 {
		saisRec(text, sa, nil, alphaSize)
	}
	return sa
}

// saisRec runs one level of SA-IS. sa must be zeroed and the same length
// as text; work is scratch for frequency counts and bucket offsets, and
// is reallocated when too small for the current alphabet.
func saisRec(text, sa, work []int32, alphaSize int32) {
	if len(work) < int(alphaSize)*2 {
		work = make([]int32, alphaSize*2)
	}
	freq := work[:alphaSize]
	bucket := work[alphaSize : alphaSize*2]
	countFreq(text, freq)

	numLMS := placeLMS(text, sa, freq, bucket)
	if numLMS > 1 {
		induceSubL(text, sa, freq, bucket)
		induceSubS(text, sa, freq, bucket)
		// The sorted LMS start positions sit at the top of sa.
		names := sa[len(sa)-int(numLMS):]
		maxName := nameLMS(text, sa, names, numLMS)
		sub := sa[:numLMS]
		if maxName < numLMS {
			// Some LMS substrings repeat: order their suffixes by
			// recursing on the renamed summary string.
			saisRec(names, sub, work, maxName+1)
			unmapLMS(text, sa, sub, names)
		} else {
			// All LMS substrings are distinct, so the substring order
			// already is the LMS suffix order.
			copy(sub, names)
			clear(sa[numLMS:])
		}
		scatterLMS(text, sa, sub, freq, bucket)
	}
	induceL(text, sa, freq, bucket)
	induceS(text, sa, freq, bucket)
}

func countFreq(text, freq []int32) {
	clear(freq)
	for _, v := range text {
		freq[v]++
	}
}

// bucketHead writes the first index of each character's bucket.
func bucketHead(freq, bucket []int32) {
	var offset int32
	for i, n := range freq {
		bucket[i] = offset
		offset += n
	}
}

// bucketTail writes the last index of each character's bucket.
func bucketTail(freq, bucket []int32) {
	var offset int32
	for i, n := range freq {
		offset += n
		bucket[i] = offset - 1
	}
}

// placeLMS drops every LMS suffix (an S-type position with an L-type
// predecessor) at the tail of its character's bucket and returns how
// many there are. When several exist the last placed one is cleared
// again: it is the leftmost LMS position, which ends no LMS substring.
func placeLMS(text, sa, freq, bucket []int32) int32 {
	bucketTail(freq, bucket)
	var (
		c0, c1, last int32
		numLMS       int32
		sType        bool
	)
	for i := int32(len(text) - 1); i >= 0; i-- {
		c0, c1 = text[i], c0
		if c0 < c1 {
			sType = true
		} else if c0 > c1 && sType {
			sType = false
			b := bucket[c1]
			bucket[c1] = b - 1
			sa[b] = i + 1
			last = b
			numLMS++
		}
	}
	if numLMS > 1 {
		sa[last] = 0
	}
	return numLMS
}

// induceSubL performs the left-to-right induction pass used to sort LMS
// substrings. Entries queued for the S pass are negated; the scan leaves
// only the leftmost L-type index of each LMS substring in sa.
func induceSubL(text, sa, freq, bucket []int32) {
	bucketHead(freq, bucket)
	k := int32(len(text) - 1)
	c0, c1 := text[k-1], text[k]
	if c0 < c1 {
		k = -k
	}
	b := bucket[c1]
	bucket[c1] = b + 1
	sa[b] = k

	for i := 0; i < len(sa); i++ {
		j := sa[i]
		if j == 0 {
			continue
		}
		if j < 0 {
			// Already induced; restore for the S pass.
			sa[i] = -j
			continue
		}
		sa[i] = 0
		k = j - 1
		c0, c1 = text[k-1], text[k]
		if c0 < c1 {
			k = -k
		}
		b = bucket[c1]
		bucket[c1] = b + 1
		sa[b] = k
	}
}

// induceSubS performs the right-to-left induction pass, compacting the
// discovered LMS start positions, now sorted by LMS substring, into the
// top of sa.
func induceSubS(text, sa, freq, bucket []int32) {
	bucketTail(freq, bucket)
	top := len(sa)
	for i := len(sa) - 1; i >= 0; i-- {
		j := sa[i]
		if j == 0 {
			continue
		}
		sa[i] = 0
		if j < 0 {
			top--
			sa[top] = -j
			continue
		}
		k := j - 1
		c0, c1 := text[k-1], text[k]
		if c0 > c1 {
			k = -k
		}
		b := bucket[c1]
		bucket[c1] = b - 1
		sa[b] = k
	}
}

// markLMSLen stores the length of the LMS substring starting at position
// j into sa[j/2]. Adjacent LMS positions differ by at least two, so the
// halved slots never collide.
func markLMSLen(text, sa []int32) {
	var (
		c0, c1 int32
		prev   = int32(len(text)) - 1
		sType  bool
	)
	for i := len(text) - 1; i >= 0; i-- {
		c0, c1 = text[i], c0
		if c0 < c1 {
			sType = true
		} else if c0 > c1 && sType {
			sType = false
			sa[(i+1)/2] = prev - int32(i)
			prev = int32(i)
		}
	}
}

// sameLMS reports whether the LMS substrings at l and r are equal.
func sameLMS(text []int32, l, r, lLen, rLen int32) bool {
	if lLen != rLen {
		return false
	}
	for ; lLen > 0; lLen-- {
		if text[l] != text[r] {
			return false
		}
		l++
		r++
	}
	return true
}

// nameLMS assigns ascending names to the sorted LMS substrings in names,
// equal substrings sharing a name, and returns the maximum name. When
// names repeat it also packs the renamed summary string (the names in
// text order) back into the names slice for the recursion.
func nameLMS(text, sa, names []int32, numLMS int32) int32 {
	markLMSLen(text, sa)
	var (
		name    int32 = 1
		prev          = names[0]
		prevLen       = sa[prev/2]
	)
	sa[prev/2] = name
	for i := 1; i < len(names); i++ {
		curr := names[i]
		if !sameLMS(text, prev, curr, prevLen, sa[curr/2]) {
			name++
		}
		prev, prevLen = curr, sa[curr/2]
		sa[curr/2] = name
	}
	if name >= numLMS {
		return name
	}
	var j int
	for i := 0; i < len(sa)/2; i++ {
		if sa[i] <= 0 {
			continue
		}
		names[j] = sa[i]
		sa[i] = 0
		j++
	}
	return name
}

// unmapLMS translates the summary suffix array in sub back to text
// positions. lms is reused to hold the LMS positions in text order and
// is zeroed as it is consumed.
func unmapLMS(text, sa, sub, lms []int32) {
	var (
		c0, c1 int32
		j      = int32(len(lms))
		sType  bool
	)
	for i := len(text) - 1; i >= 0; i-- {
		c0, c1 = text[i], c0
		if c0 < c1 {
			sType = true
		} else if c0 > c1 && sType {
			sType = false
			j--
			lms[j] = int32(i) + 1
		}
	}
	for i := 0; i < len(sub); i++ {
		j = sub[i]
		sa[i] = lms[j]
		lms[j] = 0
	}
}

// scatterLMS moves the fully sorted LMS suffixes from sub to the tails
// of their buckets, recounting frequencies first since the recursion may
// have reused the scratch space.
func scatterLMS(text, sa, sub, freq, bucket []int32) {
	countFreq(text, freq)
	bucketTail(freq, bucket)
	for i := len(sub) - 1; i >= 0; i-- {
		j := sub[i]
		sub[i] = 0
		c := text[j]
		b := bucket[c]
		bucket[c] = b - 1
		sa[b] = j
	}
}

// induceL fills in all L-type suffixes left to right, negating the ones
// the S pass still has to process.
func induceL(text, sa, freq, bucket []int32) {
	bucketHead(freq, bucket)
	k := int32(len(text) - 1)
	c1 := text[k]
	if text[k-1] < c1 {
		k = -k
	}
	b := bucket[c1]
	bucket[c1] = b + 1
	sa[b] = k

	for i := 0; i < len(sa); i++ {
		j := sa[i]
		if j <= 0 {
			continue
		}
		k = j - 1
		c := text[k]
		if k > 0 && text[k-1] < c {
			k = -k
		}
		b = bucket[c]
		bucket[c] = b + 1
		sa[b] = k
	}
}

// induceS fills in all S-type suffixes right to left, completing the
// suffix array.
func induceS(text, sa, freq, bucket []int32) {
	bucketTail(freq, bucket)
	for i := len(sa) - 1; i >= 0; i-- {
		j := sa[i]
		if j >= 0 {
			continue
		}
		j = -j
		sa[i] = j
		k := j - 1
		c := text[k]
		if k > 0 && text[k-1] <= c {
			k = -k
		}
		b := bucket[c]
		bucket[c] = b - 1
		sa[b] = k
	}
}

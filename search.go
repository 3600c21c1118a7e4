// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import "sort"

// comparePrefix compares a suffix against a pattern, treating the pattern as
// the thing being searched for as a prefix: equal on the overlap and the
// suffix at least as long as the pattern is a match (0); equal on the
// overlap but the suffix shorter than the pattern means the suffix can never
// satisfy the prefix (-1, "suffix is less"); otherwise the sign of the
// first differing byte. This is the comparison the teacher's Lookup used,
// generalized from runes to bytes.
func comparePrefix(suf, pattern []byte) int {
	minLen := len(suf)
	if minLen > len(pattern) {
		minLen = len(pattern)
	}
	for i := 0; i < minLen; i++ {
		if suf[i] < pattern[i] {
			return -1
		}
		if suf[i] > pattern[i] {
			return 1
		}
	}
	if len(suf) < len(pattern) {
		return -1
	}
	return 0
}

// bounds returns [lo, hi) into sa such that sa[lo:hi] are exactly the
// suffixes starting with pattern, via two binary searches (core §4.6,
// O(|P| log n)).
func (s *SuffixArray[W]) bounds(pattern []byte) (lo, hi int) {
	n := len(s.sa)
	if len(pattern) == 0 {
		return 0, n
	}
	lo = sort.Search(n, func(i int) bool {
		return comparePrefix(s.text[widthToInt(s.sa[i]):], pattern) >= 0
	})
	hi = lo + sort.Search(n-lo, func(i int) bool {
		return comparePrefix(s.text[widthToInt(s.sa[lo+i]):], pattern) > 0
	})
	return lo, hi
}

// Find reports a position where pattern occurs in the text, or false if it
// does not occur. An empty pattern always matches at position 0 (core §7,
// §13 open question 2 — a pattern is a prefix of every suffix).
func (s *SuffixArray[W]) Find(pattern []byte) (W, bool) {
	if len(pattern) == 0 {
		return 0, true
	}
	lo, hi := s.bounds(pattern)
	if lo >= hi {
		var zero W
		return zero, false
	}
	return s.sa[lo], true
}

// FindAll returns every position where pattern occurs, in SA order
// (lexicographic-by-suffix — core §13 open question 1). An empty pattern
// returns the whole array, i.e. SA itself.
func (s *SuffixArray[W]) FindAll(pattern []byte) []W {
	lo, hi := s.bounds(pattern)
	out := make([]W, hi-lo)
	copy(out, s.sa[lo:hi])
	return out
}

// FindAllTextOrder is FindAll with results sorted by ascending text
// position instead of SA order; provided for callers who want the other of
// the two conventions core §13 weighs and rejects as primary.
func (s *SuffixArray[W]) FindAllTextOrder(pattern []byte) []W {
	out := s.FindAll(pattern)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FindBig is Find accelerated with the LCP array via the Manber–Myers
// technique (core §4.6): each comparison reuses the longest prefix already
// matched against a search boundary instead of re-scanning pattern from
// byte 0, giving O(|P| + log n) rather than O(|P| log n).
func (s *SuffixArray[W]) FindBig(pattern []byte) (W, bool) {
	if len(pattern) == 0 {
		return 0, true
	}
	lo, hi := s.acceleratedBounds(pattern)
	if lo >= hi {
		var zero W
		return zero, false
	}
	return s.sa[lo], true
}

// FindAllBig is FindAll accelerated the same way; once the bounds are known
// enumerating the occurrences is O(occ), for an overall O(|P| + occ).
func (s *SuffixArray[W]) FindAllBig(pattern []byte) []W {
	lo, hi := s.acceleratedBounds(pattern)
	out := make([]W, hi-lo)
	copy(out, s.sa[lo:hi])
	return out
}

// acceleratedBounds is the LCP-augmented counterpart of bounds.
func (s *SuffixArray[W]) acceleratedBounds(pattern []byte) (lo, hi int) {
	n := len(s.sa)
	if len(pattern) == 0 {
		return 0, n
	}
	if n == 0 {
		return 0, 0
	}
	r := s.rmq()
	lo = s.searchBound(pattern, r, false)
	if lo >= n || comparePrefix(s.text[widthToInt(s.sa[lo]):], pattern) != 0 {
		return lo, lo
	}
	hi = s.searchBound(pattern, r, true)
	return lo, hi
}

// compareFromPattern compares pattern against the suffix at sufPos the same
// way comparePrefix does, except it assumes the first `from` bytes are
// already known equal (an LCP lookup established that), so it only scans
// from that offset on. Returns the comparison sign (negative: suffix is
// less; 0: match; positive: suffix is greater) and the total matched
// length, capped at len(pattern) since bytes of the suffix beyond the
// pattern's length never affect a prefix match.
func compareFromPattern(text []byte, sufPos int, pattern []byte, from int) (cmp int, matched int) {
	i := from
	for i < len(pattern) && sufPos+i < len(text) && pattern[i] == text[sufPos+i] {
		i++
	}
	matched = i
	switch {
	case i == len(pattern):
		return 0, i
	case sufPos+i == len(text):
		return -1, i // suffix ran out before pattern did: suffix is a strict prefix, so "less"
	case text[sufPos+i] < pattern[i]:
		return -1, i
	default:
		return 1, i
	}
}

// searchBound finds the first index in [0,n) whose suffix compares >= 0
// against pattern (strictlyGreater == false), or > 0 (strictlyGreater ==
// true), using the two-sided Manber–Myers acceleration: l and rr track how
// much of pattern is already known to match the left and right search
// boundaries, and r.lcp gives the true common-prefix length between any two
// suffixes in O(1), letting most comparisons skip straight to the first
// byte that could possibly differ instead of rescanning from 0.
func (s *SuffixArray[W]) searchBound(pattern []byte, r *rmqTable, strictlyGreater bool) int {
	n := len(s.sa)
	ok := func(cmp int) bool {
		if strictlyGreater {
			return cmp > 0
		}
		return cmp >= 0
	}
	L, R := 0, n-1
	cmpL, l := compareFromPattern(s.text, widthToInt(s.sa[L]), pattern, 0)
	if ok(cmpL) {
		return L
	}
	cmpR, rr := compareFromPattern(s.text, widthToInt(s.sa[R]), pattern, 0)
	if !ok(cmpR) {
		return n
	}
	for R-L > 1 {
		M := (L + R) / 2
		var cmpM, m int
		if l >= rr {
			n1 := int(r.lcp(L, M))
			if n1 >= l {
				cmpM, m = compareFromPattern(s.text, widthToInt(s.sa[M]), pattern, l)
			} else {
				cmpM, m = 1, n1
			}
		} else {
			n2 := int(r.lcp(M, R))
			if n2 >= rr {
				cmpM, m = compareFromPattern(s.text, widthToInt(s.sa[M]), pattern, rr)
			} else {
				cmpM, m = -1, n2
			}
		}
		if ok(cmpM) {
			R, rr = M, m
		} else {
			L, l = M, m
		}
	}
	return R
}

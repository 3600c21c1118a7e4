// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

// kasaiLCP computes the LCP array of text from its suffix array sa using
// Kasai's algorithm (core §4.2), in O(n). sa holds plain int32 positions;
// callers narrow the result to their chosen Width after the fact, the same
// way sais() itself produces plain int32 positions that Build narrows.
func kasaiLCP(text []byte, sa []int32) []int32 {
	n := len(text)
	lcp := make([]int32, n)
	if n == 0 {
		return lcp
	}
	rank := make([]int32, n)
	for i, pos := range sa {
		rank[pos] = int32(i)
	}
	var h int32
	for i := 0; i < n; i++ {
		r := rank[i]
		if r == 0 {
			h = 0
			continue
		}
		j := int(sa[r-1])
		for i+int(h) < n && j+int(h) < n && text[i+int(h)] == text[j+int(h)] {
			h++
		}
		lcp[r] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

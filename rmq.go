// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

// rmqTable is a sparse table giving O(1) range-minimum queries over an LCP
// array, after O(n log n) preprocessing. This is the "precomputed LCP_LR
// values on the implicit binary-search tree over SA" of core §4.6 and the
// glossary entry "LCP-LR / Manber–Myers acceleration": rather than
// materializing a value per binary-search tree node up front, the sparse
// table answers "what is LCP(suffix_i, suffix_j)?" for any i<j on demand in
// O(1), which is equivalent and simpler to build correctly.
type rmqTable struct {
	base   []int32
	sparse [][]int32
	log2   []int
}

func buildRMQ(lcp []int32) *rmqTable {
	n := len(lcp)
	r := &rmqTable{base: lcp}
	if n == 0 {
		return r
	}
	log2 := make([]int, n+1)
	for i := 2; i <= n; i++ {
		log2[i] = log2[i/2] + 1
	}
	levels := log2[n] + 1
	sparse := make([][]int32, levels)
	sparse[0] = append([]int32(nil), lcp...)
	for j := 1; j < levels; j++ {
		half := 1 << (j - 1)
		length := n - (1 << j) + 1
		if length < 0 {
			length = 0
		}
		row := make([]int32, length)
		prev := sparse[j-1]
		for i := 0; i < length; i++ {
			a, b := prev[i], prev[i+half]
			if b < a {
				a = b
			}
			row[i] = a
		}
		sparse[j] = row
	}
	r.sparse = sparse
	r.log2 = log2
	return r
}

// queryMin returns min(lcp[l..hi]) inclusive.
func (r *rmqTable) queryMin(l, hi int) int32 {
	if l > hi {
		l, hi = hi, l
	}
	length := hi - l + 1
	k := r.log2[length]
	half := 1 << k
	a, b := r.sparse[k][l], r.sparse[k][hi-half+1]
	if b < a {
		return b
	}
	return a
}

// lcp returns LCP(suffix at sa[i], suffix at sa[j]) for i != j, i.e.
// min(lcp[min(i,j)+1 .. max(i,j)]).
func (r *rmqTable) lcp(i, j int) int32 {
	if i > j {
		i, j = j, i
	}
	return r.queryMin(i+1, j)
}

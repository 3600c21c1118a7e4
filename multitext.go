// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import "sort"

// This file adapts the teacher's generalized suffix array (GSA) — built
// for rune slices separated by a Unicode Private Use Area codepoint — to
// the byte/sentinel world the rest of this package uses. The overall
// layout is unchanged: one separator before the first document, one after
// every document, a single suffix array over the concatenation, and a
// per-document occurrence buffer filled in on each lookup. Only the
// separator value (0x00 instead of 0xE000) and the element type (byte
// instead of rune/int32) differ.

// multiEntry is the teacher's index type: per-document bookkeeping and a
// reusable buffer for the positions a lookup finds in that document.
type multiEntry struct {
	start int32 // position of this document's first content byte in text
	count int32
	occ   []int32
}

// DocMatch reports where a pattern occurs within one document of a
// MultiIndex, as an offset relative to that document's own start.
type DocMatch[W Width] struct {
	Doc int
	Pos []W
}

// MultiIndex is a generalized suffix array over several documents,
// concatenated internally with a 0x00 sentinel before the first document
// and after every document (SPEC_FULL.md §12 MultiText). Core §3.1's
// single-sentinel-per-text rule is specific to SuffixArray and Tree; a
// MultiIndex owns and inserts its own sentinels rather than requiring the
// caller to supply one.
type MultiIndex[W Width] struct {
	docs    [][]byte
	text    []byte
	sa      []int32
	docOf   []int32
	entries []multiEntry
	result  []DocMatch[W]
}

// NewMultiIndex builds a MultiIndex over docs. No document may contain an
// embedded 0x00 byte.
func NewMultiIndex[W Width](docs [][]byte) (*MultiIndex[W], error) {
	for _, d := range docs {
		for _, b := range d {
			if b == 0 {
				return nil, ErrSentinelNotUnique
			}
		}
	}

	total := 1
	for _, d := range docs {
		total += len(d) + 1
	}
	if !fitsWidth[W](total) {
		return nil, ErrWidthTooSmall
	}

	text := make([]byte, 0, total)
	docOf := make([]int32, 0, total)
	text = append(text, 0)
	docOf = append(docOf, 0)

	entries := make([]multiEntry, len(docs))
	for i, d := range docs {
		start := int32(len(text))
		text = append(text, d...)
		for range d {
			docOf = append(docOf, int32(i))
		}
		text = append(text, 0)
		docOf = append(docOf, int32(i))
		entries[i] = multiEntry{start: start, occ: make([]int32, len(d)+1)}
	}

	sa := sais(symbols(text), true)

	return &MultiIndex[W]{
		docs:    docs,
		text:    text,
		sa:      sa,
		docOf:   docOf,
		entries: entries,
		result:  make([]DocMatch[W], len(docs)),
	}, nil
}

// multiLookup finds suffixes of text starting with pattern, via the same
// two-binary-search bounds comparePrefix drives elsewhere in this package.
func multiLookup(text []byte, sa []int32, pattern []byte) []int32 {
	if len(pattern) == 0 {
		return sa
	}
	if len(sa) == 0 {
		return nil
	}
	l := sort.Search(len(sa), func(i int) bool {
		return comparePrefix(text[sa[i]:], pattern) >= 0
	})
	r := l + sort.Search(len(sa)-l, func(i int) bool {
		return comparePrefix(text[sa[l+i]:], pattern) > 0
	})
	return sa[l:r]
}

func multiLookupTextOrder(text []byte, sa []int32, pattern []byte) []int32 {
	matches := multiLookup(text, sa, pattern)
	out := make([]int32, len(matches))
	copy(out, matches)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// fillIdx attributes each position in res to its owning document's
// occurrence buffer, skipping over a sentinel to the content byte right
// after it (a suffix-array match can land exactly on a separator when the
// pattern itself starts with one, e.g. LookupPrefix's anchor). It returns
// how many distinct documents matched.
func (m *MultiIndex[W]) fillIdx(res []int32) int {
	var prev int32 = -1
	sz := 0
	for _, j := range res {
		if m.text[j] == 0 {
			if int(j) == len(m.text)-1 {
				break
			}
			j++
		}
		if j == prev {
			continue
		}
		d := m.docOf[j]
		e := &m.entries[d]
		if e.count == 0 {
			sz++
		}
		e.occ[e.count] = j - e.start
		e.count++
		prev = j
	}
	return sz
}

func (m *MultiIndex[W]) makeIndex(res []int32, sz int) []DocMatch[W] {
	out := m.result[:sz]
	k := 0
	var prev int32 = -1
	for _, j0 := range res {
		j := j0
		if m.text[j] == 0 {
			if int(j) == len(m.text)-1 {
				break
			}
			j++
		}
		if j == prev {
			continue
		}
		d := m.docOf[j]
		e := &m.entries[d]
		if e.count == 0 {
			continue
		}
		pos := make([]W, e.count)
		for i, v := range e.occ[:e.count] {
			pos[i] = widthFromInt[W](int(v))
		}
		out[k] = DocMatch[W]{Doc: int(d), Pos: pos}
		e.count = 0
		k++
		prev = j
	}
	return out
}

// LookupTextOrder finds pattern's occurrences across all documents,
// reported per document in ascending offset order.
func (m *MultiIndex[W]) LookupTextOrder(pattern []byte) []DocMatch[W] {
	res := multiLookupTextOrder(m.text, m.sa, pattern)
	sz := m.fillIdx(res)
	return m.makeIndex(res, sz)
}

// LookupSuffix reports, for each document that ends with suffix, the
// offset at which that suffix begins. An empty suffix matches every
// document at its own length (the position just past its last byte).
func (m *MultiIndex[W]) LookupSuffix(suffix []byte) []DocMatch[W] {
	if len(suffix) == 0 {
		out := m.result[:0]
		for i, d := range m.docs {
			out = append(out, DocMatch[W]{Doc: i, Pos: []W{widthFromInt[W](len(d))}})
		}
		return out
	}
	pat := make([]byte, len(suffix)+1)
	copy(pat, suffix)
	res := multiLookupTextOrder(m.text, m.sa, pat)
	sz := m.fillIdx(res)
	return m.makeIndex(res, sz)
}

// LookupPrefix reports, for each document that starts with prefix, the
// position of the match (always 0, since a prefix of a document can only
// occur at the document's own start). An empty prefix matches every
// document at position 0, the same "empty pattern matches everywhere"
// convention Tree.Find and SuffixArray.Find use.
func (m *MultiIndex[W]) LookupPrefix(prefix []byte) []DocMatch[W] {
	if len(prefix) == 0 {
		out := m.result[:0]
		for i := range m.docs {
			out = append(out, DocMatch[W]{Doc: i, Pos: []W{0}})
		}
		return out
	}
	pat := make([]byte, len(prefix)+1)
	pat[0] = 0
	copy(pat[1:], prefix)
	res := multiLookupTextOrder(m.text, m.sa, pat)
	sz := m.fillIdx(res)
	return m.makeIndex(res, sz)
}

// Len returns the number of documents in the index.
func (m *MultiIndex[W]) Len() int { return len(m.docs) }

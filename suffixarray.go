// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

// SuffixArray is an immutable suffix-array index (core §3.2) over a
// sentinel-terminated byte text. W is the integer width used to store
// positions; pick the narrowest width that fits len(text)-1.
type SuffixArray[W Width] struct {
	text     []byte
	sa       []W
	lcp      []W // computed lazily by LCP, cached thereafter
	rmqCache *rmqTable
}

// BuildSuffixArray constructs the suffix array of text using the default
// (explicit-stack-buffered) SA-IS variant — see design note "Recursion →
// explicit stack": the buffered variant is the preferred public entry
// point. text must end with the unique zero sentinel (core §3.1); violating
// that returns ErrMissingSentinel or ErrSentinelNotUnique. If W cannot
// address every position in text, Build returns ErrWidthTooSmall.
func BuildSuffixArray[W Width](text []byte) (*SuffixArray[W], error) {
	return buildSuffixArray[W](text, true)
}

// BuildSuffixArrayRecursive is identical to BuildSuffixArray except it uses
// the plain recursive SA-IS variant (core §4.1 "two construction variants"),
// which allocates fresh scratch space at every recursion level instead of
// reusing one shared buffer. Used to test the two variants produce
// bit-identical output; callers otherwise have no reason to prefer it.
func BuildSuffixArrayRecursive[W Width](text []byte) (*SuffixArray[W], error) {
	return buildSuffixArray[W](text, false)
}

func buildSuffixArray[W Width](text []byte, reuseBuffer bool) (*SuffixArray[W], error) {
	if err := validateSentinel(text); err != nil {
		return nil, err
	}
	if !fitsWidth[W](len(text)) {
		return nil, ErrWidthTooSmall
	}
	sa32 := sais(symbols(text), reuseBuffer)
	sa := make([]W, len(sa32))
	for i, p := range sa32 {
		sa[i] = widthFromInt[W](int(p))
	}
	return &SuffixArray[W]{text: text, sa: sa}, nil
}

// Len returns the number of suffixes in the index (== len(text)).
func (s *SuffixArray[W]) Len() int { return len(s.sa) }

// Text returns the indexed text. Callers must not mutate it.
func (s *SuffixArray[W]) Text() []byte { return s.text }

// At returns the starting position of the i-th suffix in SA order.
func (s *SuffixArray[W]) At(i int) W { return s.sa[i] }

// LCP returns the LCP array (core §4.2), computing and caching it on first
// use via Kasai's algorithm. Equal in output to the LCP array ArrayFromTree
// derives from the suffix tree (core §8 property 3).
func (s *SuffixArray[W]) LCP() []W {
	if s.lcp == nil {
		s.lcp = s.computeLCP()
	}
	return s.lcp
}

func (s *SuffixArray[W]) computeLCP() []W {
	sa32 := make([]int32, len(s.sa))
	for i, p := range s.sa {
		sa32[i] = int32(widthToInt(p))
	}
	lcp32 := kasaiLCP(s.text, sa32)
	out := make([]W, len(lcp32))
	for i, v := range lcp32 {
		out[i] = widthFromInt[W](int(v))
	}
	return out
}

// rmq returns the cached range-minimum structure over LCP(), building it on
// first use. Only FindBig/FindAllBig need it.
func (s *SuffixArray[W]) rmq() *rmqTable {
	if s.rmqCache == nil {
		lcpW := s.LCP()
		lcp32 := make([]int32, len(lcpW))
		for i, v := range lcpW {
			lcp32[i] = int32(widthToInt(v))
		}
		s.rmqCache = buildRMQ(lcp32)
	}
	return s.rmqCache
}

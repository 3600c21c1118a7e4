// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func genRandSymbols(size int) []int32 {
	input := make([]int32, size)
	for i := 0; i < size; i++ {
		input[i] = rand.Int31n(255)
	}
	return input
}

func makeSA(text []int32) []int32 {
	sa := make([]int32, len(text))
	for i := range len(text) {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return slices.Compare(text[sa[i]:], text[sa[j]:]) < 0
	})
	return sa
}

func TestSAIS(t *testing.T) {
	tests := map[string]struct {
		input []int32
	}{
		"empty string":       {input: []int32{}},
		"single character":   {input: []int32{100}},
		"same characters":    {input: []int32("aaaaaaaaaaaaaaaaaaaaa")},
		"1 LMS":               {input: []int32("aabab")},
		"2 LMS":               {input: []int32("aababab")},
		"banana":              {input: []int32("banana")},
		"mississippi":         {input: []int32("mississippi")},
		"repeated pattern":    {input: []int32{1, 2, 1, 2, 1, 2, 1, 2}},
		"reverse sorted":      {input: []int32{5, 4, 3, 2, 1}},
		"abracadabra":         {input: []int32("abracadabra")},
		"min/max edges":       {input: []int32{0, 255}},
		"alternating pattern": {input: []int32{3, 1, 3, 1, 3, 1}},
		"zero characters":     {input: []int32{0, 0, 0, 1, 1, 1}},
		"long random string":  {input: genRandSymbols(1000)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			want := makeSA(tc.input)
			assert.Equal(t, want, sais(tc.input, true), "buffered variant")
			assert.Equal(t, want, sais(tc.input, false), "recursive variant")
		})
	}
}

func TestSAISVariantsAgree(t *testing.T) {
	inputs := [][]int32{
		genRandSymbols(0),
		genRandSymbols(1),
		genRandSymbols(50),
		genRandSymbols(500),
		genRandSymbols(5000),
	}
	for _, in := range inputs {
		assert.Equal(t, sais(in, true), sais(in, false))
	}
}

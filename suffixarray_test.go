// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSuffixArraySentinelValidation(t *testing.T) {
	_, err := BuildSuffixArray[uint32]([]byte("banana"))
	assert.ErrorIs(t, err, ErrMissingSentinel)

	_, err = BuildSuffixArray[uint32]([]byte("ba\x00nana\x00"))
	assert.ErrorIs(t, err, ErrSentinelNotUnique)

	_, err = BuildSuffixArray[uint32]([]byte{})
	assert.ErrorIs(t, err, ErrMissingSentinel)
}

func TestBuildSuffixArrayWidthTooSmall(t *testing.T) {
	text := make([]byte, 300)
	for i := range text[:len(text)-1] {
		text[i] = 'a'
	}
	_, err := BuildSuffixArray[uint8](text)
	assert.ErrorIs(t, err, ErrWidthTooSmall)
}

func TestSuffixArrayIsPermutation(t *testing.T) {
	texts := []string{
		"banana\x00",
		"mississippi\x00",
		"\x00",
		"aaaaaaa\x00",
		"abracadabra\x00",
	}
	for _, text := range texts {
		sa, err := BuildSuffixArray[uint32]([]byte(text))
		require.NoError(t, err)
		seen := make(map[uint32]bool, sa.Len())
		for i := 0; i < sa.Len(); i++ {
			seen[sa.At(i)] = true
		}
		assert.Len(t, seen, len(text))
		for i := uint32(0); i < uint32(len(text)); i++ {
			assert.True(t, seen[i], "position %d missing from SA", i)
		}
	}
}

func TestSuffixArrayLexicographicOrder(t *testing.T) {
	text := []byte("mississippi\x00")
	sa, err := BuildSuffixArray[uint32](text)
	require.NoError(t, err)
	for i := 1; i < sa.Len(); i++ {
		a := text[sa.At(i-1):]
		b := text[sa.At(i):]
		assert.LessOrEqual(t, comparePrefix(a, b), 0)
	}
}

func TestSuffixArrayBuildVariantsAgree(t *testing.T) {
	text := []byte("abracadabra\x00")
	buffered, err := BuildSuffixArray[uint32](text)
	require.NoError(t, err)
	recursive, err := BuildSuffixArrayRecursive[uint32](text)
	require.NoError(t, err)
	assert.Equal(t, buffered.sa, recursive.sa)
}

func TestSuffixArrayWidthsAgree(t *testing.T) {
	text := []byte("mississippi\x00")
	sa32, err := BuildSuffixArray[uint32](text)
	require.NoError(t, err)
	sa64, err := BuildSuffixArray[uint64](text)
	require.NoError(t, err)
	for i := 0; i < sa32.Len(); i++ {
		assert.Equal(t, uint64(sa32.At(i)), sa64.At(i))
	}
}

func TestFind(t *testing.T) {
	text := []byte("banana\x00")
	sa, err := BuildSuffixArray[uint32](text)
	require.NoError(t, err)

	pos, ok := sa.Find([]byte("ana"))
	require.True(t, ok)
	assert.Contains(t, []uint32{1, 3}, pos)

	_, ok = sa.Find([]byte("xyz"))
	assert.False(t, ok)

	pos, ok = sa.Find(nil)
	require.True(t, ok)
	assert.Equal(t, uint32(0), pos)
}

func TestFindAll(t *testing.T) {
	text := []byte("banana\x00")
	sa, err := BuildSuffixArray[uint32](text)
	require.NoError(t, err)

	all := sa.FindAll([]byte("ana"))
	assert.ElementsMatch(t, []uint32{1, 3}, all)
	assert.True(t, sortedBySuffix(text, all), "FindAll must be in SA order")

	textOrder := sa.FindAllTextOrder([]byte("ana"))
	assert.Equal(t, []uint32{1, 3}, textOrder)

	assert.Equal(t, sa.sa, sa.FindAll(nil))
}

func sortedBySuffix(text []byte, positions []uint32) bool {
	for i := 1; i < len(positions); i++ {
		if comparePrefix(text[positions[i-1]:], text[positions[i]:]) > 0 {
			return false
		}
	}
	return true
}

func TestFindMissingPattern(t *testing.T) {
	sa, err := BuildSuffixArray[uint32]([]byte("aaaaaaa\x00"))
	require.NoError(t, err)
	assert.Empty(t, sa.FindAll([]byte("b")))
	_, ok := sa.Find([]byte("aaaaaaaa"))
	assert.False(t, ok)
}

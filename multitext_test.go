// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultiIndexRejectsEmbeddedSentinel(t *testing.T) {
	_, err := NewMultiIndex[uint32]([][]byte{[]byte("ba\x00na")})
	assert.ErrorIs(t, err, ErrSentinelNotUnique)
}

func TestMultiIndexLookupTextOrder(t *testing.T) {
	idx, err := NewMultiIndex[uint32]([][]byte{
		[]byte("banana"),
		[]byte("ananas"),
		[]byte("bandana"),
	})
	require.NoError(t, err)

	matches := idx.LookupTextOrder([]byte("ana"))
	byDoc := make(map[int][]uint32, len(matches))
	for _, m := range matches {
		byDoc[m.Doc] = m.Pos
	}
	assert.ElementsMatch(t, []uint32{1, 3}, byDoc[0], "banana")
	assert.ElementsMatch(t, []uint32{0, 2}, byDoc[1], "ananas")
	assert.ElementsMatch(t, []uint32{4}, byDoc[2], "bandana")
}

func TestMultiIndexLookupSuffix(t *testing.T) {
	idx, err := NewMultiIndex[uint32]([][]byte{
		[]byte("banana"),
		[]byte("cabana"),
	})
	require.NoError(t, err)

	matches := idx.LookupSuffix([]byte("ana"))
	var docs []int
	for _, m := range matches {
		docs = append(docs, m.Doc)
		assert.Equal(t, []uint32{3}, m.Pos)
	}
	assert.ElementsMatch(t, []int{0, 1}, docs)

	none := idx.LookupSuffix([]byte("xyz"))
	assert.Empty(t, none)
}

func TestMultiIndexLookupPrefix(t *testing.T) {
	idx, err := NewMultiIndex[uint32]([][]byte{
		[]byte("banana"),
		[]byte("bandana"),
		[]byte("cabana"),
	})
	require.NoError(t, err)

	matches := idx.LookupPrefix([]byte("ban"))
	var docs []int
	for _, m := range matches {
		docs = append(docs, m.Doc)
		assert.Equal(t, []uint32{0}, m.Pos)
	}
	assert.ElementsMatch(t, []int{0, 1}, docs)

	assert.Empty(t, idx.LookupPrefix([]byte("zzz")))
}

func TestMultiIndexEmptyQueries(t *testing.T) {
	idx, err := NewMultiIndex[uint32]([][]byte{
		[]byte("ab"),
		[]byte("cde"),
	})
	require.NoError(t, err)

	suf := idx.LookupSuffix(nil)
	require.Len(t, suf, 2)
	lenByDoc := map[int]uint32{}
	for _, m := range suf {
		lenByDoc[m.Doc] = m.Pos[0]
	}
	assert.Equal(t, uint32(2), lenByDoc[0])
	assert.Equal(t, uint32(3), lenByDoc[1])

	pre := idx.LookupPrefix(nil)
	require.Len(t, pre, 2)
	for _, m := range pre {
		assert.Equal(t, []uint32{0}, m.Pos)
	}
}

// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeSentinelValidation(t *testing.T) {
	_, err := BuildTree([]byte("banana"))
	assert.ErrorIs(t, err, ErrMissingSentinel)

	_, err = BuildTree([]byte("ba\x00nana\x00"))
	assert.ErrorIs(t, err, ErrSentinelNotUnique)
}

func TestTreeLeavesArePermutation(t *testing.T) {
	texts := []string{
		"banana\x00",
		"mississippi\x00",
		"\x00",
		"aaaaaaa\x00",
		"abracadabra\x00",
	}
	for _, text := range texts {
		tree, err := BuildTree([]byte(text))
		require.NoError(t, err)
		leaves := tree.collectLeaves(0)
		assert.Len(t, leaves, len(text))
		seen := make(map[int32]bool, len(leaves))
		for _, p := range leaves {
			seen[p] = true
		}
		for i := int32(0); i < int32(len(text)); i++ {
			assert.True(t, seen[i], "position %d missing from tree leaves", i)
		}
	}
}

func TestTreeFind(t *testing.T) {
	tree, err := BuildTree([]byte("banana\x00"))
	require.NoError(t, err)

	pos, ok := tree.Find([]byte("ana"))
	require.True(t, ok)
	assert.Contains(t, []int{1, 3}, pos)

	_, ok = tree.Find([]byte("xyz"))
	assert.False(t, ok)

	pos, ok = tree.Find(nil)
	require.True(t, ok)
	assert.Equal(t, 0, pos)
}

func TestTreeFindAll(t *testing.T) {
	tree, err := BuildTree([]byte("banana\x00"))
	require.NoError(t, err)

	all := tree.FindAll([]byte("ana"))
	assert.ElementsMatch(t, []int{1, 3}, all)

	assert.Empty(t, tree.FindAll([]byte("xyz")))
}

func TestTreeEveryInternalNodeHasASuffixLink(t *testing.T) {
	tree, err := BuildTree([]byte("mississippi\x00"))
	require.NoError(t, err)
	for i := range tree.nodes {
		nd := &tree.nodes[i]
		if nd.isLeaf() {
			continue
		}
		assert.GreaterOrEqual(t, nd.link, int32(0), "node %d has no suffix link", i)
	}
}

func TestTreeEveryInternalNodeHasAtLeastTwoChildren(t *testing.T) {
	texts := []string{"banana\x00", "mississippi\x00", "abracadabra\x00"}
	for _, text := range texts {
		tree, err := BuildTree([]byte(text))
		require.NoError(t, err)
		for i := range tree.nodes {
			nd := &tree.nodes[i]
			if nd.isLeaf() {
				continue
			}
			assert.GreaterOrEqual(t, len(nd.children), 2, "internal node %d in %q has fewer than 2 children", i, text)
		}
	}
}

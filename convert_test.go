// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayFromTreeMatchesDirectBuild(t *testing.T) {
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

		fromTree, err := ArrayFromTree[uint32](tree)
		require.NoError(t, err)
		direct, err := BuildSuffixArray[uint32]([]byte(text))
		require.NoError(t, err)

		assert.Equal(t, direct.sa, fromTree.sa, "SA mismatch for %q", text)
		assert.Equal(t, direct.LCP(), fromTree.LCP(), "LCP mismatch for %q", text)
	}
}

func TestArrayFromTreeStackAndRecursiveAgree(t *testing.T) {
	texts := []string{"banana\x00", "mississippi\x00", "\x00", "abracadabra\x00"}
	for _, text := range texts {
		tree, err := BuildTree([]byte(text))
		require.NoError(t, err)
		saStack, lcpStack := arrayFromTreeStack(tree)
		saRec, lcpRec := arrayFromTreeRecursive(tree)
		assert.Equal(t, saStack, saRec, "SA mismatch for %q", text)
		assert.Equal(t, lcpStack, lcpRec, "LCP mismatch for %q", text)
	}
}

func TestTreeFromArrayRoundTrip(t *testing.T) {
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

		rebuilt := TreeFromArray(sa)
		direct, err := BuildTree([]byte(text))
		require.NoError(t, err)

		assertTreesIsomorphic(t, direct, rebuilt, text)
	}
}

// assertTreesIsomorphic compares two trees for structural equality up to
// node-arena ordering: it walks both in the same ascending-child-byte
// order and requires every edge label and leaf position to match. Suffix
// links are not compared.
func assertTreesIsomorphic(t *testing.T, want, got *Tree, text string) {
	t.Helper()
	type walked struct {
		edge    string
		leaf    bool
		leafPos int32
	}
	var collect func(tr *Tree, node int32) []walked
	collect = func(tr *Tree, node int32) []walked {
		nd := &tr.nodes[node]
		var out []walked
		for _, key := range sortedKeys(nd.children) {
			child := nd.children[key]
			cn := &tr.nodes[child]
			edge := string(tr.text[cn.start:cn.end])
			if cn.isLeaf() {
				out = append(out, walked{edge: edge, leaf: true, leafPos: cn.leafPos})
			} else {
				out = append(out, walked{edge: edge})
				out = append(out, collect(tr, child)...)
			}
		}
		return out
	}
	wantWalk := collect(want, 0)
	gotWalk := collect(got, 0)
	if diff := cmp.Diff(wantWalk, gotWalk, cmp.AllowUnexported(walked{})); diff != "" {
		t.Errorf("tree shape mismatch for %q (-want +got):\n%s", text, diff)
	}
}

func TestTreeFromArraySetsEverySuffixLink(t *testing.T) {
	texts := []string{"banana\x00", "mississippi\x00", "abracadabra\x00"}
	for _, text := range texts {
		sa, err := BuildSuffixArray[uint32]([]byte(text))
		require.NoError(t, err)
		tree := TreeFromArray(sa)
		for i := range tree.nodes {
			nd := &tree.nodes[i]
			if nd.isLeaf() {
				continue
			}
			assert.GreaterOrEqual(t, nd.link, int32(0), "node %d in %q has an unset suffix link", i, text)
		}
	}
}

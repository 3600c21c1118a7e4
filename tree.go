// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

import "sort"

// openEnd marks a leaf edge whose upper bound is still the live end of
// construction (core §4.3 "open edge"), rather than a fixed position.
const openEnd = -1

// treeNode is one arena slot of a Tree (design note "Suffix-link cycles":
// nodes live in a flat arena and reference each other by small integer
// handles, sidestepping cyclic ownership and keeping construction
// cache-friendly). A node with no children is a leaf; leafPos is only
// meaningful then.
type treeNode struct {
	start, end int32
	parent     int32
	children   map[byte]int32
	link       int32
	leafPos    int32
}

func newTreeNode(start, end int32) treeNode {
	return treeNode{start: start, end: end, parent: -1, link: -1, leafPos: -1}
}

func (n *treeNode) isLeaf() bool { return len(n.children) == 0 }

// Tree is an immutable suffix tree (core §3.4) built either by Ukkonen's
// online algorithm (BuildTree) or by conversion from a suffix array
// (TreeFromArray).
type Tree struct {
	text  []byte
	nodes []treeNode
}

// BuildTree constructs the suffix tree of text via Ukkonen's algorithm
// (core §4.3), in O(n) amortised. text must end with the unique zero
// sentinel (core §3.1).
func BuildTree(text []byte) (*Tree, error) {
	if err := validateSentinel(text); err != nil {
		return nil, err
	}
	return buildUkkonen(text), nil
}

// sortedKeys returns a node's child edge-labelling bytes in ascending
// order, the traversal order core §4.4 requires ("visiting children in
// ascending first-byte order").
func sortedKeys(children map[byte]int32) []byte {
	keys := make([]byte, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// buildUkkonen implements the per-phase protocol of core §4.3 over a flat
// node arena. active_node/active_edge/active_len/remainder/end/last_new
// are exactly the state core §4.3 names; edgeLength treats an edge whose
// end is still openEnd as reaching up to the current phase's end.
func buildUkkonen(text []byte) *Tree {
	n := int32(len(text))
	nodes := make([]treeNode, 1, n+1)
	nodes[0] = newTreeNode(0, 0)
	nodes[0].children = make(map[byte]int32)
	nodes[0].link = 0

	var (
		activeNode int32
		activeEdge byte
		activeLen  int32
		remainder  int32
		end        int32 = -1
		lastNew    int32 = -1
	)

	edgeLength := func(idx int32) int32 {
		nd := &nodes[idx]
		e := nd.end
		if e == openEnd {
			e = end + 1
		}
		return e - nd.start
	}

	for i := int32(0); i < n; i++ {
		end = i
		remainder++
		lastNew = -1

		for remainder > 0 {
			if activeLen == 0 {
				activeEdge = text[i]
			}
			childIdx, hasChild := nodes[activeNode].children[activeEdge]
			if !hasChild {
				leaf := newTreeNode(i, openEnd)
				leaf.parent = activeNode
				leaf.leafPos = i - remainder + 1
				nodes = append(nodes, leaf)
				newIdx := int32(len(nodes) - 1)
				nodes[activeNode].children[activeEdge] = newIdx
				if lastNew != -1 {
					nodes[lastNew].link = activeNode
					lastNew = -1
				}
				remainder--
			} else {
				if elen := edgeLength(childIdx); activeLen >= elen {
					// Walk down: the active point lies at or past the end of this edge.
					activeNode = childIdx
					activeLen -= elen
					activeEdge = text[i-activeLen]
					continue
				}
				edgeStart := nodes[childIdx].start
				next := text[edgeStart+activeLen]
				if next == text[i] {
					// Observation rule: extension already implicit in the tree.
					activeLen++
					if lastNew != -1 {
						nodes[lastNew].link = activeNode
						lastNew = -1
					}
					break
				}
				splitAt := edgeStart + activeLen
				split := newTreeNode(edgeStart, splitAt)
				split.parent = activeNode
				split.children = make(map[byte]int32)
				split.link = 0 // provisional, may be overwritten below or later this phase
				nodes = append(nodes, split)
				splitIdx := int32(len(nodes) - 1)

				nodes[childIdx].start = splitAt
				nodes[childIdx].parent = splitIdx
				nodes[splitIdx].children[text[splitAt]] = childIdx

				leaf := newTreeNode(i, openEnd)
				leaf.parent = splitIdx
				leaf.leafPos = i - remainder + 1
				nodes = append(nodes, leaf)
				leafIdx := int32(len(nodes) - 1)
				nodes[splitIdx].children[text[i]] = leafIdx

				nodes[activeNode].children[activeEdge] = splitIdx

				if lastNew != -1 {
					nodes[lastNew].link = splitIdx
				}
				lastNew = splitIdx
				remainder--
			}

			if activeNode == 0 && activeLen > 0 {
				activeLen--
				activeEdge = text[i-remainder+1]
			} else if activeNode != 0 {
				if nodes[activeNode].link != -1 {
					activeNode = nodes[activeNode].link
				} else {
					activeNode = 0
				}
			}

			for activeLen > 0 {
				childIdx, ok := nodes[activeNode].children[activeEdge]
				if !ok {
					break
				}
				elen := edgeLength(childIdx)
				if activeLen < elen {
					break
				}
				activeLen -= elen
				activeNode = childIdx
				if activeLen > 0 {
					activeEdge = text[i-activeLen]
				}
			}
		}
	}

	for idx := range nodes {
		if nodes[idx].end == openEnd {
			nodes[idx].end = n
		}
		if nodes[idx].link == -1 {
			nodes[idx].link = 0
		}
	}

	return &Tree{text: text, nodes: nodes}
}

// walkTo follows pattern from the root, one byte at a time across edges,
// returning the node at or immediately below the point where the match
// ends. ok is false if pattern does not occur anywhere in the tree.
func (t *Tree) walkTo(pattern []byte) (node int32, ok bool) {
	cur := int32(0)
	pos := 0
	for pos < len(pattern) {
		nd := &t.nodes[cur]
		childIdx, has := nd.children[pattern[pos]]
		if !has {
			return 0, false
		}
		child := &t.nodes[childIdx]
		edgeLen := int(child.end - child.start)
		matchLen := len(pattern) - pos
		if matchLen > edgeLen {
			matchLen = edgeLen
		}
		for k := 0; k < matchLen; k++ {
			if t.text[int(child.start)+k] != pattern[pos+k] {
				return 0, false
			}
		}
		pos += matchLen
		cur = childIdx
	}
	return cur, true
}

// collectLeaves returns the leaf positions under node, in the ascending
// first-byte child order of core §4.4 — which is exactly SA order, so a
// tree-walk search and an array search agree on FindAll's ordering
// convention (core §13 open question 1).
func (t *Tree) collectLeaves(node int32) []int32 {
	var out []int32
	stack := []int32{node}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &t.nodes[idx]
		if nd.isLeaf() {
			out = append(out, nd.leafPos)
			continue
		}
		keys := sortedKeys(nd.children)
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, nd.children[keys[i]])
		}
	}
	return out
}

// Find walks the tree to locate pattern (core §4.6 "suffix-tree search")
// and reports the smallest text position among the occurrences found, the
// same convention core §4.6 specifies ("the smallest-indexed one is
// reported"). An empty pattern always matches at position 0.
func (t *Tree) Find(pattern []byte) (int, bool) {
	node, ok := t.walkTo(pattern)
	if !ok {
		return 0, false
	}
	leaves := t.collectLeaves(node)
	if len(leaves) == 0 {
		return 0, false
	}
	min := leaves[0]
	for _, p := range leaves[1:] {
		if p < min {
			min = p
		}
	}
	return int(min), true
}

// FindAll returns every occurrence of pattern, in the same SA-order
// convention ArrayFromTree and SuffixArray.FindAll use.
func (t *Tree) FindAll(pattern []byte) []int {
	node, ok := t.walkTo(pattern)
	if !ok {
		return nil
	}
	leaves := t.collectLeaves(node)
	out := make([]int, len(leaves))
	for i, p := range leaves {
		out[i] = int(p)
	}
	return out
}

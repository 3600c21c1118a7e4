// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package suffixkit

// This file implements the two converters of core §4.4 and §4.5: turning a
// Tree into (SA, LCP) and turning (SA, LCP, T) back into a Tree. The
// tree→array direction is offered in both an explicit-stack and a
// plain-recursive form (design note "Recursion → explicit stack"), so the
// two can be checked against each other for the same input; the
// array→tree direction has a single, iterative form (treeFromArray).

// treeWalkFrame is one level of the explicit-stack DFS used by
// arrayFromTreeStack: the node being visited, its string depth, and the
// still-to-process slice of its sorted child keys.
type treeWalkFrame struct {
	node  int32
	depth int32
	keys  []byte
	next  int
}

// arrayFromTreeStack performs the DFS of core §4.4 with an explicit stack.
// LCP[0] is always 0; for every later leaf, LCP[k] is the minimum string
// depth recorded while ascending from the previous leaf to this one, which
// is exactly the depth of their lowest common ancestor.
func arrayFromTreeStack(t *Tree) (sa, lcp []int32) {
	n := len(t.nodes)
	sa = make([]int32, 0, n)
	lcp = make([]int32, 0, n)

	stack := []treeWalkFrame{{node: 0, depth: 0, keys: sortedKeys(t.nodes[0].children)}}
	const noMin = -1
	minDepth := int32(noMin)
	haveLeaf := false

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.keys) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if minDepth == noMin || parent.depth < minDepth {
					minDepth = parent.depth
				}
			}
			continue
		}
		key := top.keys[top.next]
		top.next++
		childIdx := t.nodes[top.node].children[key]
		child := &t.nodes[childIdx]
		childDepth := top.depth + (child.end - child.start)

		if child.isLeaf() {
			if !haveLeaf {
				lcp = append(lcp, 0)
				haveLeaf = true
			} else {
				if minDepth == noMin {
					minDepth = top.depth
				}
				lcp = append(lcp, minDepth)
			}
			minDepth = noMin
			sa = append(sa, child.leafPos)
			if minDepth == noMin || top.depth < minDepth {
				minDepth = top.depth
			}
		} else {
			stack = append(stack, treeWalkFrame{node: childIdx, depth: childDepth, keys: sortedKeys(child.children)})
		}
	}
	return sa, lcp
}

// arrayFromTreeRecursive is arrayFromTreeStack's plain-recursive twin,
// used only to cross-check the two give identical output.
func arrayFromTreeRecursive(t *Tree) (sa, lcp []int32) {
	const noMin = -1
	minDepth := int32(noMin)
	haveLeaf := false

	var visit func(node int32, depth int32)
	visit = func(node int32, depth int32) {
		nd := &t.nodes[node]
		for _, key := range sortedKeys(nd.children) {
			childIdx := nd.children[key]
			child := &t.nodes[childIdx]
			childDepth := depth + (child.end - child.start)
			if child.isLeaf() {
				if !haveLeaf {
					lcp = append(lcp, 0)
					haveLeaf = true
				} else {
					if minDepth == noMin {
						minDepth = depth
					}
					lcp = append(lcp, minDepth)
				}
				minDepth = noMin
				sa = append(sa, child.leafPos)
			} else {
				visit(childIdx, childDepth)
			}
			if minDepth == noMin || depth < minDepth {
				minDepth = depth
			}
		}
	}
	visit(0, 0)
	return sa, lcp
}

// ArrayFromTree converts t to a suffix array and its LCP array, using the
// explicit-stack traversal.
func ArrayFromTree[W Width](t *Tree) (*SuffixArray[W], error) {
	return arrayFromTree[W](t, arrayFromTreeStack)
}

// ArrayFromTreeRecursive is ArrayFromTree using the recursive traversal
// instead; the two must always agree (core §8 property 4).
func ArrayFromTreeRecursive[W Width](t *Tree) (*SuffixArray[W], error) {
	return arrayFromTree[W](t, arrayFromTreeRecursive)
}

func arrayFromTree[W Width](t *Tree, conv func(*Tree) ([]int32, []int32)) (*SuffixArray[W], error) {
	if !fitsWidth[W](len(t.text)) {
		return nil, ErrWidthTooSmall
	}
	sa32, lcp32 := conv(t)
	sa := make([]W, len(sa32))
	for i, v := range sa32 {
		sa[i] = widthFromInt[W](int(v))
	}
	lcp := make([]W, len(lcp32))
	for i, v := range lcp32 {
		lcp[i] = widthFromInt[W](int(v))
	}
	return &SuffixArray[W]{text: t.text, sa: sa, lcp: lcp}, nil
}

// rightmostEntry is one element of the rightmost-path stack
// treeFromArray maintains while folding in suffixes left to right.
type rightmostEntry struct {
	node  int32
	depth int32
}

// treeFromArray builds a Tree from (text, sa, lcp) via the standard
// LCP-interval / Cartesian-tree construction of core §4.5: the rightmost
// path from the root to the most recently inserted leaf is popped back to
// the depth of the next LCP value, then either reused (if a node already
// sits at exactly that depth) or split.
//
// Suffix links are then wired in a single top-down pass: for an internal
// node v with parent u, link(v) is found by walking from link(u) along v's
// own edge label (or, when u is the root, along that label with its first
// byte dropped) — a direct consequence of how suffix links are defined, and
// the same skip/count technique Ukkonen's construction itself uses, making
// the whole pass O(n) amortised rather than O(n) per node.
func treeFromArray(text []byte, sa, lcp []int32) *Tree {
	n := len(sa)
	tn := int32(len(text))
	nodes := make([]treeNode, 1, 2*n+1)
	nodes[0] = newTreeNode(0, 0)
	nodes[0].children = make(map[byte]int32)
	nodes[0].link = 0

	if n == 0 {
		return &Tree{text: text, nodes: nodes}
	}

	newLeaf := func(parent, edgeStart, leafPos int32) int32 {
		l := newTreeNode(edgeStart, tn)
		l.parent = parent
		l.leafPos = leafPos
		nodes = append(nodes, l)
		return int32(len(nodes) - 1)
	}

	leaf0 := newLeaf(0, sa[0], sa[0])
	nodes[0].children[text[sa[0]]] = leaf0
	path := []rightmostEntry{{node: 0, depth: 0}, {node: leaf0, depth: tn - sa[0]}}

	for i := 1; i < n; i++ {
		d := lcp[i]
		var popped rightmostEntry
		for len(path) > 1 && path[len(path)-1].depth > d {
			popped = path[len(path)-1]
			path = path[:len(path)-1]
		}
		top := path[len(path)-1]

		if top.depth == d {
			leaf := newLeaf(top.node, sa[i]+d, sa[i])
			nodes[top.node].children[text[sa[i]+d]] = leaf
			path = append(path, rightmostEntry{node: leaf, depth: tn - sa[i]})
			continue
		}

		childStart := nodes[popped.node].start
		splitAt := childStart + (d - top.depth)
		split := newTreeNode(childStart, splitAt)
		split.parent = top.node
		split.children = make(map[byte]int32)
		nodes = append(nodes, split)
		splitIdx := int32(len(nodes) - 1)

		nodes[top.node].children[text[childStart]] = splitIdx
		nodes[popped.node].start = splitAt
		nodes[popped.node].parent = splitIdx
		nodes[splitIdx].children[text[splitAt]] = popped.node

		leaf := newLeaf(splitIdx, sa[i]+d, sa[i])
		nodes[splitIdx].children[text[sa[i]+d]] = leaf

		path = append(path, rightmostEntry{node: splitIdx, depth: d})
		path = append(path, rightmostEntry{node: leaf, depth: tn - sa[i]})
	}

	wireSuffixLinks(nodes, text)
	return &Tree{text: text, nodes: nodes}
}

// wireSuffixLinks fills in link for every internal node of nodes, given
// that each node's parent/start/end fields are already in their final
// form. Internal nodes are processed in non-decreasing depth order so that
// a node's parent's link is always already known.
func wireSuffixLinks(nodes []treeNode, text []byte) {
	type internal = struct {
		idx   int32
		depth int32
	}
	var all []internal
	depthOf := make([]int32, len(nodes))
	stack := []int32{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &nodes[idx]
		if nd.isLeaf() {
			continue
		}
		all = append(all, internal{idx: idx, depth: depthOf[idx]})
		for _, c := range nd.children {
			depthOf[c] = depthOf[idx] + (nodes[c].end - nodes[c].start)
			stack = append(stack, c)
		}
	}
	sortInternalsByDepth(all)

	for _, e := range all {
		v := e.idx
		if v == 0 {
			nodes[0].link = 0
			continue
		}
		u := nodes[v].parent
		var startNode, pos, remaining int32
		if u == 0 {
			startNode = nodes[0].link
			pos = nodes[v].start + 1
			remaining = (nodes[v].end - nodes[v].start) - 1
		} else {
			startNode = nodes[u].link
			pos = nodes[v].start
			remaining = nodes[v].end - nodes[v].start
		}
		cur := startNode
		for remaining > 0 {
			childIdx := nodes[cur].children[text[pos]]
			elen := nodes[childIdx].end - nodes[childIdx].start
			cur = childIdx
			pos += elen
			remaining -= elen
		}
		nodes[v].link = cur
	}
}

// sortInternalsByDepth is an insertion sort: the number of internal nodes
// is small relative to typical inputs and this keeps wireSuffixLinks
// free of an extra package import.
func sortInternalsByDepth(all []struct {
	idx   int32
	depth int32
}) {
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].depth < all[j-1].depth; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
}

// TreeFromArray reconstructs a Tree from an already-built suffix array and
// its LCP array (core §4.5).
func TreeFromArray[W Width](s *SuffixArray[W]) *Tree {
	sa32 := make([]int32, s.Len())
	for i, v := range s.sa {
		sa32[i] = int32(widthToInt(v))
	}
	lcp32 := make([]int32, s.Len())
	for i, v := range s.LCP() {
		lcp32[i] = int32(widthToInt(v))
	}
	return treeFromArray(s.text, sa32, lcp32)
}

// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"
	"math"
	"strings"
)

// This file implements the red-black tree underlying Index.  Nodes are kept
// in a flat slice and refer to each other by nodeID; left and right own their
// subtrees, parent is a plain back-reference used during rebalancing.  There
// is no shared sentinel node: nilNode stands in for every absent child or
// parent, is implicitly black, and has max == posTypeMin.

type color uint8

const (
	red color = iota
	black
)

func (c color) String() string {
	if c == red {
		return "red"
	}
	return "black"
}

type nodeID int32

const nilNode nodeID = -1

// posTypeMin is the identity element for max(); it is the aggregate of an
// empty subtree.
const posTypeMin = math.MinInt32

type node struct {
	key  PosType // inclusive low bound; the ordering key
	high PosType // exclusive high bound
	max  PosType // max high over this node and its subtrees
	// left and right own their subtrees.  parent does not.
	left, right, parent nodeID
	color               color
}

// rbTree is an arena-backed red-black tree keyed by interval start, augmented
// with the subtree maximum of interval ends.
type rbTree struct {
	nodes []node
	root  nodeID
}

func newRBTree() rbTree {
	return rbTree{root: nilNode}
}

func (t *rbTree) len() int {
	return len(t.nodes)
}

func (t *rbTree) colorOf(x nodeID) color {
	if x == nilNode {
		return black
	}
	return t.nodes[x].color
}

func (t *rbTree) maxOf(x nodeID) PosType {
	if x == nilNode {
		return posTypeMin
	}
	return t.nodes[x].max
}

func (t *rbTree) parentOf(x nodeID) nodeID {
	if x == nilNode {
		return nilNode
	}
	return t.nodes[x].parent
}

// updateMax recomputes x.max from x.high and the children's aggregates.  x
// must not be nilNode.
func (t *rbTree) updateMax(x nodeID) {
	n := &t.nodes[x]
	m := n.high
	if l := t.maxOf(n.left); l > m {
		m = l
	}
	if r := t.maxOf(n.right); r > m {
		m = r
	}
	n.max = m
}

// replaceChild points x's parent (or the root) at y in place of x.
func (t *rbTree) replaceChild(x, y nodeID) {
	p := t.nodes[x].parent
	t.nodes[y].parent = p
	switch {
	case p == nilNode:
		t.root = y
	case t.nodes[p].left == x:
		t.nodes[p].left = y
	default:
		t.nodes[p].right = y
	}
}

// rotateLeft moves x's right child y into x's position, making x y's left
// child.  x.right must not be nilNode.
func (t *rbTree) rotateLeft(x nodeID) {
	y := t.nodes[x].right
	yl := t.nodes[y].left
	t.nodes[x].right = yl
	if yl != nilNode {
		t.nodes[yl].parent = x
	}
	t.replaceChild(x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y
	// x is now below y, so it has to be fixed first.
	t.updateMax(x)
	t.updateMax(y)
}

// rotateRight is the mirror image of rotateLeft.  x.left must not be nilNode.
func (t *rbTree) rotateRight(x nodeID) {
	y := t.nodes[x].left
	yr := t.nodes[y].right
	t.nodes[x].left = yr
	if yr != nilNode {
		t.nodes[yr].parent = x
	}
	t.replaceChild(x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y
	t.updateMax(x)
	t.updateMax(y)
}

// insert adds the interval [key, high).  Equal keys always descend to the
// right, so insertion order decides the shape among duplicates but never the
// result of a containment query.
func (t *rbTree) insert(key, high PosType) {
	y := nilNode
	x := t.root
	for x != nilNode {
		y = x
		if key < t.nodes[x].key {
			x = t.nodes[x].left
		} else {
			x = t.nodes[x].right
		}
	}
	z := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		key:    key,
		high:   high,
		max:    high,
		left:   nilNode,
		right:  nilNode,
		parent: y,
		color:  red,
	})
	switch {
	case y == nilNode:
		t.root = z
	case key < t.nodes[y].key:
		t.nodes[y].left = z
	default:
		t.nodes[y].right = z
	}
	// The rotations in fixup only repair max locally, so every ancestor's
	// aggregate has to include the new interval before rebalancing starts.
	for p := y; p != nilNode; p = t.nodes[p].parent {
		t.updateMax(p)
	}
	t.fixup(z)
}

// fixup restores the red-black properties after z was inserted as a red
// leaf.
func (t *rbTree) fixup(z nodeID) {
	for t.colorOf(t.parentOf(z)) == red {
		// A red parent is never the root, so the grandparent exists.
		p := t.nodes[z].parent
		g := t.nodes[p].parent
		if p == t.nodes[g].left {
			u := t.nodes[g].right
			if t.colorOf(u) == red {
				t.nodes[p].color = black
				t.nodes[u].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].right {
				z = p
				t.rotateLeft(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateRight(g)
		} else {
			u := t.nodes[g].left
			if t.colorOf(u) == red {
				t.nodes[p].color = black
				t.nodes[u].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].left {
				z = p
				t.rotateRight(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateLeft(g)
		}
	}
	t.nodes[t.root].color = black
}

// search returns the first node on the pruned descent path whose interval
// contains point, or nilNode.
func (t *rbTree) search(point PosType) nodeID {
	x := t.root
	for x != nilNode {
		n := &t.nodes[x]
		if n.key <= point && point < n.high {
			return x
		}
		// If left.max <= point, nothing on the left ends after point.
		if n.left != nilNode && t.nodes[n.left].max > point {
			x = n.left
		} else {
			x = n.right
		}
	}
	return nilNode
}

// String prints the tree one node per line, children indented by one tab per
// level below their parent.
func (t *rbTree) String() string {
	var sb strings.Builder
	if t.root == nilNode {
		return ""
	}
	t.writeNode(&sb, t.root, 0)
	return sb.String()
}

func (t *rbTree) writeNode(sb *strings.Builder, x nodeID, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteByte('\t')
	}
	if x == nilNode {
		sb.WriteString("nil\n")
		return
	}
	n := &t.nodes[x]
	fmt.Fprintf(sb, "(%d, %d)%d: %v\n", n.key, n.high, n.max, n.color)
	if n.left == nilNode && n.right == nilNode {
		return
	}
	t.writeNode(sb, n.left, depth+1)
	t.writeNode(sb, n.right, depth+1)
}

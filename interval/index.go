// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

// PosType is the type used to represent interval coordinates.  int32 should be
// wide enough for some time to come, since that's what BAM is limited to.
type PosType int32

// Span is a half-open interval [Start, End) on an unnamed contig.
type Span struct {
	Start PosType
	End   PosType
}

// Contains returns whether pos lies in [Start, End).
func (s Span) Contains(pos PosType) bool {
	return s.Start <= pos && pos < s.End
}

// Index is a point-containment index over half-open intervals on a single
// contig.  Intervals may overlap, be duplicated, or even be inverted
// (start > end, which contains nothing); all of them are kept.
//
// Insert must not be called concurrently with any other method.  Once all
// intervals have been inserted, Search and Contains may be called from
// multiple goroutines.
type Index struct {
	tree rbTree
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{tree: newRBTree()}
}

// Insert adds [start, end) to the index.
func (idx *Index) Insert(start, end PosType) {
	idx.tree.insert(start, end)
}

// Len returns the number of intervals inserted so far.
func (idx *Index) Len() int {
	return idx.tree.len()
}

// Search returns an interval containing pos, if there is one.
//
// When several stored intervals contain pos, the one returned is simply the
// first one met on a root-to-leaf descent.  It depends on insertion order and
// tree shape; it is not necessarily the leftmost or the shortest.
func (idx *Index) Search(pos PosType) (Span, bool) {
	x := idx.tree.search(pos)
	if x == nilNode {
		return Span{}, false
	}
	n := &idx.tree.nodes[x]
	return Span{Start: n.key, End: n.high}, true
}

// Contains returns whether any stored interval contains pos.
func (idx *Index) Contains(pos PosType) bool {
	return idx.tree.search(pos) != nilNode
}

// String returns a human-readable dump of the underlying tree.
func (idx *Index) String() string {
	return idx.tree.String()
}

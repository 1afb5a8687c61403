// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// GroupIndex maps each chromosome name to its own Index.  It is read-only
// once constructed, so it can be shared between goroutines.
type GroupIndex struct {
	// entries holds the reference intervals in input order.
	entries []Entry
	// groups holds the distinct chromosome names in first-seen order.
	groups  []string
	indexes map[string]*Index
}

// NewGroupIndex builds one Index per distinct ChrName in entries.  Indexes
// for different chromosomes are independent and are built concurrently, at
// most parallelism at a time (0 = runtime.NumCPU()).
func NewGroupIndex(entries []Entry, parallelism int) *GroupIndex {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	g := &GroupIndex{
		entries: entries,
		indexes: make(map[string]*Index),
	}
	byGroup := make(map[string][]Entry)
	for _, e := range entries {
		if _, ok := byGroup[e.ChrName]; !ok {
			g.groups = append(g.groups, e.ChrName)
		}
		byGroup[e.ChrName] = append(byGroup[e.ChrName], e)
	}
	built := make([]*Index, len(g.groups))
	// The callback never fails, so the error is always nil.
	_ = traverse.Limit(parallelism).Each(len(g.groups), func(i int) error {
		idx := NewIndex()
		for _, e := range byGroup[g.groups[i]] {
			idx.Insert(e.Start0, e.End)
		}
		built[i] = idx
		return nil
	})
	for i, name := range g.groups {
		g.indexes[name] = built[i]
		if log.At(log.Debug) {
			log.Debug.Printf("interval.NewGroupIndex: %s: %d interval(s)", name, built[i].Len())
		}
	}
	return g
}

// Search returns an interval on chrName containing pos.  A chromosome with
// no intervals at all is not an error; it simply never matches.
func (g *GroupIndex) Search(chrName string, pos PosType) (Entry, bool) {
	idx, ok := g.indexes[chrName]
	if !ok {
		return Entry{}, false
	}
	span, found := idx.Search(pos)
	if !found {
		return Entry{}, false
	}
	return Entry{ChrName: chrName, Start0: span.Start, End: span.End}, true
}

// Contains returns whether any interval on chrName contains pos.
func (g *GroupIndex) Contains(chrName string, pos PosType) bool {
	_, found := g.Search(chrName, pos)
	return found
}

// Index returns the Index for chrName, or nil if chrName has no intervals.
func (g *GroupIndex) Index(chrName string) *Index {
	return g.indexes[chrName]
}

// Entries returns the reference intervals in input order.  The caller must
// not modify the result.
func (g *GroupIndex) Entries() []Entry {
	return g.entries
}

// Groups returns the chromosome names in first-seen order.
func (g *GroupIndex) Groups() []string {
	return g.groups
}

// Len returns the number of reference intervals.
func (g *GroupIndex) Len() int {
	return len(g.entries)
}

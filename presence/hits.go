// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package presence

import (
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/bedmatrix/encoding/vcf"
	"github.com/grailbio/bedmatrix/interval"
)

type hitKey interval.Entry

// Compare compares two hitKey objects for use in llrb.
func (k hitKey) Compare(c2 llrb.Comparable) int {
	k2 := c2.(hitKey)
	switch {
	case k.ChrName < k2.ChrName:
		return -1
	case k.ChrName > k2.ChrName:
		return 1
	}
	if k.Start0 != k2.Start0 {
		if k.Start0 < k2.Start0 {
			return -1
		}
		return 1
	}
	if k.End != k2.End {
		if k.End < k2.End {
			return -1
		}
		return 1
	}
	return 0
}

// Hits is the set of reference intervals matched by at least one position.
// The zero value is an empty set.
type Hits struct {
	byKey llrb.Tree
}

// Add records e as matched.  Adding the same interval twice is a no-op.
func (h *Hits) Add(e interval.Entry) {
	h.byKey.Insert(hitKey(e))
}

// Has returns whether e was matched.  Intervals are compared by value, so
// duplicate BED lines are all reported as matched when one of them is.
func (h *Hits) Has(e interval.Entry) bool {
	return h.byKey.Get(hitKey(e)) != nil
}

// Len returns the number of distinct matched intervals.
func (h *Hits) Len() int {
	return h.byKey.Len()
}

// Do calls fn on every matched interval in (chromosome, start, end) order.
func (h *Hits) Do(fn func(e interval.Entry)) {
	h.byKey.Do(func(c llrb.Comparable) (done bool) {
		fn(interval.Entry(c.(hitKey)))
		return false
	})
}

// Intersect looks up every position of pos in ref and returns the set of
// reference intervals found.  Each position contributes at most one interval,
// whichever the Index returns.  Chromosomes absent from ref match nothing.
// If region is non-nil, positions outside it are ignored.
func Intersect(ref *interval.GroupIndex, pos *vcf.Positions, region *interval.Entry) *Hits {
	hits := &Hits{}
	chroms := append([]string(nil), pos.Chroms()...)
	sort.Strings(chroms)
	for _, chrom := range chroms {
		if region != nil && chrom != region.ChrName {
			continue
		}
		idx := ref.Index(chrom)
		if idx == nil {
			continue
		}
		for _, p := range pos.Get(chrom) {
			if region != nil && !region.Span().Contains(p) {
				continue
			}
			if span, found := idx.Search(p); found {
				hits.Add(interval.Entry{ChrName: chrom, Start0: span.Start, End: span.End})
			}
		}
	}
	return hits
}

// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/bedmatrix/interval"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestGroupIndexSearch(t *testing.T) {
	g := interval.NewGroupIndex(test1Entries, 2)
	expect.EQ(t, g.Len(), 4)
	expect.EQ(t, g.Groups(), []string{"chr1", "chr2"})
	if diff := cmp.Diff(test1Entries, g.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	expect.EQ(t, g.Index("chr1").Len(), 3)
	expect.EQ(t, g.Index("chr2").Len(), 1)

	got, found := g.Search("chr2", 7)
	assert.True(t, found)
	expect.EQ(t, got, interval.Entry{ChrName: "chr2", Start0: 5, End: 10})

	got, found = g.Search("chr1", 220)
	assert.True(t, found)
	expect.EQ(t, got, interval.Entry{ChrName: "chr1", Start0: 150, End: 250})

	expect.True(t, g.Contains("chr1", 100))
	expect.False(t, g.Contains("chr1", 250))
	// chr1 intervals must not leak into chr2.
	expect.False(t, g.Contains("chr2", 150))
}

func TestGroupIndexMissingGroup(t *testing.T) {
	g := interval.NewGroupIndex(test1Entries, 0)
	got, found := g.Search("chr3", 150)
	expect.False(t, found)
	expect.EQ(t, got, interval.Entry{})
	expect.False(t, g.Contains("chr3", 7))
	expect.True(t, g.Index("chr3") == nil)
}

func TestGroupIndexEmpty(t *testing.T) {
	g := interval.NewGroupIndex(nil, 1)
	expect.EQ(t, g.Len(), 0)
	expect.EQ(t, len(g.Groups()), 0)
	expect.False(t, g.Contains("chr1", 0))
}

func TestGroupIndexConcurrentReads(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	var entries []interval.Entry
	for i := 0; i < 5000; i++ {
		start := interval.PosType(r.Intn(100000))
		entries = append(entries, interval.Entry{
			ChrName: fmt.Sprintf("chr%d", r.Intn(24)+1),
			Start0:  start,
			End:     start + interval.PosType(r.Intn(500)),
		})
	}
	g := interval.NewGroupIndex(entries, 8)
	expect.EQ(t, len(g.Groups()), 24)

	// Every reader must see every start position as contained.
	err := traverse.Each(16, func(shard int) error {
		for i := shard; i < len(entries); i += 16 {
			e := entries[i]
			if e.End <= e.Start0 {
				continue
			}
			got, found := g.Search(e.ChrName, e.Start0)
			if !found || got.ChrName != e.ChrName || !got.Span().Contains(e.Start0) {
				return fmt.Errorf("%+v: got %+v, %v", e, got, found)
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package presence builds a presence matrix: for each of a set of VCF files,
// which reference BED intervals contain at least one of the file's variants.
package presence

import (
	"context"
	"io"
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/bedmatrix/encoding/vcf"
	"github.com/grailbio/bedmatrix/interval"
)

// Opts controls Run.
type Opts struct {
	// MatchFlag is written for (sample, interval) pairs with a hit.
	MatchFlag string
	// NoMatchFlag is written for (sample, interval) pairs without one.
	NoMatchFlag string
	// Region, if nonempty, restricts the positions considered.  Its format is
	// described in interval.ParseRegionString.
	Region string
	// Parallelism bounds the number of concurrently built indexes and
	// concurrently read VCF files.  0 = runtime.NumCPU().
	Parallelism int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	MatchFlag:   "2",
	NoMatchFlag: "1",
	Region:      "",
	Parallelism: 0,
}

// Run reads the reference intervals in bedPath, intersects every file in
// vcfPaths with them, and writes the resulting matrix to out.  Rows appear in
// vcfPaths order and are labeled with the path.
func Run(ctx context.Context, bedPath string, vcfPaths []string, out io.Writer, opts *Opts) error {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	var region *interval.Entry
	if opts.Region != "" {
		r, err := interval.ParseRegionString(opts.Region)
		if err != nil {
			return err
		}
		region = &r
	}

	entries, err := interval.ReadBEDFromPath(ctx, bedPath)
	if err != nil {
		return err
	}
	ref := interval.NewGroupIndex(entries, parallelism)
	log.Printf("presence.Run: indexed %d interval(s) on %d chromosome(s)", ref.Len(), len(ref.Groups()))

	hits := make([]*Hits, len(vcfPaths))
	err = traverse.Limit(parallelism).Each(len(vcfPaths), func(i int) error {
		pos, err := vcf.ReadPositionsFromPath(ctx, vcfPaths[i])
		if err != nil {
			return err
		}
		hits[i] = Intersect(ref, pos, region)
		if log.At(log.Debug) {
			hits[i].Do(func(e interval.Entry) {
				log.Debug.Printf("presence.Run: %s: hit %s", vcfPaths[i], e.Label())
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	w := NewWriter(out, opts.MatchFlag, opts.NoMatchFlag)
	w.WriteHeader(entries)
	for i, path := range vcfPaths {
		w.WriteRow(path, entries, hits[i])
	}
	if err = w.Flush(); err != nil {
		return err
	}
	log.Printf("presence.Run: wrote %d row(s)", len(vcfPaths))
	return nil
}

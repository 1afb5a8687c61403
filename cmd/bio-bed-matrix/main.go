// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

// See doc.go for documentation
import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedmatrix/presence"
)

var (
	outPath     = flag.String("out", "", "Output TSV path; stdout if empty")
	matchFlag   = flag.String("match", presence.DefaultOpts.MatchFlag, "Cell value for an interval containing a variant")
	noMatchFlag = flag.String("nomatch", presence.DefaultOpts.NoMatchFlag, "Cell value for an interval without variants")
	region      = flag.String("region", presence.DefaultOpts.Region, "Only consider variants in the specified region. Format as <contig ID>:<1-based first pos>-<last pos>, <contig ID>:<1-based pos>, or just <contig ID>")
	parallelism = flag.Int("parallelism", presence.DefaultOpts.Parallelism, "Maximum number of VCFs read (and chromosomes indexed) at once; 0 = runtime.NumCPU()")
)

func bioBedMatrixUsage() {
	fmt.Printf("Usage: %s [OPTIONS] bedpath vcfpath...\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

// run writes the matrix for bedPath and vcfPaths to outPath, or to stdout if
// outPath is empty.
func run(ctx context.Context, bedPath string, vcfPaths []string, outPath string, opts *presence.Opts) (err error) {
	if outPath == "" {
		return presence.Run(ctx, bedPath, vcfPaths, os.Stdout, opts)
	}
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return errors.E(err, "create", outPath)
	}
	e := errors.Once{}
	e.Set(presence.Run(ctx, bedPath, vcfPaths, io.Writer(out.Writer(ctx)), opts))
	if cerr := out.Close(ctx); cerr != nil {
		e.Set(errors.E(cerr, "close", outPath))
	}
	return e.Err()
}

func main() {
	flag.Usage = bioBedMatrixUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() < 2 {
		log.Fatalf("Missing positional arguments (bedpath and at least one vcfpath required); got %d", flag.NArg())
	}
	args := flag.Args()
	opts := presence.Opts{
		MatchFlag:   *matchFlag,
		NoMatchFlag: *noMatchFlag,
		Region:      *region,
		Parallelism: *parallelism,
	}
	ctx := vcontext.Background()
	if err := run(ctx, args[0], args[1:], *outPath, &opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}

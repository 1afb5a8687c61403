// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/bedmatrix/presence"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestBioBedMatrix(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	bedPath := filepath.Join("testdata", "targets.bed")
	vcf1 := filepath.Join("testdata", "sample1.vcf")
	vcf2 := filepath.Join("testdata", "sample2.vcf")
	outPath := filepath.Join(tmpdir, "matrix.tsv")

	opts := presence.DefaultOpts
	assert.NoError(t, run(context.Background(), bedPath, []string{vcf1, vcf2}, outPath, &opts))

	got, err := ioutil.ReadFile(outPath)
	assert.NoError(t, err)
	expect.EQ(t, string(got),
		"id\tchr1_100_200\tchr1_1000_1100\tchr2_0_10\n"+
			vcf1+"\t2\t1\t2\n"+
			vcf2+"\t1\t2\t1\n")
}

func TestBioBedMatrixBadOutput(t *testing.T) {
	bedPath := filepath.Join("testdata", "targets.bed")
	opts := presence.DefaultOpts
	// The parent of the output path is a regular file.
	err := run(context.Background(), bedPath,
		[]string{filepath.Join("testdata", "sample1.vcf")}, filepath.Join(bedPath, "out.tsv"), &opts)
	expect.NotNil(t, err)
}

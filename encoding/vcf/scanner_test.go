// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package vcf_test

import (
	"context"
	"strings"
	"testing"

	"github.com/grailbio/bedmatrix/encoding/vcf"
	"github.com/grailbio/bedmatrix/interval"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	s := vcf.NewScanner(strings.NewReader("#CHROM\tPOS\nchr1\t1\nchr1\t10\t.\tA\tC\n\nchr2\t5\n"))
	var got []vcf.Position
	var pos vcf.Position
	for s.Scan(&pos) {
		got = append(got, pos)
	}
	assert.NoError(t, s.Err())
	expect.EQ(t, got, []vcf.Position{
		{Chrom: "chr1", Pos: 0},
		{Chrom: "chr1", Pos: 9},
		{Chrom: "chr2", Pos: 4},
	})
	// Scan keeps returning false after the end.
	expect.False(t, s.Scan(&pos))
}

func TestReadPositionsFromPath(t *testing.T) {
	p, err := vcf.ReadPositionsFromPath(context.Background(), "testdata/sample.vcf")
	assert.NoError(t, err)
	expect.EQ(t, p.Len(), 3)
	expect.EQ(t, p.Chroms(), []string{"chr1", "chr2"})
	expect.EQ(t, p.Get("chr1"), []interval.PosType{149, 300})
	expect.EQ(t, p.Get("chr2"), []interval.PosType{6})
	expect.EQ(t, len(p.Get("chrY")), 0)
}

func TestReadPositionsInterleavedChroms(t *testing.T) {
	p, err := vcf.ReadPositions(strings.NewReader("chr2\t3\nchr1\t2\nchr2\t1\n"))
	assert.NoError(t, err)
	expect.EQ(t, p.Chroms(), []string{"chr2", "chr1"})
	expect.EQ(t, p.Get("chr2"), []interval.PosType{2, 0})
}

func TestReadPositionsParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
		msg  string
	}{
		{"one column", "#h\nchr1\n", 2, "at least 2"},
		{"empty chrom", "\t5\n", 1, "at least 2"},
		{"space separated", "chr1 5\n", 1, "at least 2"},
		{"non-numeric", "chr1\t5\nchr1\tx\n", 2, "bad POS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vcf.ReadPositions(strings.NewReader(tt.data))
			require.Error(t, err)
			perr, ok := err.(*interval.ParseError)
			require.True(t, ok, "want *interval.ParseError, got %T", err)
			expect.EQ(t, perr.Line, tt.line)
			expect.HasSubstr(t, perr.Msg, tt.msg)
		})
	}
}

func TestReadPositionsFromPathError(t *testing.T) {
	_, err := vcf.ReadPositionsFromPath(context.Background(), "testdata/missing.vcf")
	require.Error(t, err)
	expect.HasSubstr(t, err.Error(), "missing.vcf")
}

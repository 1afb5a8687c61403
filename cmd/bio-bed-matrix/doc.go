// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-bed-matrix reports, for each of a set of VCF files, which intervals of a
reference BED file contain at least one of the file's variant positions.

The output is a TSV matrix.  The header row is "id" followed by one
<chrom>_<start>_<end> column per BED line, in BED order.  Each following row
starts with a VCF path and holds one flag per BED line: 2 if some variant in
that VCF falls in the interval, 1 otherwise.

Intervals are half-open and 0-based, as in BED; VCF positions are 1-based and
converted.  Variants on chromosomes absent from the BED never match.  Inputs
ending in .gz are decompressed.

Sample usage:
bio-bed-matrix \
    -out matrix.tsv \
    targets.bed \
    sample1.vcf.gz sample2.vcf.gz
*/
package main

// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package vcf reads variant positions from VCF (and VCF-like) files.  Only
// the CHROM and POS columns are looked at; everything else on a line is
// ignored.
package vcf

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bedmatrix/interval"
)

// A Position is one variant site.  Pos is 0-based; the 1-based POS column is
// converted on read.
type Position struct {
	Chrom string
	Pos   interval.PosType
}

// Scanner reads Positions from tab-delimited text.  Lines starting with '#'
// (the VCF meta-information and header lines) are skipped.  Scanners are not
// threadsafe.
type Scanner struct {
	b       *bufio.Scanner
	lineIdx int
	err     error
}

// NewScanner constructs a new Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	// INFO and FORMAT columns can be long.
	b.Buffer(make([]byte, 64<<10), 64<<20)
	return &Scanner{b: b}
}

// Scan reads the next position into pos.  Scan returns a boolean indicating
// whether the scan succeeded.  Once Scan returns false, it never returns true
// again.  Upon completion, the user should check the Err method to determine
// whether scanning stopped because of an error or because the end of the
// stream was reached.
func (s *Scanner) Scan(pos *Position) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		s.lineIdx++
		line := s.b.Bytes()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		tab := bytes.IndexByte(line, '\t')
		if tab <= 0 {
			s.err = &interval.ParseError{Line: s.lineIdx, Msg: "expected at least 2 tab-separated columns"}
			return false
		}
		chrom := line[:tab]
		posField := line[tab+1:]
		if end := bytes.IndexByte(posField, '\t'); end >= 0 {
			posField = posField[:end]
		}
		pos1, err := interval.ParsePos(posField)
		if err != nil {
			s.err = &interval.ParseError{Line: s.lineIdx, Msg: fmt.Sprintf("bad POS %q: %v", posField, err)}
			return false
		}
		if pos.Chrom != string(chrom) {
			pos.Chrom = string(chrom)
		}
		pos.Pos = pos1 - 1
		return true
	}
	s.err = s.b.Err()
	if s.err == nil {
		s.err = io.EOF
	}
	return false
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// Positions holds the variant positions of one file, grouped by chromosome.
type Positions struct {
	chroms []string
	byChr  map[string][]interval.PosType
	n      int
}

// NewPositions returns an empty Positions.
func NewPositions() *Positions {
	return &Positions{byChr: make(map[string][]interval.PosType)}
}

// Add appends a 0-based position on chrom.
func (p *Positions) Add(chrom string, pos interval.PosType) {
	list, ok := p.byChr[chrom]
	if !ok {
		p.chroms = append(p.chroms, chrom)
	}
	p.byChr[chrom] = append(list, pos)
	p.n++
}

// Chroms returns the chromosome names in first-seen order.
func (p *Positions) Chroms() []string {
	return p.chroms
}

// Get returns the 0-based positions on chrom, in file order.
func (p *Positions) Get(chrom string) []interval.PosType {
	return p.byChr[chrom]
}

// Len returns the total number of positions.
func (p *Positions) Len() int {
	return p.n
}

// ReadPositions reads every position from r.
func ReadPositions(r io.Reader) (*Positions, error) {
	s := NewScanner(r)
	p := NewPositions()
	var pos Position
	for s.Scan(&pos) {
		p.Add(pos.Chrom, pos.Pos)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadPositionsFromPath is a wrapper for ReadPositions that takes a path
// instead of an io.Reader.  Gzipped (including bgzipped) files are
// decompressed.
func ReadPositionsFromPath(ctx context.Context, path string) (p *Positions, err error) {
	reader, closeFn, err := interval.OpenMaybeGzip(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = errors.E(cerr, "close", path)
		}
	}()
	if p, err = ReadPositions(reader); err != nil {
		return nil, errors.E(err, path)
	}
	log.Debug.Printf("vcf.ReadPositionsFromPath: %s: %d position(s) on %d chromosome(s)", path, p.Len(), len(p.chroms))
	return p, nil
}

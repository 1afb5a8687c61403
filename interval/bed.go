// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"
)

const posTypeMax = math.MaxInt32

// Entry represents a single interval, with 0-based coordinates.
type Entry struct {
	ChrName string
	Start0  PosType
	End     PosType
}

// Span returns the coordinates of e without the contig name.
func (e Entry) Span() Span {
	return Span{Start: e.Start0, End: e.End}
}

// Label returns the "<chr>_<start>_<end>" column label used for e in
// presence matrices.
func (e Entry) Label() string {
	return fmt.Sprintf("%s_%d_%d", e.ChrName, e.Start0, e.End)
}

// ParseError reports a malformed line in an interval or position file.
type ParseError struct {
	// Line is the 1-based line number.
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		// These simple loops are better than any of the standard library
		// string-split functions when only the first few tokens are needed.
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ParsePos parses a decimal coordinate.  The value must fit in a PosType.
func ParsePos(b []byte) (PosType, error) {
	// gunsafe.BytesToString is fine here since ParseInt doesn't retain its
	// argument.
	v, err := strconv.ParseInt(gunsafe.BytesToString(b), 10, 32)
	if err != nil {
		return 0, err
	}
	return PosType(v), nil
}

// ReadBED loads every interval from a BED file, in file order.  Only the first
// three columns are used.  Blank lines and lines starting with '#' are
// skipped.  The input does not need to be sorted, and overlapping, duplicate
// or inverted intervals are all kept as is.
func ReadBED(reader io.Reader) (entries []Entry, err error) {
	// Note that Scanner does not handle very long lines unless we specify an
	// adequate buffer size in advance; it does not auto-resize.
	// Shouldn't matter for BED files, though.
	scanner := bufio.NewScanner(reader)

	var tokens [3][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		if len(curLine) > 0 && curLine[0] == '#' {
			continue
		}
		nToken := getTokens(tokens[:], curLine)
		if nToken != 3 {
			if nToken == 0 {
				continue
			}
			return nil, &ParseError{Line: lineIdx, Msg: fmt.Sprintf("expected 3 columns, found %d", nToken)}
		}
		var start, end PosType
		if start, err = ParsePos(tokens[1]); err != nil {
			return nil, &ParseError{Line: lineIdx, Msg: fmt.Sprintf("bad start coordinate %q: %v", tokens[1], err)}
		}
		if end, err = ParsePos(tokens[2]); err != nil {
			return nil, &ParseError{Line: lineIdx, Msg: fmt.Sprintf("bad end coordinate %q: %v", tokens[2], err)}
		}
		// Must copy the chromosome name, since tokens[0] refers to scanner
		// memory that will be overwritten by the next Scan().
		entries = append(entries, Entry{
			ChrName: string(tokens[0]),
			Start0:  start,
			End:     end,
		})
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	log.Printf("BED loaded, %d interval(s).", len(entries))
	return entries, nil
}

// OpenMaybeGzip opens path through grailbio/base/file, decompressing it on the
// fly when the name says it is gzipped (this includes bgzf).  The caller must
// call the returned close function.
func OpenMaybeGzip(ctx context.Context, path string) (io.Reader, func() error, error) {
	infile, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "open", path)
	}
	closeFn := func() error { return infile.Close(ctx) }
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		gz, err := gzip.NewReader(reader)
		if err != nil {
			_ = closeFn()
			return nil, nil, errors.E(err, "gzip", path)
		}
		reader = gz
		closeFn = func() error {
			if err := gz.Close(); err != nil {
				_ = infile.Close(ctx)
				return err
			}
			return infile.Close(ctx)
		}
	}
	return reader, closeFn, nil
}

// ReadBEDFromPath is a wrapper for ReadBED that takes a path instead of an
// io.Reader.
func ReadBEDFromPath(ctx context.Context, path string) (entries []Entry, err error) {
	reader, closeFn, err := OpenMaybeGzip(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = errors.E(cerr, "close", path)
		}
	}()
	if entries, err = ReadBED(reader); err != nil {
		return nil, errors.E(err, path)
	}
	return entries, nil
}

// ParseRegionString parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning a contig ID and 0-based interval boundaries.  The interval
// [0, posTypeMax - 1) is returned if there is no positional restriction.
func ParseRegionString(region string) (result Entry, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		result.ChrName = region
		result.Start0 = 0
		result.End = posTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty contig ID")
		return
	}
	result.ChrName = region[0:colonPos]
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 32); err != nil {
			return
		}
		if pos1 <= 0 {
			err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start0 = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	var start1 int
	if start1, err = strconv.Atoi(start1Str); err != nil {
		return
	}
	if start1 <= 0 {
		err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", start1Str)
		return
	}
	var end0 int
	if end0, err = strconv.Atoi(endStr); err != nil {
		return
	}
	if end0 < start1 || end0 >= posTypeMax {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start0 = PosType(start1 - 1)
	result.End = PosType(end0)
	return
}

// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package presence

import (
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bedmatrix/interval"
)

// Writer writes a presence matrix as TSV: a header naming every reference
// interval, then one row of flags per sample.
type Writer struct {
	tsv         *tsv.Writer
	matchFlag   string
	noMatchFlag string
	err         errors.Once
}

// NewWriter creates a Writer.  matchFlag and noMatchFlag are the cell values
// for matched and unmatched intervals.
func NewWriter(w io.Writer, matchFlag, noMatchFlag string) *Writer {
	return &Writer{
		tsv:         tsv.NewWriter(w),
		matchFlag:   matchFlag,
		noMatchFlag: noMatchFlag,
	}
}

// WriteHeader writes "id" followed by one <chr>_<start>_<end> column per
// entry.
func (w *Writer) WriteHeader(entries []interval.Entry) {
	w.tsv.WriteString("id")
	for _, e := range entries {
		w.tsv.WriteString(e.Label())
	}
	w.err.Set(w.tsv.EndLine())
}

// WriteRow writes id followed by one flag per entry.  entries must be the
// same slice passed to WriteHeader.
func (w *Writer) WriteRow(id string, entries []interval.Entry, hits *Hits) {
	w.tsv.WriteString(id)
	for _, e := range entries {
		if hits.Has(e) {
			w.tsv.WriteString(w.matchFlag)
		} else {
			w.tsv.WriteString(w.noMatchFlag)
		}
	}
	w.err.Set(w.tsv.EndLine())
}

// Flush flushes buffered output and returns the first error encountered by
// any previous call.
func (w *Writer) Flush() error {
	w.err.Set(w.tsv.Flush())
	return w.err.Err()
}

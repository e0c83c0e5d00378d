// 17 Oct 2026
// Per-site tallies over one pass of an alignment.

package sitestat

import (
	"context"
	"fmt"

	"github.com/andrew-torda/matrix"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/coresnp/pkg/seq"
	. "github.com/andrew-torda/coresnp/pkg/seq/common"
)

// Rows of the tally matrix.
const (
	iA = iota
	iC
	iG
	iT
	nBase
)

// Tallies are float32, like the symbol counts in the old seqgrp code.
// They are exact up to 2^24.
const maxSeq = 1 << 24

// baseRow maps a byte to its tally row plus one. Zero means the byte
// is not a base (gap, N, ambiguity code, anything else).
var baseRow = [256]uint8{
	'A': iA + 1, 'a': iA + 1,
	'C': iC + 1, 'c': iC + 1,
	'G': iG + 1, 'g': iG + 1,
	'T': iT + 1, 't': iT + 1,
}

// Accum counts, for each site, how often each base occurs.
// Memory depends on the alignment length, not on the number of
// sequences.
type Accum struct {
	counts *matrix.FMatrix2d // [nBase][length]
	nseq   int
}

// NewAccum allocates tallies for an alignment of length sites.
func NewAccum(length int) *Accum {
	return &Accum{counts: matrix.NewFMatrix2d(nBase, length)}
}

// Len is the number of sites.
func (a *Accum) Len() int {
	_, ncol := a.counts.Size()
	return ncol
}

// NSeq is the number of sequences added so far.
func (a *Accum) NSeq() int { return a.nseq }

// Add tallies one sequence.
func (a *Accum) Add(s []byte) error {
	if len(s) != a.Len() {
		return &FormatError{Msg: "sequence does not match alignment length",
			Want: a.Len(), Got: len(s)}
	}
	if a.nseq >= maxSeq {
		return &FormatError{Msg: fmt.Sprintf("more than %d sequences", maxSeq)}
	}
	mat := a.counts.Mat
	for i, c := range s {
		if r := baseRow[c]; r != 0 {
			mat[r-1][i]++
		}
	}
	a.nseq++
	return nil
}

// Merge adds the tallies from o. Afterwards, a looks as if it had
// seen every sequence given to either.
func (a *Accum) Merge(o *Accum) error {
	if a.Len() != o.Len() {
		return &FormatError{Msg: "merging tallies of different length",
			Want: a.Len(), Got: o.Len()}
	}
	if a.nseq+o.nseq > maxSeq {
		return &FormatError{Msg: fmt.Sprintf("more than %d sequences", maxSeq)}
	}
	for r, row := range a.counts.Mat {
		orow := o.counts.Mat[r]
		for i := range row {
			row[i] += orow[i]
		}
	}
	a.nseq += o.nseq
	return nil
}

// Finish turns the tallies into per-site statistics.
func (a *Accum) Finish() Stats {
	mat := a.counts.Mat
	sites := make([]Site, a.Len())
	for i := range sites {
		s := &sites[i]
		s.A, s.C, s.G, s.T = mat[iA][i] > 0, mat[iC][i] > 0, mat[iG][i] > 0, mat[iT][i] > 0
		s.Count = int(mat[iA][i]) + int(mat[iC][i]) + int(mat[iG][i]) + int(mat[iT][i])
		if a.nseq > 0 {
			s.Frac = float64(s.Count) / float64(a.nseq)
		}
		s.Variant = s.NBase() > 1
	}
	return Stats{Sites: sites, NSeq: a.nseq}
}

// Accumulate makes the first pass over src. With more than one
// worker, sequences are handed out over a channel and each worker
// keeps its own tallies. They are merged once everyone has finished.
func Accumulate(src seq.Source, nWorker int) (Stats, error) {
	if nWorker <= 1 {
		var acc *Accum
		err := src.Each(func(rec *seq.Record) error {
			if acc == nil {
				acc = NewAccum(rec.Len())
			}
			return acc.Add(rec.Seq)
		})
		if err != nil {
			return Stats{}, err
		}
		if acc == nil {
			return Stats{}, &FormatError{Msg: "no sequences found in " + src.Name()}
		}
		return acc.Finish(), nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	recChan := make(chan *seq.Record, 2*nWorker)
	accs := make([]*Accum, nWorker)
	g.Go(func() error {
		defer close(recChan)
		return src.Each(func(rec *seq.Record) error {
			select {
			case recChan <- rec:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})
	for w := range accs {
		w := w
		g.Go(func() error {
			for rec := range recChan {
				if accs[w] == nil {
					accs[w] = NewAccum(rec.Len())
				}
				if err := accs[w].Add(rec.Seq); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total *Accum
	nUsed := 0
	for _, a := range accs {
		if a == nil { // this worker never got a sequence
			continue
		}
		nUsed++
		if total == nil {
			total = a
			continue
		}
		if err := total.Merge(a); err != nil {
			return Stats{}, err
		}
	}
	log.WithFields(log.Fields{"workers": nWorker, "used": nUsed}).Debug("merged partial tallies")
	if total == nil {
		return Stats{}, &FormatError{Msg: "no sequences found in " + src.Name()}
	}
	return total.Finish(), nil
}

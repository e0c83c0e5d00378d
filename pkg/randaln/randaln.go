// 31 July 2020
// 17 Oct 2026 nucleotide alignments rather than unaligned protein

// Package randaln writes random nucleotide alignments. Sequences are
// mutated copies of one random reference, so there are invariant
// sites, variant sites, gaps and unknown bases in realistic amounts.
// It is used for testing and benchmarks.
package randaln

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

const bases = "ACGT"

// RandAlnArgs is the set of arguments passed to the main function
type RandAlnArgs struct {
	Iseed  int64     // random number seed
	Wrtr   io.Writer // where we write to
	Cmmt   string    // Comment for the sequences
	Nseq   int       // number of sequences
	Len    int       // Length of sequences
	PMut   float64   // probability a site differs from the reference
	PGap   float64   // probability of a gap
	PUnk   float64   // probability of an N
	PLower bool      // write some sequences in lower case
	Width  int       // line width, 0 for one line per sequence
	MkErr  bool      // Add an error, by changing a length
}

// mkref returns the reference that all sequences are copied from.
func mkref(n int, rnd *rand.Rand) []byte {
	ref := make([]byte, n)
	for i := range ref {
		ref[i] = bases[rnd.Intn(len(bases))]
	}
	return ref
}

// getseq returns a byte slice with a mutated copy of ref in it
func getseq(ref []byte, args *RandAlnArgs, rnd *rand.Rand) []byte {
	ret := make([]byte, len(ref))
	lower := args.PLower && rnd.Intn(2) == 0
	for i, c := range ref {
		x := rnd.Float64()
		switch {
		case x < args.PGap:
			c = '-'
		case x < args.PGap+args.PUnk:
			c = 'N'
		case x < args.PGap+args.PUnk+args.PMut:
			c = bases[rnd.Intn(len(bases))]
		}
		if lower && c != '-' {
			c = c - 'A' + 'a'
		}
		ret[i] = c
	}
	return ret
}

// wrap breaks s into lines of width characters.
func wrap(s []byte, width int) []byte {
	if width <= 0 || len(s) <= width {
		return append(s, '\n')
	}
	out := make([]byte, 0, len(s)+len(s)/width+1)
	for ; len(s) > width; s = s[width:] {
		out = append(out, s[:width]...)
		out = append(out, '\n')
	}
	out = append(out, s...)
	return append(out, '\n')
}

// writeseq takes a bytestring which is our sequence. It adds a comment
// and sends it out for writing. n is the number of the sequence, so the
// output has comment lines ">something_1, >something_2..."
func writeseq(sChan <-chan []byte, args *RandAlnArgs, wg *sync.WaitGroup, err *error) {
	defer wg.Done()

	width := len(fmt.Sprintf("%d", args.Nseq))
	var i int
	for s := range sChan {
		i++
		if *err != nil {
			continue // drain the channel
		}
		tmp := fmt.Sprintf(">%s_%0[2]*d\n", args.Cmmt, width, i)
		if _, *err = io.WriteString(args.Wrtr, tmp); *err != nil {
			continue
		}
		_, *err = args.Wrtr.Write(wrap(s, args.Width))
	}
}

// RandAlnMain writes a random alignment to an io.Writer.
func RandAlnMain(args *RandAlnArgs) error {
	var wg sync.WaitGroup
	var err error
	if args.Nseq < 1 || args.Len < 1 {
		return fmt.Errorf("need at least one sequence and site, got %d x %d", args.Nseq, args.Len)
	}
	if args.Cmmt == "" {
		args.Cmmt = "seq"
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	ref := mkref(args.Len, rnd)
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &err)
	for i := 0; i < args.Nseq; i++ {
		s := getseq(ref, args, rnd)
		if args.MkErr && i == args.Nseq-1 {
			s = s[:len(s)-1]
		}
		sChan <- s
	}
	close(sChan)
	wg.Wait()
	return err
}

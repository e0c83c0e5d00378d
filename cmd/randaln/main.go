// 31 July 2020

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/andrew-torda/coresnp/pkg/randaln"
	. "github.com/andrew-torda/coresnp/pkg/seq/common"
)

func main() {
	f := flag.NewFlagSet("randaln", flag.ExitOnError)
	const iseed int64 = 1637
	var args randaln.RandAlnArgs

	f.BoolVar(&args.MkErr, "e", false, "provoke errors")
	f.Float64Var(&args.PGap, "g", 0.02, "probability of a gap")
	f.BoolVar(&args.PLower, "l", false, "some sequences in lower case")
	f.Float64Var(&args.PMut, "m", 0.01, "probability of a mutation")
	f.Float64Var(&args.PUnk, "n", 0.005, "probability of an N")
	f.Int64Var(&args.Iseed, "r", iseed, "random number seed")
	f.IntVar(&args.Width, "w", 60, "line width, 0 for no wrapping")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 3 {
		fmt.Fprintln(f.Output(), "Wrong number of args\nrandaln [..] file nseq length")
		f.Usage()
		os.Exit(ExitUsageError)
	}

	const emsg = "Failed converting %s to positive integer\n"
	var nums [2]int
	for i, s := range f.Args()[1:] {
		n, err := strconv.ParseUint(s, 10, 31)
		if err != nil {
			fmt.Fprintf(os.Stderr, emsg, s)
			os.Exit(ExitUsageError)
		}
		nums[i] = int(n)
	}
	args.Nseq, args.Len = nums[0], nums[1]

	fname := f.Args()[0]
	fp := os.Stdout
	if fname != "-" && fname != "" {
		var err error
		if fp, err = os.Create(fname); err != nil {
			fmt.Fprintln(os.Stderr, "File for output:", err)
			os.Exit(ExitFailure)
		}
	}
	w := bufio.NewWriter(fp)
	args.Wrtr = w
	err := randaln.RandAlnMain(&args)
	if err == nil {
		err = w.Flush()
	}
	if cerr := fp.Close(); err == nil && fp != os.Stdout {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}

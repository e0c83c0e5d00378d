// 17 Oct 2026
// Filter an alignment down to its core SNP sites.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coresnp/pkg/coresnp"
	. "github.com/andrew-torda/coresnp/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] input.fasta[.gz]")
	long := `The input is read twice, so it must be a file, not standard input.
The filtered alignment goes to standard output unless -o is given.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags coresnp.CmdFlag
	var cfgfile, outfile string
	flags.Register(flag.CommandLine)
	flag.StringVar(&cfgfile, "config", "", "TOML file with default options")
	flag.StringVar(&outfile, "o", "", "output file name, instead of standard output")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "need exactly one input file")
		usage()
		os.Exit(ExitUsageError)
	}
	if cfgfile != "" {
		if err := coresnp.ApplyConfig(cfgfile, &flags, flag.CommandLine); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(coresnp.ExitCode(err))
		}
	}
	if err := coresnp.Mymain(&flags, flag.Arg(0), outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(coresnp.ExitCode(err))
	}
	os.Exit(ExitSuccess)
}

// What we tell the user about the sites.

package coresnp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/coresnp/pkg/sitestat"
)

const title = "coresnp"

// writeSummary prints the input size and how many sites went where.
// Numbers are lined up on the width of the alignment length, which is
// the biggest number we can print.
func writeSummary(w io.Writer, fname string, st sitestat.Stats, c sitestat.Counts) error {
	wd := len(strconv.Itoa(st.Len()))
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, strings.Repeat("─", wd+37))
	fmt.Fprintf(bw, "input file: %*s\n", wd+25, fname)
	lines := []struct {
		label string
		n     int
	}{
		{"number of sequences:                 ", st.NSeq},
		{"input sequence length:               ", st.Len()},
		{"├ output sequence length:            ", c.Kept},
		{"└ total sites removed:               ", c.Removed()},
		{"  ├ non-core sites removed:          ", c.NonCore},
		{"  └ invariant sites removed:         ", c.InvTotal()},
		{"    ├ invariant-A sites removed:     ", c.InvA},
		{"    ├ invariant-C sites removed:     ", c.InvC},
		{"    ├ invariant-G sites removed:     ", c.InvG},
		{"    ├ invariant-T sites removed:     ", c.InvT},
		{"    └ other invariant sites removed: ", c.InvOther},
	}
	for _, l := range lines {
		fmt.Fprintf(bw, "%s%*d\n", l.label, wd, l.n)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

const tableHeader = "pos\ta\tc\tg\tt\tcount\tfrac\tvar\tkeep"

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// writeTable writes one line per site. Positions count from 1.
func writeTable(w io.Writer, st sitestat.Stats, mask sitestat.Mask, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		fmt.Fprintln(bw, tableHeader)
	}
	for i, s := range st.Sites {
		fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%d\t%d\t%.4f\t%d\t%d\n", i+1,
			b2i(s.A), b2i(s.C), b2i(s.G), b2i(s.T), s.Count, s.Frac,
			b2i(s.Variant), b2i(mask[i]))
	}
	return bw.Flush()
}

// writeInvariantCounts gives the A,C,G,T line that tree programs use
// to correct for ascertainment bias.
func writeInvariantCounts(w io.Writer, st sitestat.Stats) error {
	n := sitestat.InvariantCounts(st)
	_, err := fmt.Fprintf(w, "%d,%d,%d,%d\n", n[0], n[1], n[2], n[3])
	return err
}

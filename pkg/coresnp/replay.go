// Second pass. Write every sequence again with the unwanted columns
// taken out.

package coresnp

import (
	"bufio"
	"io"

	"github.com/andrew-torda/coresnp/pkg/seq"
	. "github.com/andrew-torda/coresnp/pkg/seq/common"
	"github.com/andrew-torda/coresnp/pkg/sitestat"
)

// replay reads src again and writes each record with only the sites
// where mask is true. nSeq is the number of records seen in the first
// pass. oname names w in errors. If the file has changed since then, we stop with a FormatError.
// Output is buffered, so the caller sees nothing half written unless
// there was an error.
func replay(src seq.Source, mask sitestat.Mask, nSeq int, w io.Writer, oname string) error {
	bw := bufio.NewWriter(w)
	scratch := make([]byte, 0, mask.NKept())
	n := 0
	err := src.Each(func(rec *seq.Record) error {
		n++
		if n > nSeq {
			return &FormatError{Name: rec.Name(), Index: n,
				Msg: "more sequences than in first pass, input changed while reading"}
		}
		if rec.Len() != len(mask) {
			return &FormatError{Name: rec.Name(), Index: n, Want: len(mask), Got: rec.Len(),
				Msg: "length differs from first pass, input changed while reading"}
		}
		scratch = scratch[:0]
		for i, c := range rec.Seq {
			if mask[i] {
				scratch = append(scratch, c)
			}
		}
		if err := seq.WriteRecord(bw, rec, scratch); err != nil {
			return &IOError{Op: "write", Path: oname, Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if n != nSeq {
		return &FormatError{
			Msg: "fewer sequences than in first pass, input changed while reading"}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", Path: oname, Err: err}
	}
	return nil
}

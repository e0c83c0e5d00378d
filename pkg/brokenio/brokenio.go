// brokenio is a wrapper around an io.Reader or io.Writer which breaks
// after a given number of bytes. It lets tests provoke read and
// write errors half way through an alignment, which is otherwise
// hard to arrange with real files.
// Typical use: You get a file pointer or a reader from a compressed
// source. You write
//	reader = brokenio.NewReader(reader, 1000)
// Everything then functions as before, until the 1000th byte.

package brokenio

import (
	"errors"
	"io"
)

// ErrBroken is what comes back once the budget is used up.
var ErrBroken = errors.New("brokenio: deliberate failure")

// BrknRdr passes through nOk bytes, then fails every call.
type BrknRdr struct {
	rdr_orig io.Reader // Wrapped reader
	nOk      int64
	nByte    int64
}

// NewReader returns a new Reader - a wrapper around the old one
func NewReader(rIn io.Reader, nOk int64) *BrknRdr {
	return &BrknRdr{rdr_orig: rIn, nOk: nOk}
}

// Read hands back at most the remaining budget, then ErrBroken.
func (r *BrknRdr) Read(p []byte) (n int, err error) {
	left := r.nOk - r.nByte
	if left <= 0 {
		return 0, ErrBroken
	}
	if int64(len(p)) > left {
		p = p[:left]
	}
	n, err = r.rdr_orig.Read(p)
	r.nByte += int64(n)
	return n, err
}

// BrknWrtr accepts nOk bytes, then fails. A write that straddles the
// limit is short, as io.Writer allows.
type BrknWrtr struct {
	wrtr  io.Writer
	nOk   int64
	nByte int64
}

// NewWriter wraps w.
func NewWriter(w io.Writer, nOk int64) *BrknWrtr {
	return &BrknWrtr{wrtr: w, nOk: nOk}
}

func (w *BrknWrtr) Write(p []byte) (int, error) {
	left := w.nOk - w.nByte
	if left <= 0 {
		return 0, ErrBroken
	}
	short := false
	if int64(len(p)) > left {
		p = p[:left]
		short = true
	}
	n, err := w.wrtr.Write(p)
	w.nByte += int64(n)
	if err == nil && short {
		err = ErrBroken
	}
	return n, err
}

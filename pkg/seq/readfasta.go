// Reader for fasta format files.

package seq

import (
	"bufio"
	"io"

	. "github.com/andrew-torda/coresnp/pkg/seq/common"
	"github.com/andrew-torda/coresnp/pkg/white"
)

// A comment is terminated by a newline. A sequence is terminated by
// a comment character ">" at the start of a line, or the end of input.
const (
	NL            = '\n'
	cmmtChar byte = '>'
)

const defaultReadSize = 64 * 1024

var rdsize int = defaultReadSize

// setFastaRdSize is only used during testing, to push long lines
// over the buffer boundaries.
func setFastaRdSize(i int) {
	if i < 16 {
		panic("setFastaRdSize given buffer length less than 16")
	}
	rdsize = i
}

type lexer struct {
	rdr  *bufio.Reader
	name string // of the source, for error messages
	fn   func(*Record) error
	cmmt []byte // partial comment
	seq  []byte // partial sequence
	bol  bool   // next chunk starts a line
	nrec int
	want int // length of first sequence
	err  error
}

// chunk returns the next piece of a line. eol is set if the piece
// finished a line, with the newline removed. The end of input also
// finishes a line. Read errors are saved in l.err.
func (l *lexer) chunk() (c []byte, eol, eof bool) {
	c, err := l.rdr.ReadSlice(NL)
	switch err {
	case nil:
		return c[:len(c)-1], true, false
	case bufio.ErrBufferFull:
		return c, false, false
	case io.EOF:
		return c, true, true
	}
	l.err = &IOError{Op: "read", Path: l.name, Err: err}
	return nil, false, true
}

// startRec begins a new record with the start of its comment line.
func (l *lexer) startRec(c []byte) {
	l.cmmt = append(l.cmmt[:0], c...)
	l.seq = make([]byte, 0, l.want)
}

// emit checks the sequence we have just finished and hands it on.
func (l *lexer) emit() {
	l.nrec++
	if l.nrec == 1 {
		l.want = len(l.seq)
	}
	rec := &Record{Cmmt: string(l.cmmt), Seq: l.seq}
	l.seq = nil
	if len(rec.Seq) != l.want {
		l.err = &FormatError{
			Name: rec.Name(), Index: l.nrec, Want: l.want, Got: len(rec.Seq),
			Msg: "sequence length differs from first sequence"}
		return
	}
	l.err = l.fn(rec)
}

type stateFn func(*lexer) stateFn

// Before the first comment, we only allow blank lines.
func gstart(l *lexer) stateFn {
	c, eol, eof := l.chunk()
	if l.err != nil {
		return nil
	}
	if l.bol && len(c) > 0 && c[0] == cmmtChar {
		l.startRec(c[1:])
		return endCmmt(l, eol, eof)
	}
	for _, b := range c {
		if !white.IsWhite(b) {
			l.err = &FormatError{Msg: "sequence data before first \">\" in " + l.name}
			return nil
		}
	}
	l.bol = eol
	if eof {
		return nil
	}
	return gstart
}

// endCmmt decides where to go after a piece of comment.
func endCmmt(l *lexer, eol, eof bool) stateFn {
	if !eol {
		return gcmmt
	}
	if n := len(l.cmmt); n > 0 && l.cmmt[n-1] == '\r' {
		l.cmmt = l.cmmt[:n-1]
	}
	l.bol = true
	if eof {
		l.emit()
		return nil
	}
	return gseq
}

// We are reading a comment
func gcmmt(l *lexer) stateFn {
	c, eol, eof := l.chunk()
	if l.err != nil {
		return nil
	}
	l.cmmt = append(l.cmmt, c...)
	return endCmmt(l, eol, eof)
}

// We are reading a sequence
func gseq(l *lexer) stateFn {
	c, eol, eof := l.chunk()
	if l.err != nil {
		return nil
	}
	if l.bol && len(c) > 0 && c[0] == cmmtChar {
		if l.emit(); l.err != nil {
			return nil
		}
		l.startRec(c[1:])
		return endCmmt(l, eol, eof)
	}
	start := len(l.seq)
	l.seq = append(l.seq, c...)
	if tail := l.seq[start:]; white.Has(tail) {
		white.Remove(&tail)
		l.seq = l.seq[:start+len(tail)]
	}
	l.bol = eol
	if eof {
		l.emit()
		return nil
	}
	return gseq
}

// scan makes one pass over a fasta file, calling fn on each record.
// Every sequence must have the same length as the first.
func scan(rdr io.Reader, name string, fn func(*Record) error) error {
	l := lexer{rdr: bufio.NewReaderSize(rdr, rdsize), name: name, fn: fn, bol: true}
	for state := gstart; state != nil; {
		state = state(&l)
	}
	if l.err != nil {
		return l.err
	}
	if l.nrec == 0 {
		return &FormatError{Msg: "no sequences found in " + name}
	}
	return nil
}

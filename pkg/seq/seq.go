// 20 Dec 2017
// 17 Oct 2026 sequences are no longer held as a group. An alignment is
// a Source which can be read from the start as often as one likes.

// Package seq reads nucleotide alignments in fasta format, one record
// at a time. Nothing here holds more than one sequence.
//
// A Source is restartable. Each call to Each() starts at the first
// record again, so a caller can make one pass to collect statistics
// and a second pass to write output. For that reason, the input must
// be a real file. Standard input and pipes are refused when the
// Source is opened, not half way through the second pass.
package seq

import (
	"bytes"
	"io"
	"strings"
)

// Record is one sequence. Cmmt is everything after the ">" on the
// comment line, kept exactly so we can write it back out.
// Seq has had line breaks and white space removed, but case is
// untouched.
type Record struct {
	Cmmt string
	Seq  []byte
}

// Name returns the first word in the comment, which is usually
// the sequence identifier.
func (r *Record) Name() string {
	tmp := strings.Fields(r.Cmmt)
	if len(tmp) == 0 {
		return ""
	}
	return tmp[0]
}

// Desc returns whatever follows the name on the comment line.
func (r *Record) Desc() string {
	s := strings.TrimSpace(r.Cmmt)
	if i := strings.IndexAny(s, " \t"); i != -1 {
		return strings.TrimSpace(s[i:])
	}
	return ""
}

// Len
func (r *Record) Len() int { return len(r.Seq) }

// String returns a sequence, with its comment at the start as
// a single string
func (r *Record) String() string {
	return string(cmmtChar) + r.Cmmt + "\n" + string(r.Seq)
}

// Options contains the choices passed in from the caller.
type Options struct {
	NoMmap bool // Read plain files as a stream rather than mapping them
	// Tap, if set, is wrapped around the raw bytes of each pass. size is
	// the file size. The returned function is called when the pass ends.
	Tap func(r io.Reader, size int64) (io.Reader, func())
}

// Source is an alignment which can be read more than once.
// fn is called for each record in file order. It owns the record and
// may keep it. If fn returns an error, the pass stops and that error
// comes back from Each.
type Source interface {
	Name() string
	Each(fn func(rec *Record) error) error
}

// WriteRecord writes the comment line from rec, followed by s as a
// single line. s is normally rec.Seq with columns taken out.
func WriteRecord(w io.Writer, rec *Record, s []byte) error {
	if _, err := io.WriteString(w, string(cmmtChar)+rec.Cmmt+"\n"); err != nil {
		return err
	}
	if _, err := w.Write(s); err != nil {
		return err
	}
	_, err := w.Write([]byte{NL})
	return err
}

// bytesSource is an alignment which is already in memory.
type bytesSource struct {
	name string
	data []byte
}

// NewBytesSource makes a Source from a fasta file which has been
// read into memory, or from a string in tests.
func NewBytesSource(name string, data []byte) Source {
	return &bytesSource{name: name, data: data}
}

func (s *bytesSource) Name() string { return s.name }

func (s *bytesSource) Each(fn func(rec *Record) error) error {
	return scan(bytes.NewReader(s.data), s.name, fn)
}

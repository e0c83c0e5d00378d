// Sources backed by files. Plain text is memory mapped for each pass.
// Compressed files are decompressed again on each pass.

package seq

import (
	"bytes"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	. "github.com/andrew-torda/coresnp/pkg/seq/common"
	"github.com/andrew-torda/coresnp/pkg/zwrap"
)

// Open checks that fname is something we can read twice and returns
// a Source for it.
func Open(fname string, s_opts *Options) (Source, error) {
	if s_opts == nil {
		s_opts = &Options{}
	}
	if fname == "" || fname == "-" {
		return nil, NewConfigError("input is read twice, so it must be a file, not standard input")
	}
	fi, err := os.Stat(fname)
	if err != nil {
		return nil, &IOError{Op: "open", Path: fname, Err: err}
	}
	if !fi.Mode().IsRegular() {
		return nil, NewConfigError(fname + " is not a regular file. Input is read twice, so pipes and standard input cannot be used")
	}
	if fi.Size() == 0 {
		return nil, &FormatError{Msg: "no sequences found in empty file " + fname}
	}
	gz, err := zwrap.IsGzip(fname)
	if err != nil {
		return nil, &IOError{Op: "open", Path: fname, Err: err}
	}
	if gz || s_opts.NoMmap {
		return &FileSource{fname: fname, size: fi.Size(), s_opts: s_opts}, nil
	}
	return &MmapSource{fname: fname, s_opts: s_opts}, nil
}

// tap wraps r in the caller's Tap, if there is one.
func tap(s_opts *Options, r io.Reader, size int64) (io.Reader, func()) {
	if s_opts.Tap == nil {
		return r, func() {}
	}
	return s_opts.Tap(r, size)
}

// FileSource reads from a file on each pass, decompressing if necessary.
type FileSource struct {
	fname  string
	size   int64
	s_opts *Options
}

func (s *FileSource) Name() string { return s.fname }

// Each opens the file again, so every pass starts from the first record.
func (s *FileSource) Each(fn func(rec *Record) error) error {
	fp, err := os.Open(s.fname)
	if err != nil {
		return &IOError{Op: "open", Path: s.fname, Err: err}
	}
	raw, done := tap(s.s_opts, fp, s.size)
	defer done()
	fpz, err := zwrap.WrapMaybe(struct {
		io.Reader
		io.Closer
	}{raw, fp}, s.fname)
	if err != nil {
		fp.Close()
		return &IOError{Op: "decompress", Path: s.fname, Err: err}
	}
	defer fpz.Close()
	return scan(fpz, s.fname, fn)
}

// MmapSource maps a plain text file into memory for each pass.
// Records are copied out of the mapping, so they stay valid after
// the pass has finished and the file is unmapped.
type MmapSource struct {
	fname  string
	s_opts *Options
}

func (s *MmapSource) Name() string { return s.fname }

func (s *MmapSource) Each(fn func(rec *Record) error) error {
	fp, err := os.Open(s.fname)
	if err != nil {
		return &IOError{Op: "open", Path: s.fname, Err: err}
	}
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return &IOError{Op: "mmap", Path: s.fname, Err: err}
	}
	defer mm.Unmap()
	r, done := tap(s.s_opts, bytes.NewReader(mm), int64(len(mm)))
	defer done()
	return scan(r, s.fname, fn)
}

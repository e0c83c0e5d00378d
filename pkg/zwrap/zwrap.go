// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file.
// Nothing here seeks, so the file pointer can be wrapped first, for
// example by a progress bar.

package zwrap

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
)

const gzSuffix = ".gz"

var gzMagic = [2]byte{0x1f, 0x8b}

type FpGzip struct { // This is what we return.
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying file.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	var s string
	if e := fc.zrdr.Close(); e != nil { // Close decompressor
		s = e.Error()
	}
	if e := fc.fp.Close(); e != nil { // and backing file
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Wrap puts a gzip reader in front of fp. If fp does not start
// with a gzip header, the error comes from the gzip package.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	var fpz FpGzip
	var err error
	fpz.fp = fp
	fpz.zrdr, err = gzip.NewReader(fpz.fp)
	return &fpz, err
}

// hasMagic peeks at the first two bytes, so they are still there for
// whoever reads br next. Files shorter than two bytes are not compressed.
func hasMagic(br *bufio.Reader) (bool, error) {
	sig, err := br.Peek(len(gzMagic))
	if err != nil && err != io.EOF {
		return false, err
	}
	return len(sig) == 2 && sig[0] == gzMagic[0] && sig[1] == gzMagic[1], nil
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary. The suffix is a second
// opinion. A ".gz" file that is not gzip is an error, not plain text.
func WrapMaybe(fpIn io.ReadCloser, fname string) (*FpGzip, error) {
	br := bufio.NewReader(fpIn)
	magic, err := hasMagic(br)
	if err != nil {
		return nil, err
	}
	fp := struct {
		io.Reader
		io.Closer
	}{br, fpIn}
	if magic || strings.HasSuffix(fname, gzSuffix) {
		return Wrap(fp)
	}
	return &FpGzip{fp: fp}, nil // Leave the zrdr implicitly nil
}

// IsGzip opens a file just to look at its first bytes and name.
func IsGzip(fname string) (bool, error) {
	if strings.HasSuffix(fname, gzSuffix) {
		return true, nil
	}
	fp, err := os.Open(fname)
	if err != nil {
		return false, err
	}
	defer fp.Close()
	return hasMagic(bufio.NewReaderSize(fp, 16))
}

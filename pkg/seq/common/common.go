// 29 Apr 2020
// 17 Oct 2026 gzip temp files for testing

package common

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}

// WrtTempGz is like WrtTemp, but the file is gzip compressed and
// the name ends in .gz
func WrtTempGz(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing*.gz")
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}
	defer f_tmp.Close()
	zw := gzip.NewWriter(f_tmp)
	if _, err := io.WriteString(zw, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("closing compressor on %v: %w", f_tmp.Name(), err)
	}
	return f_tmp.Name(), nil
}

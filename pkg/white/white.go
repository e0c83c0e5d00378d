// Package white removes white space from byte slices. Sequence lines
// in fasta files can have trailing blanks, carriage returns or spaces
// in the middle. None of them belong in the sequence.
package white

import (
	"bytes"
)

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// IsWhite says if c is ascii white space.
func IsWhite(c byte) bool { return asciiSpace[c] }

// Remove acts in place. The slice comes back with its length adjusted,
// but the capacity unchanged.
func Remove(sIn *[]byte) {
	s := *sIn
	n := 0
	for _, c := range s {
		if !asciiSpace[c] {
			s[n] = c
			n++
		}
	}
	*sIn = s[:n]
}

// RemoveByFields allocates. It is only here to compare against in
// benchmarks.
func RemoveByFields(sIn *[]byte) {
	*sIn = bytes.Join(bytes.Fields(*sIn), nil)
}

// Has says if there is any white space at all, so callers can skip the
// copy in Remove for clean lines, which is nearly all of them.
func Has(s []byte) bool {
	for _, c := range s {
		if asciiSpace[c] {
			return true
		}
	}
	return false
}

// The three kinds of error a run can end with. Callers pick them apart
// with errors.As. Nothing is recovered from any of them.

package common

import (
	"strconv"
)

const maxMsgLen = 40

// ConfigError means the options or the input path were unusable.
// It is reported before any data is read.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "configuration: " + e.Msg }

// FormatError means the input was read, but is not an alignment
// we can work with. Index counts records from 1. Want and Got are
// only set for length mismatches.
type FormatError struct {
	Name  string
	Index int
	Want  int
	Got   int
	Msg   string
}

// firstPart trims names, which can be whole fasta comment lines.
func firstPart(s string) string {
	if len(s) > maxMsgLen {
		return s[:maxMsgLen]
	}
	return s
}

func (e *FormatError) Error() string {
	errmsg := "format: " + e.Msg
	if e.Index != 0 {
		errmsg += " in sequence " + strconv.Itoa(e.Index)
		errmsg += " \"" + firstPart(e.Name) + "\""
	}
	if e.Want != 0 || e.Got != 0 {
		errmsg += ", expected length " + strconv.Itoa(e.Want)
		errmsg += ", got " + strconv.Itoa(e.Got)
	}
	return errmsg
}

// IOError wraps a failed open, read, decompress or write.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	s := e.Op
	if e.Path != "" {
		s += " " + e.Path
	}
	return s + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// NewConfigError saves typing &ConfigError{...} everywhere.
func NewConfigError(msg string) error { return &ConfigError{Msg: msg} }

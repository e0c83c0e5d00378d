// 17 Oct 2026

// Package coresnp removes columns from a nucleotide alignment. A column
// goes if too few sequences have a base there (not core), or, if asked,
// if it shows no variation (invariant). The alignment is read twice.
// The first pass only counts, so memory depends on the alignment length
// and not on the number of sequences.
package coresnp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pbnjay/memory"
	"github.com/raulk/go-watchdog"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/andrew-torda/coresnp/pkg/seq"
	. "github.com/andrew-torda/coresnp/pkg/seq/common"
	"github.com/andrew-torda/coresnp/pkg/sitestat"
)

// CmdFlag holds the options. The toml tags are the keys in a
// configuration file.
type CmdFlag struct {
	Core            float64 `toml:"core"`
	ExclInvariant   bool    `toml:"exclude_invariant"`
	Table           string  `toml:"table"`            // per-site table goes here
	InvariantCounts bool    `toml:"invariant_counts"` // only print A,C,G,T counts
	Verbose         bool    `toml:"verbose"`          // table instead of summary
	Workers         int     `toml:"workers"`          // for the first pass
	MemLimit        string  `toml:"mem_limit"`        // bytes or "auto"
	Progress        bool    `toml:"progress"`
	NoMmap          bool    `toml:"no_mmap"`
	LogLevel        string  `toml:"log_level"`
}

// Mode is what a run produces.
type Mode uint8

const (
	Filter    Mode = iota // the filtered alignment
	Table                 // the filtered alignment and a per-site table
	InvCounts             // only the invariant site counts
)

// Mode follows from the flags. check() makes sure InvCounts is not
// mixed with anything else.
func (flags *CmdFlag) Mode() Mode {
	switch {
	case flags.InvariantCounts:
		return InvCounts
	case flags.Table != "":
		return Table
	}
	return Filter
}

func (flags *CmdFlag) filterConfig() sitestat.Config {
	return sitestat.Config{Core: flags.Core, ExclInvariant: flags.ExclInvariant}
}

// check looks for bad options before anything is read.
func (flags *CmdFlag) check() error {
	if err := flags.filterConfig().Validate(); err != nil {
		return err
	}
	if flags.InvariantCounts {
		const emsg = "invariant counts cannot be combined with "
		switch {
		case flags.Core > 0:
			return NewConfigError(emsg + "a core threshold")
		case flags.ExclInvariant:
			return NewConfigError(emsg + "excluding invariant sites")
		case flags.Table != "":
			return NewConfigError(emsg + "a site table")
		case flags.Verbose:
			return NewConfigError(emsg + "verbose output")
		}
	}
	if flags.Table == "-" {
		return NewConfigError("the site table must go to a file, not standard output")
	}
	if flags.Table != "" {
		if err := dirExists(flags.Table); err != nil {
			return err
		}
	}
	if flags.Workers < 0 {
		return NewConfigError(fmt.Sprintf("number of workers must not be negative, got %d", flags.Workers))
	}
	if _, err := flags.memLimit(); err != nil {
		return err
	}
	return nil
}

// dirExists fails if fname could not be created because its directory
// is missing.
func dirExists(fname string) error {
	dir := filepath.Dir(fname)
	fi, err := os.Stat(dir)
	if err != nil {
		return NewConfigError(fmt.Sprintf("no directory %s for %s", dir, fname))
	}
	if !fi.IsDir() {
		return NewConfigError(fmt.Sprintf("%s is not a directory", dir))
	}
	return nil
}

// memLimit turns the mem_limit option into bytes. Zero means no limit.
func (flags *CmdFlag) memLimit() (uint64, error) {
	switch flags.MemLimit {
	case "":
		return 0, nil
	case "auto":
		n := memory.TotalMemory()
		if n == 0 {
			return 0, NewConfigError("mem_limit auto, but total memory could not be found")
		}
		return n, nil
	}
	n, err := strconv.ParseUint(flags.MemLimit, 10, 64)
	if err != nil || n == 0 {
		return 0, NewConfigError(`mem_limit must be a number of bytes or "auto", got ` + flags.MemLimit)
	}
	return n, nil
}

// SetupLog sets the level for everything logged during a run.
func SetupLog(level string) error {
	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return NewConfigError(err.Error())
	}
	log.SetLevel(lvl)
	return nil
}

// startWatchdog runs the garbage collector harder as the heap nears limit.
func startWatchdog(limit uint64) (func(), error) {
	err, stop := watchdog.HeapDriven(limit, 40, watchdog.NewAdaptivePolicy(0.5))
	if err != nil {
		return nil, fmt.Errorf("starting memory watchdog: %w", err)
	}
	log.WithField("limit", limit).Info("memory watchdog started")
	return func() {
		stop()
		log.Debug("memory watchdog stopped")
	}, nil
}

// progressTap puts a progress bar, sized to the file, on each pass.
func progressTap(w io.Writer) func(io.Reader, int64) (io.Reader, func()) {
	return func(r io.Reader, size int64) (io.Reader, func()) {
		bar := pb.New64(size)
		bar.SetTemplate(pb.Full)
		bar.Set(pb.Bytes, true)
		bar.SetWriter(w)
		bar.Start()
		return bar.NewProxyReader(r), func() { bar.Finish() }
	}
}

// logCompleteness is only for debugging. It says how full the
// columns are on average.
func logCompleteness(st sitestat.Stats) {
	if !log.IsLevelEnabled(log.DebugLevel) || st.Len() == 0 {
		return
	}
	frac := make([]float64, st.Len())
	for i, s := range st.Sites {
		frac[i] = s.Frac
	}
	mean, sd := stat.MeanStdDev(frac, nil)
	log.WithFields(log.Fields{"mean": mean, "sd": sd}).Debug("fraction of sequences with a base per site")
}

// pending is an output file written under a temporary name next to
// its final one. Nothing appears under the real name until commit.
type pending struct {
	fname string
	fp    *os.File
	done  bool
}

func createPending(fname string) (*pending, error) {
	fp, err := os.CreateTemp(filepath.Dir(fname), "."+filepath.Base(fname)+".*")
	if err != nil {
		return nil, &IOError{Op: "create", Path: fname, Err: err}
	}
	return &pending{fname: fname, fp: fp}, nil
}

func (p *pending) Write(b []byte) (int, error) { return p.fp.Write(b) }

// close finishes writing but leaves the file under its temporary name.
func (p *pending) close() error {
	if err := p.fp.Chmod(0644); err != nil {
		p.fp.Close()
		return &IOError{Op: "chmod", Path: p.fp.Name(), Err: err}
	}
	if err := p.fp.Close(); err != nil {
		return &IOError{Op: "close", Path: p.fp.Name(), Err: err}
	}
	return nil
}

func (p *pending) commit() error {
	if err := os.Rename(p.fp.Name(), p.fname); err != nil {
		return &IOError{Op: "rename", Path: p.fname, Err: err}
	}
	p.done = true
	return nil
}

// abort removes the temporary file. After commit it does nothing.
func (p *pending) abort() {
	if p == nil || p.done {
		return
	}
	p.fp.Close()
	os.Remove(p.fp.Name())
}

// toStdout says if an output name means standard output.
func toStdout(fname string) bool { return fname == "" || fname == "-" }

// outName is what error messages call an output.
func outName(fname string) string {
	if toStdout(fname) {
		return "stdout"
	}
	return fname
}

// ExitCode separates bad options from everything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cerr *ConfigError
	if errors.As(err, &cerr) {
		return ExitUsageError
	}
	return ExitFailure
}

// Mymain runs with the usual standard output and standard error.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	return Run(flags, infile, outfile, os.Stdout, os.Stderr)
}

// Run does the work. The filtered alignment goes to outfile, or
// stdout if outfile is empty. The summary, or the verbose table, and
// progress bars go to diag. Files only get their final names once
// everything has been written, so a failed run leaves no output.
func Run(flags *CmdFlag, infile, outfile string, stdout, diag io.Writer) error {
	if err := flags.check(); err != nil {
		return err
	}
	if err := SetupLog(flags.LogLevel); err != nil {
		return err
	}
	if !toStdout(outfile) {
		if err := dirExists(outfile); err != nil {
			return err
		}
	}
	if limit, _ := flags.memLimit(); limit > 0 {
		stop, err := startWatchdog(limit)
		if err != nil {
			return err
		}
		defer stop()
	}
	s_opts := &seq.Options{NoMmap: flags.NoMmap}
	if flags.Progress {
		s_opts.Tap = progressTap(diag)
	}
	src, err := seq.Open(infile, s_opts)
	if err != nil {
		return err
	}

	t0 := time.Now()
	st, err := sitestat.Accumulate(src, flags.Workers)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file": src.Name(), "sequences": st.NSeq, "length": st.Len(),
		"workers": flags.Workers, "elapsed": time.Since(t0),
	}).Info("first pass")
	logCompleteness(st)

	var alnOut, tblOut *pending
	defer func() {
		alnOut.abort()
		tblOut.abort()
	}()
	w := stdout
	if !toStdout(outfile) {
		if alnOut, err = createPending(outfile); err != nil {
			return err
		}
		w = alnOut
	}

	mode := flags.Mode()
	if mode == InvCounts {
		if err := writeInvariantCounts(w, st); err != nil {
			return &IOError{Op: "write", Path: outName(outfile), Err: err}
		}
		return commitAll(alnOut)
	}
	if mode == Table {
		if tblOut, err = createPending(flags.Table); err != nil {
			return err
		}
	}

	mask, counts := sitestat.Decide(st, flags.filterConfig())
	if flags.Verbose {
		err = writeTable(diag, st, mask, true)
	} else {
		err = writeSummary(diag, src.Name(), st, counts)
	}
	if err != nil {
		return &IOError{Op: "write", Path: "diagnostics", Err: err}
	}

	if tblOut != nil {
		if err := writeTable(tblOut, st, mask, false); err != nil {
			return &IOError{Op: "write", Path: flags.Table, Err: err}
		}
	}
	t1 := time.Now()
	if err := replay(src, mask, st.NSeq, w, outName(outfile)); err != nil {
		return err
	}
	log.WithFields(log.Fields{"kept": counts.Kept, "elapsed": time.Since(t1)}).Info("second pass")
	return commitAll(tblOut, alnOut)
}

// commitAll closes every file before renaming any of them. The
// alignment is given last, so it only appears once the rest is there.
func commitAll(outs ...*pending) error {
	for _, p := range outs {
		if p == nil {
			continue
		}
		if err := p.close(); err != nil {
			return err
		}
	}
	for _, p := range outs {
		if p == nil {
			continue
		}
		if err := p.commit(); err != nil {
			return err
		}
	}
	return nil
}

// Options from the command line and from a configuration file.

package coresnp

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	. "github.com/andrew-torda/coresnp/pkg/seq/common"
)

// option ties a configuration file key to the flags which set the same
// thing. cp copies the value from src to dst.
type option struct {
	key   string
	names []string
	cp    func(dst, src *CmdFlag)
}

var options = []option{
	{"core", []string{"c", "core"}, func(d, s *CmdFlag) { d.Core = s.Core }},
	{"exclude_invariant", []string{"e", "exclude_invariant"}, func(d, s *CmdFlag) { d.ExclInvariant = s.ExclInvariant }},
	{"table", []string{"table"}, func(d, s *CmdFlag) { d.Table = s.Table }},
	{"invariant_counts", []string{"invariant_counts"}, func(d, s *CmdFlag) { d.InvariantCounts = s.InvariantCounts }},
	{"verbose", []string{"verbose"}, func(d, s *CmdFlag) { d.Verbose = s.Verbose }},
	{"workers", []string{"j"}, func(d, s *CmdFlag) { d.Workers = s.Workers }},
	{"mem_limit", []string{"mem_limit"}, func(d, s *CmdFlag) { d.MemLimit = s.MemLimit }},
	{"progress", []string{"progress"}, func(d, s *CmdFlag) { d.Progress = s.Progress }},
	{"no_mmap", []string{"nommap"}, func(d, s *CmdFlag) { d.NoMmap = s.NoMmap }},
	{"log_level", []string{"log"}, func(d, s *CmdFlag) { d.LogLevel = s.LogLevel }},
}

// Register adds the options to a flag set. The long names -core and
// -exclude_invariant are the same as -c and -e.
func (flags *CmdFlag) Register(fset *flag.FlagSet) {
	const coreUse = "core threshold, keep sites where at least this fraction of sequences have a base (0 to 1)"
	const exclUse = "exclude invariant sites"
	fset.Float64Var(&flags.Core, "c", 0, coreUse)
	fset.Float64Var(&flags.Core, "core", 0, coreUse)
	fset.BoolVar(&flags.ExclInvariant, "e", false, exclUse)
	fset.BoolVar(&flags.ExclInvariant, "exclude_invariant", false, exclUse)
	fset.StringVar(&flags.Table, "table", "", "write a table of per-site statistics to this file")
	fset.BoolVar(&flags.InvariantCounts, "invariant_counts", false, "only print the number of invariant A,C,G,T sites")
	fset.BoolVar(&flags.Verbose, "verbose", false, "print the per-site table on stderr instead of the summary")
	fset.IntVar(&flags.Workers, "j", 1, "number of workers for counting")
	fset.StringVar(&flags.MemLimit, "mem_limit", "", `heap limit in bytes, or "auto" for total memory`)
	fset.BoolVar(&flags.Progress, "progress", false, "show progress on stderr")
	fset.BoolVar(&flags.NoMmap, "nommap", false, "read plain files as a stream, without memory mapping")
	fset.StringVar(&flags.LogLevel, "log", "warn", "log level (debug, info, warn, error)")
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fset *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// ApplyConfig reads a TOML file and copies its values into flags,
// unless the same option was given in fset on the command line.
// Unknown keys are an error.
func ApplyConfig(fname string, flags *CmdFlag, fset *flag.FlagSet) error {
	var file CmdFlag
	md, err := toml.DecodeFile(fname, &file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &IOError{Op: "open", Path: fname, Err: err}
		}
		return NewConfigError(fmt.Sprintf("%s: %v", fname, err))
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return NewConfigError(fmt.Sprintf("%s: unknown keys %s", fname, strings.Join(keys, ", ")))
	}
	set := setFlags(fset)
outer:
	for _, o := range options {
		if !md.IsDefined(o.key) {
			continue
		}
		for _, name := range o.names {
			if set[name] {
				continue outer
			}
		}
		o.cp(flags, &file)
	}
	return nil
}

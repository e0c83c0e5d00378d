// 17 Oct 2026

/*
Coresnp removes columns from a nucleotide alignment, leaving the core
SNPs.

A site (column) is removed if too few sequences have a real base
(A, C, G or T, either case) there, or, with -e, if it shows no
variation. Gaps, N and any other characters count as missing. The
alignment is read twice, once to count and once to write, so it has to
be a real file. It may be gzip compressed.

Usage:
	coresnp [flags] input.fasta[.gz]

The flags are:
	-c core, -core core
		Keep sites where at least this fraction of sequences has a base.
		Between 0 and 1. The default, 0, keeps everything.
	-e, -exclude_invariant
		Remove invariant sites, where at most one base is seen.
	-table path
		Write a tab separated table, one line per site, to path. The
		columns are pos a c g t count frac var keep.
	-invariant_counts
		Only print the number of invariant A, C, G and T sites as
		A,C,G,T. This is what tree programs want for ascertainment bias
		correction. No alignment is written.
	-verbose
		Print the per-site table, with a header, on stderr instead of
		the summary.
	-o path
		Write the alignment to path instead of standard output. Nothing
		is left behind if there is an error.
	-j workers
		Number of workers for counting.
	-config path
		A TOML file with defaults. Keys are core, exclude_invariant,
		table, invariant_counts, verbose, workers, mem_limit, progress,
		no_mmap and log_level. Flags on the command line win.
	-mem_limit bytes
		Heap size at which the garbage collector works harder. "auto"
		uses the total memory of the machine.
	-progress
		Show a progress bar for each pass.
	-nommap
		Read plain files as a stream, rather than mapping them.
	-log level
		debug, info, warn or error.

A summary of what was removed goes to standard error. The exit status
is 0 on success, 2 for bad options and 1 for anything else.
*/
package main

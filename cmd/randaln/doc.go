// 31 July 2020
// 17 Oct 2026 nucleotide alignments

/*

Randaln is for making random nucleotide alignments for testing.
Usage:
	randaln [options] fname nseq length
will generate nseq aligned sequences of length length and write them to
fname. If fname is "-", they go to standard output.

Flags:
	-e
		provoke errors. The last sequence will be one site short.
	-g probability
		probability of a gap at a site
	-l
		write some sequences in lower case
	-m probability
		probability that a site differs from the reference
	-n probability
		probability of an N at a site
	-r
		random number seed
	-w width
		line width. 0 puts each sequence on one line.

Sequences are mutated copies of a single random reference, so most
columns are invariant and a few vary, which is what a core SNP
alignment looks like.
*/
package main

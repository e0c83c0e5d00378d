// 31 July 2020

package randaln_test

import (
	"strings"
	"testing"

	"github.com/andrew-torda/coresnp/pkg/randaln"
)

func TestSimple(t *testing.T) {
	var sb strings.Builder
	args := randaln.RandAlnArgs{
		Wrtr:   &sb,
		Cmmt:   "testing_seq",
		Nseq:   500,
		Len:    1600,
		PMut:   0.05,
		PGap:   0.02,
		PUnk:   0.01,
		PLower: true,
		Width:  60,
	}
	if err := randaln.RandAlnMain(&args); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), ">"); n != args.Nseq {
		t.Fatal("count >, got ", n, "expected", args.Nseq)
	}
	s := sb.String()
	if !strings.Contains(s, "-") || !strings.ContainsAny(s, "acgt") {
		t.Fatal("expected gaps and lower case in output")
	}
}

// TestSameSeed checks the output only depends on the seed.
func TestSameSeed(t *testing.T) {
	var a, b strings.Builder
	for _, sb := range []*strings.Builder{&a, &b} {
		args := randaln.RandAlnArgs{Wrtr: sb, Nseq: 10, Len: 100, PMut: 0.1, Iseed: 99}
		if err := randaln.RandAlnMain(&args); err != nil {
			t.Fatal(err)
		}
	}
	if a.String() != b.String() {
		t.Fatal("same seed gave different alignments")
	}
}

func TestBadArgs(t *testing.T) {
	var sb strings.Builder
	if err := randaln.RandAlnMain(&randaln.RandAlnArgs{Wrtr: &sb}); err == nil {
		t.Fatal("zero sequences should be an error")
	}
}

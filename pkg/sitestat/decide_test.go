package sitestat_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/coresnp/pkg/seq/common"
	. "github.com/andrew-torda/coresnp/pkg/sitestat"
)

func TestValidate(t *testing.T) {
	for _, core := range []float64{0, 0.5, 1} {
		if err := (Config{Core: core}).Validate(); err != nil {
			t.Errorf("core %g: %v", core, err)
		}
	}
	var cerr *common.ConfigError
	for _, core := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
		if err := (Config{Core: core}).Validate(); !errors.As(err, &cerr) {
			t.Errorf("core %g: wanted ConfigError, got %v", core, err)
		}
	}
}

func TestVariant(t *testing.T) {
	for i := 0; i < 16; i++ {
		s := Site{A: i&1 != 0, C: i&2 != 0, G: i&4 != 0, T: i&8 != 0}
		n := 0
		for j := i; j != 0; j >>= 1 {
			n += j & 1
		}
		if s.NBase() != n || s.Invariant() != (n <= 1) {
			t.Errorf("%+v: NBase %d Invariant %v", s, s.NBase(), s.Invariant())
		}
	}
}

// randSite makes up a site with nseq sequences.
func randSite(rnd *rand.Rand, nseq int) Site {
	s := Site{A: rnd.Intn(2) == 0, C: rnd.Intn(3) == 0, G: rnd.Intn(4) == 0, T: rnd.Intn(5) == 0}
	if s.NBase() > 0 {
		s.Count = s.NBase() + rnd.Intn(nseq-s.NBase()+1)
	}
	s.Frac = float64(s.Count) / float64(nseq)
	s.Variant = s.NBase() > 1
	return s
}

// TestKeepRule checks keep == !(excl && invariant) && frac >= core
// on lots of made up sites and configurations.
func TestKeepRule(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	const nseq = 13
	st := Stats{NSeq: nseq}
	for i := 0; i < 2000; i++ {
		st.Sites = append(st.Sites, randSite(rnd, nseq))
	}
	before := append([]Site(nil), st.Sites...)
	for _, excl := range []bool{false, true} {
		for _, core := range []float64{0, 0.3, 0.5, 7. / 13, 0.95, 1} {
			cfg := Config{Core: core, ExclInvariant: excl}
			mask, cnt := Decide(st, cfg)
			for i, s := range st.Sites {
				want := !(excl && s.Invariant()) && s.Frac >= core
				if mask[i] != want {
					t.Fatalf("site %+v cfg %+v: keep %v", s, cfg, mask[i])
				}
			}
			if cnt.Kept != mask.NKept() || cnt.Kept+cnt.Removed() != st.Len() {
				t.Fatalf("counts do not add up: %+v", cnt)
			}
			if !excl && cnt.InvTotal() != 0 {
				t.Fatal("invariant sites removed without asking")
			}
		}
	}
	if diff := cmp.Diff(before, st.Sites); diff != "" {
		t.Fatal("Decide changed its input")
	}
}

// An invariant site that is also not core is counted as invariant.
func TestPrecedence(t *testing.T) {
	cfg := Config{Core: 0.9, ExclInvariant: true}
	var tests = []struct {
		s    Site
		want Category
	}{
		{Site{G: true, Count: 1, Frac: 0.1}, InvG},
		{Site{Count: 0, Frac: 0}, InvOther},
		{Site{T: true, Count: 10, Frac: 1}, InvT},
		{Site{A: true, C: true, Count: 5, Frac: 0.5, Variant: true}, NonCore},
		{Site{A: true, C: true, Count: 9, Frac: 0.9, Variant: true}, Kept},
	}
	for _, tt := range tests {
		if got := Classify(tt.s, cfg); got != tt.want {
			t.Errorf("%+v: got %v want %v", tt.s, got, tt.want)
		}
	}
	if Config.Validate(Config{}) != nil {
		t.Fatal("zero config should be valid")
	}
}

func TestCategoryString(t *testing.T) {
	want := []string{"kept", "invariant-A", "invariant-C", "invariant-G",
		"invariant-T", "invariant-other", "non-core"}
	for i, w := range want {
		if got := Category(i).String(); got != w {
			t.Errorf("got %s want %s", got, w)
		}
	}
}

// fill appends n copies of s to sites.
func fill(sites []Site, n int, s Site, nseq int) []Site {
	s.Frac = float64(s.Count) / float64(nseq)
	s.Variant = s.NBase() > 1
	for i := 0; i < n; i++ {
		sites = append(sites, s)
	}
	return sites
}

// TestScenario is 40 sequences of length 10000 with -e and -c 0.95.
// Some invariant sites are also non-core, to check they are counted as
// invariant. Some kept sites sit exactly on the threshold.
func TestScenario(t *testing.T) {
	const nseq = 40
	var sites []Site
	sites = fill(sites, 1000, Site{A: true, Count: 40}, nseq)
	sites = fill(sites, 394, Site{A: true, Count: 12}, nseq)
	sites = fill(sites, 1763, Site{C: true, Count: 39}, nseq)
	sites = fill(sites, 1849, Site{G: true, Count: 40}, nseq)
	sites = fill(sites, 1378, Site{T: true, Count: 2}, nseq)
	sites = fill(sites, 322, Site{Count: 0}, nseq)
	sites = fill(sites, 2000, Site{A: true, G: true, Count: 30}, nseq)
	sites = fill(sites, 143, Site{C: true, T: true, Count: 37}, nseq)
	sites = fill(sites, 1000, Site{A: true, C: true, G: true, Count: 40}, nseq)
	sites = fill(sites, 151, Site{G: true, T: true, Count: 38}, nseq)
	if len(sites) != 10000 {
		t.Fatal("test set up wrong", len(sites))
	}
	rnd := rand.New(rand.NewSource(40))
	rnd.Shuffle(len(sites), func(i, j int) { sites[i], sites[j] = sites[j], sites[i] })
	st := Stats{Sites: sites, NSeq: nseq}

	mask, got := Decide(st, Config{Core: 0.95, ExclInvariant: true})
	want := Counts{Kept: 1151, InvA: 1394, InvC: 1763, InvG: 1849, InvT: 1378,
		InvOther: 322, NonCore: 2143}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal("counts differ (-want +got):\n", diff)
	}
	if got.InvTotal() != 6706 || got.Removed() != 8849 || mask.NKept() != 1151 {
		t.Fatalf("totals wrong %d %d %d", got.InvTotal(), got.Removed(), mask.NKept())
	}

	// The invariant counts do not care about the configuration.
	if inv := InvariantCounts(st); inv != [4]int{1394, 1763, 1849, 1378} {
		t.Fatal("invariant counts", inv)
	}
}

package sitestat

import (
	"fmt"
	"math"

	. "github.com/andrew-torda/coresnp/pkg/seq/common"
)

// Config says which sites to throw away.
type Config struct {
	Core          float64 // keep sites where at least this fraction have a base
	ExclInvariant bool    // drop sites with fewer than two bases
}

// Validate is called before any reading. Decide assumes it passed.
func (cfg Config) Validate() error {
	if math.IsNaN(cfg.Core) || cfg.Core < 0 || cfg.Core > 1 {
		return NewConfigError(fmt.Sprintf("core must be between 0 and 1 (inclusive), got %g", cfg.Core))
	}
	return nil
}

// Category is why a site was removed, or Kept.
type Category uint8

const (
	Kept Category = iota
	InvA
	InvC
	InvG
	InvT
	InvOther
	NonCore
	nCategory
)

var catNames = [nCategory]string{
	"kept", "invariant-A", "invariant-C", "invariant-G", "invariant-T",
	"invariant-other", "non-core"}

func (c Category) String() string {
	if c >= nCategory {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return catNames[c]
}

// Mask has one entry per site. true means keep.
type Mask []bool

// NKept is the length of the output sequences.
func (m Mask) NKept() int {
	n := 0
	for _, k := range m {
		if k {
			n++
		}
	}
	return n
}

// Counts are the number of sites in each category.
type Counts struct {
	Kept, InvA, InvC, InvG, InvT, InvOther, NonCore int
}

func (c *Counts) add(cat Category) {
	switch cat {
	case Kept:
		c.Kept++
	case InvA:
		c.InvA++
	case InvC:
		c.InvC++
	case InvG:
		c.InvG++
	case InvT:
		c.InvT++
	case InvOther:
		c.InvOther++
	case NonCore:
		c.NonCore++
	}
}

// InvTotal is all the sites removed for being invariant.
func (c Counts) InvTotal() int { return c.InvA + c.InvC + c.InvG + c.InvT + c.InvOther }

// Removed is all the sites removed.
func (c Counts) Removed() int { return c.InvTotal() + c.NonCore }

// Classify decides about one site. The invariant test comes first, so
// a site which is invariant and not core is counted as invariant.
func Classify(s Site, cfg Config) Category {
	if cfg.ExclInvariant && s.Invariant() {
		switch {
		case s.A:
			return InvA
		case s.C:
			return InvC
		case s.G:
			return InvG
		case s.T:
			return InvT
		}
		return InvOther
	}
	if s.Frac < cfg.Core {
		return NonCore
	}
	return Kept
}

// Decide classifies every site. It does no I/O and does not touch st.
func Decide(st Stats, cfg Config) (Mask, Counts) {
	mask := make(Mask, len(st.Sites))
	var counts Counts
	for i, s := range st.Sites {
		cat := Classify(s, cfg)
		mask[i] = cat == Kept
		counts.add(cat)
	}
	return mask, counts
}

// InvariantCounts returns the number of sites where A, C, G or T is the
// only base. It ignores any Config. The result is what phylogeny
// programs want for ascertainment bias correction.
func InvariantCounts(st Stats) [nBase]int {
	var n [nBase]int
	for _, s := range st.Sites {
		if s.NBase() != 1 {
			continue
		}
		switch {
		case s.A:
			n[iA]++
		case s.C:
			n[iC]++
		case s.G:
			n[iG]++
		case s.T:
			n[iT]++
		}
	}
	return n
}

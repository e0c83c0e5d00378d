package sitestat

// Site is what we know about one column of the alignment after the
// first pass. It does not say which sequence had which base.
type Site struct {
	A, C, G, T bool    // base occurs at least once, either case
	Count      int     // sequences with A, C, G or T here
	Frac       float64 // Count / number of sequences
	Variant    bool    // two or more different bases
}

// NBase is the number of different bases seen.
func (s Site) NBase() int {
	n := 0
	for _, b := range [...]bool{s.A, s.C, s.G, s.T} {
		if b {
			n++
		}
	}
	return n
}

// Invariant means at most one base was seen. A column of gaps is
// invariant.
func (s Site) Invariant() bool { return s.NBase() <= 1 }

// Stats holds one Site per column and the number of sequences.
type Stats struct {
	Sites []Site
	NSeq  int
}

// Len is the alignment length.
func (st Stats) Len() int { return len(st.Sites) }

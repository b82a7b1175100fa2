// Package pigeonhole implements the pigeonhole filter-and-verify
// approximate searcher (SPEC_FULL.md §4.3): partition the query into k+1
// exact seeds, generate candidates from the FM-index, deduplicate, and
// verify each unique candidate by a bounded Hamming scan with early exit.
//
// Ported line-for-line in semantics from
// original_source/src/fmindex_pigeon_search.cpp.
package pigeonhole

import (
	"sort"

	"seqmap/internal/fmindex"
)

// Candidate is a (text_id, start) pair proposed by seed expansion, pending
// verification. start may be negative; verification rejects it.
type Candidate struct {
	TextID uint32
	Start  int64
}

// Exacter is the FM-index exact-search contract the pigeonhole searcher
// consumes. *fmindex.Index satisfies it.
type Exacter interface {
	SearchExact(pattern []byte) ([]fmindex.Occurrence, error)
}

// clampParts returns the number of seed partitions for a query of length m
// under at most k allowed mismatches: clamp(k+1, 1, m).
func clampParts(k, m int) int {
	parts := k + 1
	if parts < 1 {
		parts = 1
	}
	if parts > m {
		parts = m
	}
	return parts
}

// cutPoints returns parts+1 cut points over [0, m) such that
// cut[i] = floor(i*m/parts); consecutive cut points bound the i-th
// non-empty seed partition q[cut[i]:cut[i+1]).
func cutPoints(m, parts int) []int {
	cut := make([]int, parts+1)
	for i := 0; i <= parts; i++ {
		cut[i] = (i * m) / parts
	}
	return cut
}

// Seeds returns the query's seed partitions for the given k, as (start, end)
// byte ranges into the query. Exposed for testing invariant 4 (pigeonhole
// completeness).
func Seeds(m, k int) [][2]int {
	parts := clampParts(k, m)
	cut := cutPoints(m, parts)
	seeds := make([][2]int, 0, parts)
	for i := 0; i < parts; i++ {
		if cut[i+1] > cut[i] {
			seeds = append(seeds, [2]int{cut[i], cut[i+1]})
		}
	}
	return seeds
}

// Search runs the pigeonhole algorithm for a single query q against the
// reference texts refs (indexed by text_id) using index idx, allowing up to
// k mismatches. It returns the number of (text_id, start) matches found.
// When k >= len(q) every in-bounds window is within k mismatches, so the
// windows are counted directly instead of through seeds.
func Search(q []byte, refs [][]byte, idx Exacter, k int) (int, error) {
	m := len(q)
	if m == 0 {
		return 0, nil
	}
	if k >= m {
		hits := 0
		for _, ref := range refs {
			if len(ref) >= m {
				hits += len(ref) - m + 1
			}
		}
		return hits, nil
	}

	var cand []Candidate
	for _, seed := range Seeds(m, k) {
		qs, qe := seed[0], seed[1]
		piece := q[qs:qe]
		occs, err := idx.SearchExact(piece)
		if err != nil {
			return 0, err
		}
		for _, o := range occs {
			cand = append(cand, Candidate{
				TextID: o.TextID,
				Start:  int64(o.Position) - int64(qs),
			})
		}
	}
	if len(cand) == 0 {
		return 0, nil
	}

	cand = dedupCandidates(cand)

	hits := 0
	for _, c := range cand {
		if c.Start < 0 {
			continue
		}
		ref := refs[c.TextID]
		start := int(c.Start)
		if start+m > len(ref) {
			continue
		}
		if hammingLEQ(q, ref[start:start+m], k) {
			hits++
		}
	}
	return hits, nil
}

// hammingLEQ reports whether q and ref (equal length) differ in at most k
// positions, exiting as soon as the running mismatch count exceeds k.
func hammingLEQ(q, ref []byte, k int) bool {
	mism := 0
	for i := range q {
		if q[i] != ref[i] {
			mism++
			if mism > k {
				return false
			}
		}
	}
	return true
}

func dedupCandidates(cand []Candidate) []Candidate {
	sort.Slice(cand, func(i, j int) bool {
		if cand[i].TextID != cand[j].TextID {
			return cand[i].TextID < cand[j].TextID
		}
		return cand[i].Start < cand[j].Start
	})
	out := cand[:1]
	for _, c := range cand[1:] {
		last := out[len(out)-1]
		if c.TextID == last.TextID && c.Start == last.Start {
			continue
		}
		out = append(out, c)
	}
	return out
}

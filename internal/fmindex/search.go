package fmindex

import "sort"

// SearchExact returns every occurrence of pattern in the reference
// collection, deduplicated by (text_id, position). pattern must be
// non-empty.
func (idx *Index) SearchExact(pattern []byte) ([]Occurrence, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}

	sp, ep, ok := idx.backwardSearch(pattern)
	if !ok {
		return nil, nil
	}

	occs := make([]Occurrence, 0, ep-sp+1)
	for i := sp; i <= ep; i++ {
		pos := int(idx.sa[i])
		if occ, ok := idx.decodeOccurrence(pos, len(pattern)); ok {
			occs = append(occs, occ)
		}
	}
	return dedupOccurrences(occs), nil
}

// backwardSearch performs the classic FM-index backward search for
// pattern, returning the SA range [sp, ep] of suffixes having pattern as a
// prefix.
func (idx *Index) backwardSearch(pattern []byte) (sp, ep int, ok bool) {
	m := len(pattern)
	c := pattern[m-1]
	base, known := idx.c[c]
	if !known {
		return 0, 0, false
	}
	sp, ep = base, idx.ep[c]

	for i := m - 2; i >= 0 && sp <= ep; i-- {
		var extOK bool
		sp, ep, extOK = idx.extend(pattern[i], sp, ep)
		if !extOK {
			return 0, 0, false
		}
	}
	if sp > ep {
		return 0, 0, false
	}
	return sp, ep, true
}

// ksubstState is one node of the backtracking search tree used by
// SearchKSubst: an SA range matched so far, the next (leftward) pattern
// index to consume, and the number of substitutions spent reaching here.
type ksubstState struct {
	sp, ep     int
	i          int
	mismatches int
}

// SearchKSubst returns every occurrence of pattern in the reference
// collection allowing up to k substitutions and zero insertions/deletions.
// Results are deduplicated by (text_id, position).
func (idx *Index) SearchKSubst(pattern []byte, k int) ([]Occurrence, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	if k < 0 {
		k = 0
	}

	m := len(pattern)
	var occs []Occurrence

	var stack []ksubstState
	last := pattern[m-1]
	for _, s := range dna5Alphabet {
		base, known := idx.c[s]
		if !known {
			continue
		}
		mism := 0
		if s != last {
			mism = 1
		}
		if mism > k {
			continue
		}
		sp, ep := base, idx.ep[s]
		if sp > ep {
			continue
		}
		stack = append(stack, ksubstState{sp: sp, ep: ep, i: m - 2, mismatches: mism})
	}

	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if st.i < 0 {
			for j := st.sp; j <= st.ep; j++ {
				pos := int(idx.sa[j])
				if occ, ok := idx.decodeOccurrence(pos, m); ok {
					occs = append(occs, occ)
				}
			}
			continue
		}

		want := pattern[st.i]
		for _, s := range dna5Alphabet {
			mism := st.mismatches
			if s != want {
				mism++
			}
			if mism > k {
				continue
			}
			newSp, newEp, ok := idx.extend(s, st.sp, st.ep)
			if !ok {
				continue
			}
			stack = append(stack, ksubstState{sp: newSp, ep: newEp, i: st.i - 1, mismatches: mism})
		}
	}

	return dedupOccurrences(occs), nil
}

func dedupOccurrences(occs []Occurrence) []Occurrence {
	if len(occs) < 2 {
		return occs
	}
	sort.Slice(occs, func(i, j int) bool {
		if occs[i].TextID != occs[j].TextID {
			return occs[i].TextID < occs[j].TextID
		}
		return occs[i].Position < occs[j].Position
	})
	out := occs[:1]
	for _, o := range occs[1:] {
		last := out[len(out)-1]
		if o.TextID == last.TextID && o.Position == last.Position {
			continue
		}
		out = append(out, o)
	}
	return out
}

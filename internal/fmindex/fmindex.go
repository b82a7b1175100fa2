// Package fmindex implements the FM-index builder and the two search
// operations the core requires at the FM-index boundary: search_exact and
// search_k_subst (§4.2, §4.4 of SPEC_FULL.md). Construction and the BWT/C/OCC
// tables are grounded on vtphan/fmi's uncompressed index; mismatch
// backtracking is grounded on TGenNorth-vipr/fmi's stack-based Index.Lookup, with
// the insertion/deletion branches removed since this toolkit is
// Hamming/substitution-only.
package fmindex

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"seqmap/internal/reference"
)

// dna5Alphabet is the set of symbols substitutable during k-substitution
// search. The sentinel and separator bytes are never substituted in —
// queries are guaranteed not to contain them.
var dna5Alphabet = [5]byte{'A', 'C', 'G', 'T', 'N'}

// Occurrence is the canonical (text_id, position) shape the core imposes at
// the FM-index boundary (SPEC_FULL.md §3 / spec.md Design Notes).
type Occurrence struct {
	TextID   uint32
	Position uint64
}

// Index is an FM-index over a reference collection's concatenated string.
// It is immutable after Build/Load and safe to share read-only across
// worker goroutines.
type Index struct {
	s      []byte
	bounds []reference.Range
	sa     []uint32
	c      map[byte]int
	ep     map[byte]int
	occ    map[byte][]int32
}

// Build constructs an FM-index over con (the concatenated reference string
// with its per-text boundaries). The suffix array and BWT are built first,
// then the C and OCC tables.
func Build(con *reference.Concatenated) *Index {
	idx := &Index{
		s:      con.S,
		bounds: con.Bounds,
	}

	sa := make([]uint32, len(idx.s))
	for i := range sa {
		sa[i] = uint32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return lessSuffix(idx.s, sa[i], sa[j])
	})
	idx.sa = sa

	n := len(idx.s)
	bwt := make([]byte, n)
	for i, pos := range sa {
		if pos == 0 {
			bwt[i] = idx.s[n-1]
		} else {
			bwt[i] = idx.s[pos-1]
		}
	}

	freq := make(map[byte]int)
	for _, b := range idx.s {
		freq[b]++
	}

	symbols := make([]int, 0, len(freq))
	for b := range freq {
		symbols = append(symbols, int(b))
	}
	sort.Ints(symbols)

	idx.c = make(map[byte]int)
	idx.ep = make(map[byte]int)
	cum := 0
	for _, si := range symbols {
		b := byte(si)
		idx.c[b] = cum
		cum += freq[b]
		idx.ep[b] = idx.c[b] + freq[b] - 1
	}

	idx.occ = make(map[byte][]int32)
	for _, si := range symbols {
		idx.occ[byte(si)] = make([]int32, n)
	}
	var count [256]int32
	for i := 0; i < n; i++ {
		count[bwt[i]]++
		for _, si := range symbols {
			b := byte(si)
			idx.occ[b][i] = count[b]
		}
	}

	return idx
}

func lessSuffix(s []byte, a, b uint32) bool {
	return bytes.Compare(s[a:], s[b:]) < 0
}

// occAt returns the number of occurrences of c in BWT[0..i], 0 for i < 0.
func (idx *Index) occAt(c byte, i int) int32 {
	if i < 0 {
		return 0
	}
	col, ok := idx.occ[c]
	if !ok {
		return 0
	}
	return col[i]
}

// extend narrows the SA range [sp, ep] (suffixes currently matched) by
// prepending character c, returning ok=false when c does not occur in the
// range.
func (idx *Index) extend(c byte, sp, ep int) (int, int, bool) {
	base, ok := idx.c[c]
	if !ok {
		return 0, 0, false
	}
	newSp := base + int(idx.occAt(c, sp-1))
	newEp := base + int(idx.occAt(c, ep)) - 1
	if newSp > newEp {
		return 0, 0, false
	}
	return newSp, newEp, true
}

// decodeOccurrence maps a global position in the concatenated string to the
// canonical (text_id, position) shape, rejecting occurrences whose
// [pos, pos+patLen) window crosses a text boundary (separator or sentinel).
// This is the one case in which the FM-index boundary silently drops a
// result, per spec.md §7's decode-ambiguity rule.
func (idx *Index) decodeOccurrence(globalPos, patLen int) (Occurrence, bool) {
	textID, offset, ok := textAt(idx.bounds, globalPos)
	if !ok {
		return Occurrence{}, false
	}
	r := idx.bounds[textID]
	if offset+patLen > (r.End - r.Start) {
		return Occurrence{}, false
	}
	return Occurrence{TextID: uint32(textID), Position: uint64(offset)}, true
}

func textAt(bounds []reference.Range, pos int) (textID, offset int, ok bool) {
	for i, r := range bounds {
		if pos >= r.Start && pos < r.End {
			return i, pos - r.Start, true
		}
	}
	return 0, 0, false
}

// ErrEmptyPattern is returned by SearchExact and SearchKSubst for a
// zero-length pattern, which spec.md leaves unsupported.
var ErrEmptyPattern = errors.New("pattern is empty")

// Package sacore implements the suffix-array builder and the binary-search
// locator over it. The suffix array is built over a concatenated reference
// string S that ends in a sentinel byte strictly smaller than every other
// byte that occurs in S; see internal/reference.Concat.
//
// Construction is grounded on the comparison-sort approach in
// vtphan/fmi's uncompressed index (sort.Sort over a BySuffix comparator);
// the locator is ported from original_source/src/suffixarray_search.cpp.
package sacore

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
)

// Build returns the suffix array of s: SA[i] is the starting index in s of
// the i-th suffix in lexicographic order under byte comparison. len(s) must
// be less than 2^32; callers enforce the capacity check (see
// internal/reference.Concat) before calling Build.
func Build(s []byte) []uint32 {
	sa := make([]uint32, len(s))
	for i := range sa {
		sa[i] = uint32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(s[sa[i]:], s[sa[j]:]) < 0
	})
	return sa
}

// cmpSuffixPattern compares the suffix of s starting at pos against pattern
// p, returning -1 if the suffix is lexicographically less than p (or ends
// before p is exhausted), 0 if p is a prefix of the suffix, and +1 if the
// suffix is lexicographically greater than p.
func cmpSuffixPattern(s []byte, pos int, p []byte) int {
	n, m := len(s), len(p)
	i := 0
	for i < m && pos+i < n {
		a, b := s[pos+i], p[i]
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		i++
	}
	if i == m {
		return 0
	}
	return -1 // suffix ended before p did
}

// Locate returns the inclusive suffix-array interval [LP, RP] of suffixes
// that have p as a prefix. ok is false when p does not occur in s (an empty
// interval). p must be non-empty and must not contain the separator or
// sentinel bytes; behavior is otherwise unspecified.
func Locate(s []byte, sa []uint32, p []byte) (lp, rp int, ok bool) {
	n := len(sa)

	// LP: smallest i such that cmp(s, sa[i], p) != -1.
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if cmpSuffixPattern(s, int(sa[mid]), p) == -1 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	lp = lo

	// firstGT: smallest i such that cmp(s, sa[i], p) == +1.
	lo, hi = 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if cmpSuffixPattern(s, int(sa[mid]), p) == 1 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	firstGT := lo

	if lp >= firstGT {
		return 0, -1, false
	}
	return lp, firstGT - 1, true
}

// Count returns the number of occurrences of p in s, i.e. RP-LP+1 for a
// non-empty interval and 0 otherwise.
func Count(s []byte, sa []uint32, p []byte) int {
	lp, rp, ok := Locate(s, sa, p)
	if !ok {
		return 0
	}
	return rp - lp + 1
}

// ErrEmptyIndex is returned by Read when the stored suffix count is zero.
var ErrEmptyIndex = errors.New("suffix array index file is empty (n=0)")

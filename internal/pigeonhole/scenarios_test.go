package pigeonhole

import (
	"testing"

	"seqmap/internal/fmindex"
	"seqmap/internal/reference"
	"seqmap/internal/sacore"
)

// TestScenarioS1 is spec.md §8's S1: single-text reference, exact match.
func TestScenarioS1(t *testing.T) {
	idx, refs, err := buildSingleTextIndex([]byte("ACGTACGT"))
	if err != nil {
		t.Fatal(err)
	}
	query := []byte("ACGT")

	fmHits, err := idx.SearchKSubst(query, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(fmHits) != 2 {
		t.Errorf("S1: fm_k_subst_hits = %d, want 2", len(fmHits))
	}

	pigeonHits, err := Search(query, refs, idx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pigeonHits != 2 {
		t.Errorf("S1: pigeon_hits = %d, want 2", pigeonHits)
	}
}

// TestScenarioS2 is spec.md §8's S2: same reference and query as S1, but
// k=1 — only the two exact windows stay within 1 mismatch.
func TestScenarioS2(t *testing.T) {
	idx, refs, err := buildSingleTextIndex([]byte("ACGTACGT"))
	if err != nil {
		t.Fatal(err)
	}
	query := []byte("ACGT")

	fmHits, err := idx.SearchKSubst(query, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(fmHits) != 2 {
		t.Errorf("S2: fm_k_subst_hits = %d, want 2", len(fmHits))
	}

	pigeonHits, err := Search(query, refs, idx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if pigeonHits != 2 {
		t.Errorf("S2: pigeon_hits = %d, want 2", pigeonHits)
	}
}

// TestScenarioS3 is spec.md §8's S3: overlapping exact matches are all
// counted (starts 0,1,2 in "AAAA" for query "AA").
func TestScenarioS3(t *testing.T) {
	idx, refs, err := buildSingleTextIndex([]byte("AAAA"))
	if err != nil {
		t.Fatal(err)
	}
	query := []byte("AA")

	fmHits, err := idx.SearchKSubst(query, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(fmHits) != 3 {
		t.Errorf("S3: fm_k_subst_hits = %d, want 3", len(fmHits))
	}

	pigeonHits, err := Search(query, refs, idx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pigeonHits != 3 {
		t.Errorf("S3: pigeon_hits = %d, want 3", pigeonHits)
	}
}

// TestScenarioS4 is spec.md §8's S4: a two-text reference, exercising both
// the FM-index path (exactly 1 hit) and the suffix-array path over the
// concatenation "AC%GT$" (pattern "C" matches once).
func TestScenarioS4(t *testing.T) {
	coll := reference.Collection{
		{Name: "a", Seq: []byte("AC")},
		{Name: "b", Seq: []byte("GT")},
	}
	con, err := coll.Concat()
	if err != nil {
		t.Fatal(err)
	}

	idx := fmindex.Build(con)
	refs := [][]byte{coll[0].Seq, coll[1].Seq}
	query := []byte("C")

	fmHits, err := idx.SearchKSubst(query, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(fmHits) != 1 {
		t.Errorf("S4: fm_k_subst_hits = %d, want 1", len(fmHits))
	}

	pigeonHits, err := Search(query, refs, idx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pigeonHits != 1 {
		t.Errorf("S4: pigeon_hits = %d, want 1", pigeonHits)
	}

	sa := sacore.Build(con.S)
	if got := sacore.Count(con.S, sa, query); got != 1 {
		t.Errorf("S4: SA count_SA(%q) = %d, want 1", query, got)
	}
}

// TestScenarioS5 is spec.md §8's S5: N is a canonical DNA5 symbol, not a
// wildcard, and matches itself exactly once.
func TestScenarioS5(t *testing.T) {
	idx, refs, err := buildSingleTextIndex([]byte("ACGTN"))
	if err != nil {
		t.Fatal(err)
	}
	query := []byte("N")

	fmHits, err := idx.SearchKSubst(query, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(fmHits) != 1 {
		t.Errorf("S5: fm_k_subst_hits = %d, want 1", len(fmHits))
	}

	pigeonHits, err := Search(query, refs, idx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pigeonHits != 1 {
		t.Errorf("S5: pigeon_hits = %d, want 1", pigeonHits)
	}
}

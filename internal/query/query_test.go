package query

import (
	"os"
	"path/filepath"
	"testing"

	"seqmap/internal/sacore"
)

func writeFastq(t *testing.T, records []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query.fastq")
	var out []byte
	for i, seq := range records {
		out = append(out, '@')
		out = append(out, []byte("r")...)
		out = append(out, []byte{byte('0' + i)}...)
		out = append(out, '\n')
		out = append(out, seq...)
		out = append(out, '\n')
		out = append(out, '+', '\n')
		for range seq {
			out = append(out, 'I')
		}
		out = append(out, '\n')
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsEmptyQueries(t *testing.T) {
	path := writeFastq(t, []string{"acgt", ""})
	queries, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(queries) != 2 {
		t.Fatalf("Load returned %d queries, want 2 (empty query kept)", len(queries))
	}
	if string(queries[0]) != "ACGT" {
		t.Errorf("Load did not canonicalize: got %q", queries[0])
	}
	if len(queries[1]) != 0 {
		t.Errorf("second query = %q, want empty", queries[1])
	}
}

func TestDuplicateToNFixpointAndLength(t *testing.T) {
	queries := [][]byte{[]byte("A"), []byte("C"), []byte("G")}

	var testtable = []int{0, 1, 2, 3, 4, 7, 10}
	for _, n := range testtable {
		out := DuplicateToN(queries, n)
		if len(out) != n {
			t.Errorf("len(DuplicateToN(queries, %d)) = %d, want %d", n, len(out), n)
		}
		for i, q := range out {
			want := queries[i%len(queries)]
			if string(q) != string(want) {
				t.Errorf("DuplicateToN(queries, %d)[%d] = %q, want %q", n, i, q, want)
			}
		}
	}
}

func TestDuplicateToNEmptyInputIsEmptyOutput(t *testing.T) {
	if out := DuplicateToN(nil, 100); out != nil {
		t.Errorf("DuplicateToN(nil, 100) = %v, want nil", out)
	}
	if out := DuplicateToN([][]byte{[]byte("A")}, 0); out != nil {
		t.Errorf("DuplicateToN(queries, 0) = %v, want nil", out)
	}
}

// TestScenarioS6 is spec.md §8's S6: query_ct=5 over base queries ["A","C"]
// duplicates to exactly ["A","C","A","C","A"], and summing each query's
// overlapping occurrence count against reference "ACAC" gives
// 3*count("A") + 2*count("C") = 3*2 + 2*2 = 10.
func TestScenarioS6(t *testing.T) {
	base := [][]byte{[]byte("A"), []byte("C")}
	queries := DuplicateToN(base, 5)

	want := [][]byte{[]byte("A"), []byte("C"), []byte("A"), []byte("C"), []byte("A")}
	if len(queries) != len(want) {
		t.Fatalf("S6: DuplicateToN produced %d queries, want %d", len(queries), len(want))
	}
	for i := range want {
		if string(queries[i]) != string(want[i]) {
			t.Fatalf("S6: queries[%d] = %q, want %q", i, queries[i], want[i])
		}
	}

	s := append([]byte("ACAC"), '$')
	sa := sacore.Build(s)

	var totalHits int
	for _, q := range queries {
		totalHits += sacore.Count(s, sa, q)
	}
	if totalHits != 10 {
		t.Errorf("S6: total hits = %d, want 10", totalHits)
	}
}

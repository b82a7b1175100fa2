// Package query loads query sequences and applies the doubling-duplication
// rule (spec.md §3): if the loaded set has fewer than M queries, the whole
// set is appended to itself until it reaches or exceeds M, then truncated to
// exactly M.
package query

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"

	"seqmap/internal/dna5"
)

// Load reads every record from a FASTA/FASTQ query file (optionally gzip
// compressed), canonicalizing each sequence to DNA5. Unlike
// internal/reference.Load, empty queries are kept (they are skipped later by
// each searcher, per spec.md §3: "may be empty (skipped)").
func Load(path string) ([][]byte, error) {
	reader, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, errors.Wrapf(err, "open query file %q", path)
	}
	defer reader.Close()

	var queries [][]byte
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "read query file %q", path)
		}
		seq := append([]byte(nil), record.Seq.Seq...)
		dna5.CanonSeq(seq)
		queries = append(queries, seq)
	}
	return queries, nil
}

// DuplicateToN returns queries doubled-and-truncated to exactly n elements.
// The result is empty when n is 0 or queries is empty. A non-empty query
// file is assumed whenever n > 0; an empty query file with a non-zero
// query_ct is an input-shape error callers report before ever reaching this
// function (spec.md §7).
func DuplicateToN(queries [][]byte, n int) [][]byte {
	if n == 0 || len(queries) == 0 {
		return nil
	}
	out := append([][]byte(nil), queries...)
	for len(out) < n {
		old := len(out)
		out = append(out, out[:old]...)
	}
	return out[:n]
}

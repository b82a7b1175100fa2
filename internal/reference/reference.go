// Package reference owns the parsed reference collection: an ordered set of
// (name, sequence) records read from FASTA/FASTQ, plus the concatenated,
// sentinel/separator-terminated string used by the suffix-array path.
package reference

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"

	"seqmap/internal/dna5"
)

// Text is one reference record: a name (ignored by the search core, kept
// only for diagnostics) and its canonical DNA5 sequence.
type Text struct {
	Name string
	Seq  []byte
}

// Collection is an ordered, immutable-after-load set of reference texts
// indexed by text_id in [0, len(Collection)).
type Collection []Text

// Load reads every record from a FASTA/FASTQ file (optionally gzip
// compressed) and returns the resulting Collection. Records with an empty
// sequence are dropped, matching spec.md's "each text is non-empty on input
// or is dropped" invariant. Invalid alphabet characters are mapped to N.
func Load(path string) (Collection, error) {
	reader, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, errors.Wrapf(err, "open reference file %q", path)
	}
	defer reader.Close()

	var coll Collection
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "read reference file %q", path)
		}
		seq := append([]byte(nil), record.Seq.Seq...)
		dna5.CanonSeq(seq)
		if len(seq) == 0 {
			continue
		}
		coll = append(coll, Text{Name: string(record.Name), Seq: seq})
	}
	return coll, nil
}

// Concat builds the concatenated reference string S used by the
// suffix-array path: seq_0 ‖ sep ‖ seq_1 ‖ sep ‖ … ‖ seq_{T-1} ‖ sentinel.
// Bounds returns, for each text_id, the half-open byte range [start, end)
// that text occupies within S (excluding the trailing separator/sentinel),
// so callers can translate a position in S back to (text_id, local offset).
type Concatenated struct {
	S      []byte
	Bounds []Range
}

// Range is a half-open [Start, End) byte interval within a Concatenated.S.
type Range struct {
	Start, End int
}

// Concat concatenates every text in the collection with the separator byte
// between texts and the sentinel byte at the very end. It fails if the
// collection is empty or if the resulting string would not fit in a 32-bit
// suffix array index (|S| >= 2^32), per spec.md's capacity-error rule.
func (c Collection) Concat() (*Concatenated, error) {
	if len(c) == 0 {
		return nil, errors.New("reference collection is empty")
	}

	total := 0
	for _, t := range c {
		total += len(t.Seq) + 1 // +1 for the following separator or sentinel
	}
	if uint64(total) >= 1<<32 {
		return nil, errors.Errorf("concatenated reference too large: %d bytes (limit 2^32)", total)
	}

	s := make([]byte, 0, total)
	bounds := make([]Range, len(c))
	for i, t := range c {
		start := len(s)
		s = append(s, t.Seq...)
		bounds[i] = Range{Start: start, End: len(s)}
		if i < len(c)-1 {
			s = append(s, dna5.Separator)
		}
	}
	s = append(s, dna5.Sentinel)

	return &Concatenated{S: s, Bounds: bounds}, nil
}

// TextAt returns the text_id owning byte position pos in S, and the local
// offset of pos within that text. ok is false when pos falls on a
// separator or the sentinel, or out of range.
func (c *Concatenated) TextAt(pos int) (textID, offset int, ok bool) {
	// Bounds is sorted by construction; a linear scan is fine at the sizes
	// this core operates on (tens to low thousands of reference texts).
	for i, r := range c.Bounds {
		if pos >= r.Start && pos < r.End {
			return i, pos - r.Start, true
		}
	}
	return 0, 0, false
}

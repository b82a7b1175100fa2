package fmindex

import (
	"bufio"
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"seqmap/internal/reference"
)

// blob is the exported snapshot of Index gob-encoded to the on-disk FM-index
// file. Its layout is opaque to callers outside this package, matching
// spec.md §6's "whatever the builder emits" contract.
type blob struct {
	S      []byte
	Bounds []reference.Range
	SA     []uint32
	C      map[byte]int
	EP     map[byte]int
	OCC    map[byte][]int32
}

// Save writes idx to path as a single gob-encoded binary blob, in the style
// of the gob-based persistence used by other_examples/davidebolo1993-kfilt.
func (idx *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create fm-index file %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	b := blob{S: idx.s, Bounds: idx.bounds, SA: idx.sa, C: idx.c, EP: idx.ep, OCC: idx.occ}
	if err := gob.NewEncoder(w).Encode(&b); err != nil {
		return errors.Wrap(err, "encode fm-index")
	}
	return errors.Wrap(w.Flush(), "flush fm-index file")
}

// Load reads an FM-index previously written by Save.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open fm-index file %q", path)
	}
	defer f.Close()

	var b blob
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&b); err != nil {
		return nil, errors.Wrapf(err, "decode fm-index file %q", path)
	}

	return &Index{
		s:      b.S,
		bounds: b.Bounds,
		sa:     b.SA,
		c:      b.C,
		ep:     b.EP,
		occ:    b.OCC,
	}, nil
}

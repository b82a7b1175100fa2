package sacore

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Write serializes sa to path in the bit-exact little-endian layout
// required by spec.md §6:
//
//	offset 0 : u64  n      ; number of suffixes
//	offset 8 : u32[n] sa   ; SA entries
func Write(path string, sa []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create suffix array index %q", path)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, uint64(len(sa))); err != nil {
		return errors.Wrap(err, "write suffix array length")
	}
	if err := binary.Write(f, binary.LittleEndian, sa); err != nil {
		return errors.Wrap(err, "write suffix array entries")
	}
	return nil
}

// Read deserializes a suffix array previously written by Write. It
// validates n > 0 and reads exactly 8 + 4n bytes, returning an
// index-format error on truncation or a zero-length index.
func Read(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open suffix array index %q", path)
	}
	defer f.Close()

	var n uint64
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return nil, errors.Wrap(err, "read suffix array length")
	}
	if n == 0 {
		return nil, ErrEmptyIndex
	}

	sa := make([]uint32, n)
	if err := binary.Read(f, binary.LittleEndian, sa); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, errors.Wrapf(err, "truncated suffix array index %q (n=%d)", path, n)
		}
		return nil, errors.Wrap(err, "read suffix array entries")
	}
	return sa, nil
}

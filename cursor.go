package paging

import (
	"encoding/base64"
	"encoding/binary"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

const cursorSize = 4

// EncodeCursor returns the opaque cursor for a 1-based ordinal index: the
// base64 encoding of the index as a little-endian 32-bit signed integer.
func EncodeCursor(index int) string {
	var buf [cursorSize]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(int32(index)))
	return base64.StdEncoding.EncodeToString(buf[:])
}

// DecodeCursor returns the ordinal index encoded in cursor. It fails with
// ErrDecode on malformed base64, a payload that is not exactly four bytes,
// or an index below 1.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, errors.Wrapf(ErrDecode, "cursor %q is not base64", cursor)
	}

	if len(raw) != cursorSize {
		return 0, errors.Wrapf(ErrDecode, "cursor %q decodes to %d bytes, want %d", cursor, len(raw), cursorSize)
	}

	index := int(int32(binary.LittleEndian.Uint32(raw)))
	if index < 1 {
		return 0, errors.Wrapf(ErrDecode, "cursor %q holds non-positive index %d", cursor, index)
	}

	return index, nil
}

// DecodeCursorPtr decodes an optional cursor argument. A nil or empty cursor
// yields an invalid null.Int and no error.
func DecodeCursorPtr(cursor *string) (null.Int, error) {
	if cursor == nil || *cursor == "" {
		return null.Int{}, nil
	}

	index, err := DecodeCursor(*cursor)
	if err != nil {
		return null.Int{}, err
	}

	return null.IntFrom(index), nil
}

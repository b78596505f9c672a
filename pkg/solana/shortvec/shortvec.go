// Package shortvec implements the compact-u16 length prefix of the
// transaction wire format.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

const maxEncodedSize = 3

var (
	ErrLengthOutOfRange = errors.New("length out of range")
	ErrNonCanonical     = errors.New("non-canonical length encoding")
)

// AppendLen appends the encoding of n to dst. n must fit in a uint16.
func AppendLen(dst []byte, n int) ([]byte, error) {
	if n < 0 || n > math.MaxUint16 {
		return dst, errors.Wrapf(ErrLengthOutOfRange, "%d", n)
	}

	for n >= 0x80 {
		dst = append(dst, byte(n)|0x80)
		n >>= 7
	}
	return append(dst, byte(n)), nil
}

// DecodeLen decodes the length at the start of b. It returns the length and
// the number of bytes it occupied.
func DecodeLen(b []byte) (n int, size int, err error) {
	for size < maxEncodedSize {
		if size >= len(b) {
			return 0, 0, io.ErrUnexpectedEOF
		}

		v := b[size]
		n |= int(v&0x7f) << (7 * size)
		size++

		if v&0x80 != 0 {
			continue
		}
		if size > 1 && v == 0 {
			return 0, 0, ErrNonCanonical
		}
		if n > math.MaxUint16 {
			return 0, 0, errors.Wrapf(ErrLengthOutOfRange, "%d", n)
		}
		return n, size, nil
	}

	return 0, 0, errors.Wrapf(ErrLengthOutOfRange, "more than %d bytes", maxEncodedSize)
}

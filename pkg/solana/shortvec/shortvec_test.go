package shortvec

import (
	"io"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for i := 0; i <= math.MaxUint16; i++ {
		encoded, err := AppendLen(nil, i)
		require.NoError(t, err)

		actual, size, err := DecodeLen(append(encoded, 0xaa))
		require.NoError(t, err)
		require.Equal(t, i, actual)
		require.Equal(t, len(encoded), size)
	}
}

func TestKnownEncodings(t *testing.T) {
	for _, tc := range []struct {
		val     int
		encoded []byte
	}{
		{0x0, []byte{0x0}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0xff, []byte{0xff, 0x01}},
		{0x100, []byte{0x80, 0x02}},
		{0x7fff, []byte{0xff, 0xff, 0x01}},
		{0xffff, []byte{0xff, 0xff, 0x03}},
	} {
		encoded, err := AppendLen([]byte{0x42}, tc.val)
		require.NoError(t, err)
		assert.Equal(t, append([]byte{0x42}, tc.encoded...), encoded)
	}
}

func TestInvalid(t *testing.T) {
	_, err := AppendLen(nil, math.MaxUint16+1)
	assert.True(t, errors.Is(err, ErrLengthOutOfRange))

	_, err = AppendLen(nil, -1)
	assert.True(t, errors.Is(err, ErrLengthOutOfRange))

	for _, tc := range []struct {
		name    string
		encoded []byte
		err     error
	}{
		{"empty", nil, io.ErrUnexpectedEOF},
		{"truncated", []byte{0x80}, io.ErrUnexpectedEOF},
		{"alias", []byte{0x80, 0x00}, ErrNonCanonical},
		{"overflow", []byte{0xff, 0xff, 0x04}, ErrLengthOutOfRange},
		{"too long", []byte{0x80, 0x80, 0x80, 0x01}, ErrLengthOutOfRange},
	} {
		_, _, err := DecodeLen(tc.encoded)
		assert.True(t, errors.Is(err, tc.err), tc.name)
	}
}

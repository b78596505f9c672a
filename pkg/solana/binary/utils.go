// Package binary holds the little-endian put/get helpers shared by the
// program packages. Every helper reads or writes at *offset and advances it.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"
)

var ErrUnexpectedEOF = errors.New("unexpected end of data")

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst[*offset:*offset+ed25519.PublicKeySize], src)
	*offset += ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func PutInt64(dst []byte, v int64, offset *int) {
	PutUint64(dst, uint64(v), offset)
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func PutUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst[*offset:], v)
	*offset += 2
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func PutBool(dst []byte, v bool, offset *int) {
	if v {
		PutUint8(dst, 1, offset)
	} else {
		PutUint8(dst, 0, offset)
	}
}

// PutString writes a u32 length prefix followed by the raw bytes of src.
func PutString(dst []byte, src string, offset *int) {
	PutUint32(dst, uint32(len(src)), offset)
	copy(dst[*offset:], src)
	*offset += len(src)
}

// PutUint32Vec writes a u32 length prefix followed by each element.
func PutUint32Vec(dst []byte, src []uint32, offset *int) {
	PutUint32(dst, uint32(len(src)), offset)
	for _, v := range src {
		PutUint32(dst, v, offset)
	}
}

// StringSize is the encoded size of a length-prefixed string.
func StringSize(s string) int {
	return 4 + len(s)
}

// Uint32VecSize is the encoded size of a length-prefixed Vec<u32>.
func Uint32VecSize(v []uint32) int {
	return 4 + 4*len(v)
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func GetInt64(src []byte, dst *int64, offset *int) {
	var v uint64
	GetUint64(src, &v, offset)
	*dst = int64(v)
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func GetUint16(src []byte, dst *uint16, offset *int) {
	*dst = binary.LittleEndian.Uint16(src[*offset:])
	*offset += 2
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func GetBool(src []byte, dst *bool, offset *int) {
	*dst = src[*offset] == 1
	*offset += 1
}

// GetString reads a length-prefixed string, failing if the declared length
// runs past the end of src.
func GetString(src []byte, dst *string, offset *int) error {
	length, err := GetVecLen(src, 1, offset)
	if err != nil {
		return err
	}

	*dst = string(src[*offset : *offset+length])
	*offset += length
	return nil
}

// GetUint32Vec reads a length-prefixed Vec<u32>.
func GetUint32Vec(src []byte, dst *[]uint32, offset *int) error {
	length, err := GetVecLen(src, 4, offset)
	if err != nil {
		return err
	}

	*dst = make([]uint32, length)
	for i := range *dst {
		GetUint32(src, &(*dst)[i], offset)
	}
	return nil
}

// GetVecLen reads a u32 length prefix and checks that length elements of
// elemSize bytes remain in src.
func GetVecLen(src []byte, elemSize int, offset *int) (int, error) {
	if len(src) < *offset+4 {
		return 0, ErrUnexpectedEOF
	}

	var length uint32
	GetUint32(src, &length, offset)

	if uint64(len(src)-*offset) < uint64(length)*uint64(elemSize) {
		return 0, errors.Wrapf(ErrUnexpectedEOF, "vec of %d elements", length)
	}
	return int(length), nil
}

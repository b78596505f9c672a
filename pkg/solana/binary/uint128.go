package binary

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"
)

// Uint128 is an unsigned 128 bit integer stored as two 64 bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// NewUint128 returns a Uint128 holding v.
func NewUint128(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Uint128FromBig converts v, failing when it is negative or wider than 128
// bits.
func Uint128FromBig(v *big.Int) (Uint128, error) {
	if v.Sign() < 0 {
		return Uint128{}, errors.New("negative value")
	}
	if v.BitLen() > 128 {
		return Uint128{}, errors.New("value exceeds 128 bits")
	}

	buf := make([]byte, 16)
	v.FillBytes(buf)
	return Uint128{
		Hi: binary.BigEndian.Uint64(buf[:8]),
		Lo: binary.BigEndian.Uint64(buf[8:]),
	}, nil
}

func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

// String returns the decimal representation.
func (u Uint128) String() string {
	return u.Big().String()
}

func PutUint128(dst []byte, v Uint128, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v.Lo)
	binary.LittleEndian.PutUint64(dst[*offset+8:], v.Hi)
	*offset += 16
}

func GetUint128(src []byte, dst *Uint128, offset *int) {
	dst.Lo = binary.LittleEndian.Uint64(src[*offset:])
	dst.Hi = binary.LittleEndian.Uint64(src[*offset+8:])
	*offset += 16
}

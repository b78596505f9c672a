package binary

import (
	"crypto/ed25519"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminators(t *testing.T) {
	// sha256("global:initialize")[:8], the tag every Anchor template starts with
	assert.Equal(t, "afaf6d1f0d989bed", hex.EncodeToString(InstructionDiscriminator("initialize")))
	assert.Len(t, AccountDiscriminator("Pool"), DiscriminatorSize)
	assert.NotEqual(t, InstructionDiscriminator("play_game"), AccountDiscriminator("play_game"))
}

func TestVariableLengthRoundTrip(t *testing.T) {
	bet := []uint32{20000, 0, 0}
	data := make([]byte, StringSize("seed")+Uint32VecSize(bet)+1)

	var offset int
	PutString(data, "seed", &offset)
	PutUint32Vec(data, bet, &offset)
	PutBool(data, true, &offset)
	require.Equal(t, len(data), offset)

	assert.Equal(t, []byte{4, 0, 0, 0, 's', 'e', 'e', 'd'}, data[:8])

	offset = 0
	var seed string
	var decodedBet []uint32
	var flag bool
	require.NoError(t, GetString(data, &seed, &offset))
	require.NoError(t, GetUint32Vec(data, &decodedBet, &offset))
	GetBool(data, &flag, &offset)

	assert.Equal(t, "seed", seed)
	assert.Equal(t, bet, decodedBet)
	assert.True(t, flag)
}

func TestGetVecLen_Truncated(t *testing.T) {
	var offset int
	_, err := GetVecLen([]byte{1, 0}, 1, &offset)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	offset = 0
	var s string
	assert.Error(t, GetString([]byte{10, 0, 0, 0, 'a'}, &s, &offset))

	offset = 0
	var v []uint32
	assert.Error(t, GetUint32Vec([]byte{0xff, 0xff, 0xff, 0xff}, &v, &offset))
}

func TestFixedWidth(t *testing.T) {
	key := make([]byte, ed25519.PublicKeySize)
	key[0] = 9

	data := make([]byte, 32+8+4+2+1)
	var offset int
	PutKey32(data, key, &offset)
	PutUint64(data, 1<<40, &offset)
	PutUint32(data, 7, &offset)
	PutUint16(data, 3, &offset)
	PutUint8(data, 1, &offset)
	require.Equal(t, len(data), offset)

	offset = 0
	var decodedKey ed25519.PublicKey
	var u64 uint64
	var u32 uint32
	var u16 uint16
	var u8 uint8
	GetKey32(data, &decodedKey, &offset)
	GetUint64(data, &u64, &offset)
	GetUint32(data, &u32, &offset)
	GetUint16(data, &u16, &offset)
	GetUint8(data, &u8, &offset)

	assert.EqualValues(t, key, decodedKey)
	assert.EqualValues(t, 1<<40, u64)
	assert.EqualValues(t, 7, u32)
	assert.EqualValues(t, 3, u16)
	assert.EqualValues(t, 1, u8)
}

func TestUint128(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	u, err := Uint128FromBig(max)
	require.NoError(t, err)
	assert.Equal(t, max.String(), u.String())

	data := make([]byte, 16)
	var offset int
	PutUint128(data, NewUint128(1), &offset)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, data)

	offset = 0
	var decoded Uint128
	GetUint128(data, &decoded, &offset)
	assert.Equal(t, "1", decoded.String())

	_, err = Uint128FromBig(new(big.Int).Add(max, big.NewInt(1)))
	assert.Error(t, err)
	_, err = Uint128FromBig(big.NewInt(-1))
	assert.Error(t, err)
}

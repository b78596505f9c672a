package compute_budget

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramKey(t *testing.T) {
	assert.Equal(t, "ComputeBudget111111111111111111111111111111", base58.Encode(ProgramKey))
}

func TestSetComputeUnitLimit(t *testing.T) {
	ix := SetComputeUnitLimit(115000)
	assert.Equal(t, []byte{0x02, 0x38, 0xc1, 0x01, 0x00}, ix.Data)
	assert.Empty(t, ix.Accounts)

	limit, err := ParseSetComputeUnitLimitIxnData(ix.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 115000, limit)

	_, err = ParseSetComputeUnitLimitIxnData(ix.Data[:4])
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = ParseSetComputeUnitLimitIxnData([]byte{0x03, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidInstruction)
}

func TestSetComputeUnitPrice(t *testing.T) {
	ix := SetComputeUnitPrice(1_000)
	require.Len(t, ix.Data, 9)
	assert.EqualValues(t, 0x03, ix.Data[0])

	price, err := ParseSetComputeUnitPriceIxnData(ix.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 1_000, price)
}

func TestDecoderTable(t *testing.T) {
	decoded := DecoderTable.DecodeInstruction(SetComputeUnitLimit(230000))
	require.NotNil(t, decoded)
	assert.Equal(t, "set_compute_unit_limit", decoded.Name)
	assert.Equal(t, map[string]interface{}{"units": int64(230000)}, decoded.Data)

	decoded = DecoderTable.DecodeInstruction(SetComputeUnitPrice(5))
	require.NotNil(t, decoded)
	assert.Equal(t, map[string]interface{}{"micro_lamports": "5"}, decoded.Data)

	assert.Nil(t, DecoderTable.Decode(ProgramKey, nil, []byte{0x02, 1}))
}

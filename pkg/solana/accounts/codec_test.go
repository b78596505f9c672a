package accounts

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

var counterShape = Shape[uint64]{
	Name:          "Counter",
	Discriminator: []byte{1, 2, 3, 4, 5, 6, 7, 8},
	Size:          16,
	Decode: func(data []byte) (uint64, error) {
		if data[8] == 0xff {
			panic("corrupt counter")
		}
		return binary.LittleEndian.Uint64(data[8:]), nil
	},
}

func counterData(v uint64) []byte {
	data := make([]byte, 16)
	copy(data, counterShape.Discriminator)
	binary.LittleEndian.PutUint64(data[8:], v)
	return data
}

func key(b byte) ed25519.PublicKey {
	k := make(ed25519.PublicKey, ed25519.PublicKeySize)
	k[0] = b
	return k
}

type fakeReader struct {
	program  ed25519.PublicKey
	offset   uint
	filter   []byte
	accounts []solana.KeyedAccount
	info     map[string]solana.AccountInfo
	err      error
}

func (f *fakeReader) GetProgramAccounts(program ed25519.PublicKey, offset uint, filter []byte) ([]solana.KeyedAccount, error) {
	f.program, f.offset, f.filter = program, offset, filter
	return f.accounts, f.err
}

func (f *fakeReader) GetAccountInfo(address ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	if f.err != nil {
		return solana.AccountInfo{}, f.err
	}
	info, ok := f.info[string(address)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func TestDecode(t *testing.T) {
	v, err := Decode(counterShape, counterData(42))
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)

	wrong := counterData(42)
	wrong[0] = 9
	_, err = Decode(counterShape, wrong)
	assert.ErrorIs(t, err, ErrDiscriminatorMismatch)

	_, err = Decode(counterShape, counterData(42)[:12])
	assert.ErrorIs(t, err, ErrAccountTooSmall)

	_, err = Decode(counterShape, nil)
	assert.ErrorIs(t, err, ErrDiscriminatorMismatch)

	assert.Equal(t, counterShape.Discriminator, DiscriminatorOf(counterShape))
}

func TestDecodeBatch_Isolation(t *testing.T) {
	truncated := counterData(2)[:10]
	panicking := counterData(0)
	panicking[8] = 0xff

	raw := []solana.KeyedAccount{
		{PublicKey: key(1), Account: solana.AccountInfo{Data: counterData(1)}},
		{PublicKey: key(2), Account: solana.AccountInfo{Data: truncated}},
		{PublicKey: key(3), Account: solana.AccountInfo{Data: counterData(3)}},
		{PublicKey: key(4), Account: solana.AccountInfo{Data: panicking}},
	}

	var decoded []Keyed[uint64]
	require.NotPanics(t, func() {
		decoded = DecodeBatch(counterShape, raw)
	})

	require.Len(t, decoded, 2)
	assert.Equal(t, key(1), decoded[0].PublicKey)
	assert.EqualValues(t, 1, decoded[0].Account)
	assert.Equal(t, key(3), decoded[1].PublicKey)
	assert.EqualValues(t, 3, decoded[1].Account)
}

func TestFetchAll(t *testing.T) {
	reader := &fakeReader{
		accounts: []solana.KeyedAccount{
			{PublicKey: key(1), Account: solana.AccountInfo{Data: counterData(1)}},
			{PublicKey: key(2), Account: solana.AccountInfo{Data: []byte{1, 2}}},
			{PublicKey: key(3), Account: solana.AccountInfo{Data: counterData(3)}},
		},
	}

	decoded, err := FetchAll(reader, key(9), counterShape)
	require.NoError(t, err)
	assert.Len(t, decoded, 2)
	assert.Equal(t, key(9), reader.program)
	assert.EqualValues(t, 0, reader.offset)
	assert.Equal(t, counterShape.Discriminator, reader.filter)

	reader.err = errors.New("unavailable")
	_, err = FetchAll(reader, key(9), counterShape)
	assert.Error(t, err)
}

func TestFetchAll_CorruptTransportEntry(t *testing.T) {
	entry := func(k ed25519.PublicKey, data string) map[string]interface{} {
		return map[string]interface{}{
			"pubkey": base58.Encode(k),
			"account": map[string]interface{}{
				"lamports":   1,
				"owner":      base58.Encode(key(9)),
				"data":       []string{data, "base64"},
				"executable": false,
			},
		}
	}
	good := func(v uint64) string {
		return base64.StdEncoding.EncodeToString(counterData(v))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": []interface{}{
				entry(key(1), good(1)),
				entry(key(2), good(2)[:5]),
				entry(key(3), good(3)),
			},
		}))
	}))
	defer server.Close()

	decoded, err := FetchAll(solana.New(server.URL), key(9), counterShape)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, key(1), decoded[0].PublicKey)
	assert.EqualValues(t, 1, decoded[0].Account)
	assert.Equal(t, key(3), decoded[1].PublicKey)
	assert.EqualValues(t, 3, decoded[1].Account)
}

func TestFetchOne(t *testing.T) {
	reader := &fakeReader{
		info: map[string]solana.AccountInfo{
			string(key(1)): {Data: counterData(7)},
		},
	}

	v, err := FetchOne(reader, key(1), counterShape)
	require.NoError(t, err)
	assert.EqualValues(t, 7, v)

	_, err = FetchOne(reader, key(2), counterShape)
	assert.True(t, solana.IsResolutionError(err))
	assert.ErrorIs(t, err, solana.ErrNoAccountInfo)

	reader.err = errors.New("unavailable")
	_, err = FetchOne(reader, key(1), counterShape)
	assert.True(t, solana.IsResolutionError(err))
}

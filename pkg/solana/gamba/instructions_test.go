package gamba

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
	"github.com/gamba-labs/gamba-go/pkg/testutil"
)

type fakeReader struct {
	accounts   map[string][]byte
	balances   map[string]uint64
	balanceErr error

	accountCalls int
	balanceCalls int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		accounts: make(map[string][]byte),
		balances: make(map[string]uint64),
	}
}

func (r *fakeReader) GetAccountInfo(key ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	r.accountCalls++
	data, ok := r.accounts[string(key)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return solana.AccountInfo{Data: data, Owner: PROGRAM_ID}, nil
}

func (r *fakeReader) GetTokenAccountBalance(key ed25519.PublicKey) (uint64, uint64, error) {
	r.balanceCalls++
	if r.balanceErr != nil {
		return 0, 0, r.balanceErr
	}
	balance, ok := r.balances[string(key)]
	if !ok {
		return 0, 0, solana.ErrNoBalance
	}
	return balance, 1, nil
}

func accountKeys(ix solana.Instruction) []string {
	res := make([]string, len(ix.Accounts))
	for i, a := range ix.Accounts {
		res[i] = base58.Encode(a.PublicKey)
	}
	return res
}

func TestInstructionDiscriminators(t *testing.T) {
	assert.Equal(t, "2558cf552a907ac5", hex.EncodeToString(PlayGameInstructionDiscriminator))
}

func TestBuildPlayGame_NativeDefaults(t *testing.T) {
	user := testutil.FilledKey(7)
	reader := newFakeReader()

	ix, err := BuildPlayGame(reader, &PlayGameParams{
		User:  user,
		Wager: 1_000_000,
		Bet:   []uint32{2, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, PROGRAM_ID, ed25519.PublicKey(ix.Program))
	require.Len(t, ix.Accounts, 14)

	keys := accountKeys(ix)
	assert.Equal(t, "US517G5965aydkZ46HS38QLi7UQiSojurfbQfKCELFx", keys[0])
	assert.Equal(t, "FW12sdEGPMsskgrUJPrD6zgaHgCMa2a2B4rbfGJ5uTrN", keys[1])
	assert.Equal(t, "FLkesrR8Ka6idapQ5bnjsBiPoeK38MU46E9vNRGnqZq8", keys[2])
	assert.Equal(t, "9TnwU39QnqR4YnutgdMR5u3LrXnHJHHi97kv4rxZZypi", keys[3])
	assert.Equal(t, "B5AHxwZUPSRArRFT3cW658MyBkvqHcCdcuYaJHS57WYi", keys[4])
	assert.Equal(t, base58.Encode(token.NativeMint), keys[5])
	assert.Equal(t, "Coz3LBGDD5czMN8CroEdxrDykE9CSnXBMyj7SZMwh82z", keys[8])

	// The creator defaults to the user.
	assert.Equal(t, keys[0], keys[9])
	assert.Equal(t, keys[8], keys[10])

	assert.Equal(t, solana.RoleWritableSigner, ix.Accounts[0].Role())
	assert.Equal(t, solana.RoleReadonly, ix.Accounts[3].Role())
	assert.Equal(t, solana.RoleWritable, ix.Accounts[4].Role())

	// No bonus balance was found.
	assert.Equal(t, 1, reader.balanceCalls)
	assert.Zero(t, reader.accountCalls)
}

func TestBuildPlayGame_BonusAccounts(t *testing.T) {
	user := testutil.FilledKey(7)
	bonusMint, err := base58.Decode("6yqKmNtkZvckgCmVV3HAXAUo3n494q3AegvMMYBBaGu7")
	require.NoError(t, err)
	userBonusAta, err := token.DeriveAssociatedAccount(user, bonusMint)
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		balance  *uint64
		err      error
		expected int
	}{
		{name: "positive balance", balance: uint64Ptr(5), expected: 16},
		{name: "zero balance", balance: uint64Ptr(0), expected: 14},
		{name: "missing account", expected: 14},
		{name: "transport failure", err: errors.New("rpc unavailable"), expected: 14},
	} {
		t.Run(tc.name, func(t *testing.T) {
			reader := newFakeReader()
			reader.balanceErr = tc.err
			if tc.balance != nil {
				reader.balances[string(userBonusAta)] = *tc.balance
			}

			ix, err := BuildPlayGame(reader, &PlayGameParams{User: user, Bet: []uint32{2, 0}})
			require.NoError(t, err)
			require.Len(t, ix.Accounts, tc.expected)

			if tc.expected == 16 {
				assert.Equal(t, userBonusAta, ix.Accounts[14].PublicKey)
				assert.True(t, ix.Accounts[14].IsWritable)
				assert.True(t, ix.Accounts[15].IsWritable)
			}
		})
	}
}

func TestBuildPlayGame_NoReader(t *testing.T) {
	ix, err := BuildPlayGame(nil, &PlayGameParams{User: testutil.FilledKey(7), Bet: []uint32{1}})
	require.NoError(t, err)
	assert.Len(t, ix.Accounts, 14)
}

func TestBuildPlayGame_ExplicitPool(t *testing.T) {
	user := testutil.FilledKey(7)
	mint := testutil.FilledKey(9)
	poolKey := testutil.FilledKey(8)

	pool := PoolAccount{PoolAuthority: testutil.FilledKey(1), UnderlyingTokenMint: mint, LookupAddress: testutil.FilledKey(2)}

	reader := newFakeReader()
	reader.accounts[string(poolKey)] = pool.Marshal()

	ix, err := BuildPlayGame(reader, &PlayGameParams{User: user, Bet: []uint32{1}, Pool: poolKey})
	require.NoError(t, err)

	assert.Equal(t, 1, reader.accountCalls)
	assert.Equal(t, poolKey, ix.Accounts[4].PublicKey)
	assert.Equal(t, mint, ix.Accounts[5].PublicKey)

	// An explicit mint skips the pool lookup.
	reader = newFakeReader()
	ix, err = BuildPlayGame(reader, &PlayGameParams{User: user, Bet: []uint32{1}, Pool: poolKey, Mint: mint})
	require.NoError(t, err)
	assert.Zero(t, reader.accountCalls)
	assert.Equal(t, mint, ix.Accounts[5].PublicKey)

	// A pool that cannot be read fails resolution.
	_, err = BuildPlayGame(newFakeReader(), &PlayGameParams{User: user, Bet: []uint32{1}, Pool: poolKey})
	assert.True(t, solana.IsResolutionError(err))
}

func TestBuildPlayGame_Validation(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params *PlayGameParams
	}{
		{name: "missing user", params: &PlayGameParams{Bet: []uint32{1}}},
		{name: "short user", params: &PlayGameParams{User: testutil.FilledKey(1)[:31], Bet: []uint32{1}}},
		{name: "missing bet", params: &PlayGameParams{User: testutil.FilledKey(1)}},
		{name: "short mint", params: &PlayGameParams{User: testutil.FilledKey(1), Bet: []uint32{1}, Mint: testutil.FilledKey(2)[:5]}},
		{name: "short pool authority", params: &PlayGameParams{User: testutil.FilledKey(1), Bet: []uint32{1}, PoolAuthority: testutil.FilledKey(2)[:31]}},
		{name: "short pool", params: &PlayGameParams{User: testutil.FilledKey(1), Bet: []uint32{1}, Mint: testutil.FilledKey(2), Pool: testutil.FilledKey(3)[:8]}},
		{name: "short creator", params: &PlayGameParams{User: testutil.FilledKey(1), Bet: []uint32{1}, Creator: testutil.FilledKey(4)[:1]}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			reader := newFakeReader()

			_, err := BuildPlayGame(reader, tc.params)
			assert.True(t, solana.IsValidationError(err))
			assert.Zero(t, reader.accountCalls)
			assert.Zero(t, reader.balanceCalls)
		})
	}

	_, err := BuildPlayGame(nil, &PlayGameParams{User: testutil.FilledKey(1), Bet: []uint32{1}, Pool: testutil.FilledKey(2)})
	assert.True(t, solana.IsValidationError(err))
}

func TestPlayGame_DecodeRoundTrip(t *testing.T) {
	ix, err := BuildPlayGame(nil, &PlayGameParams{
		User:          testutil.FilledKey(7),
		Wager:         1_000_000,
		Bet:           []uint32{2, 0},
		ClientSeed:    "seed",
		CreatorFeeBps: 100,
		JackpotFeeBps: 10,
		Metadata:      "0:flip",
	})
	require.NoError(t, err)

	decoded := DecoderTable.DecodeInstruction(ix)
	require.NotNil(t, decoded)
	assert.Equal(t, "play_game", decoded.Name)
	assert.Equal(t, "GambaXcmhJg1vgPm1Gn6mnMKGyyR3X2eSmF6yeU6XWtT", decoded.Program)
	assert.Equal(t, "US517G5965aydkZ46HS38QLi7UQiSojurfbQfKCELFx", decoded.Accounts["user"])
	assert.Equal(t, "B5AHxwZUPSRArRFT3cW658MyBkvqHcCdcuYaJHS57WYi", decoded.Accounts["pool"])

	data, ok := decoded.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1000000", data["wager"])
	assert.Equal(t, []interface{}{int64(2), int64(0)}, data["bet"])
	assert.Equal(t, "seed", data["client_seed"])
	assert.Equal(t, int64(100), data["creator_fee_bps"])
	assert.Equal(t, "0:flip", data["metadata"])

	// Truncated data is not decodable.
	ix.Data = ix.Data[:len(ix.Data)-3]
	assert.Nil(t, DecoderTable.DecodeInstruction(ix))
}

func TestBuilders_DecodeRoundTrip(t *testing.T) {
	user := testutil.FilledKey(7)

	build := func(ix solana.Instruction, err error) solana.Instruction {
		require.NoError(t, err)
		return ix
	}

	for _, tc := range []struct {
		name     string
		ix       solana.Instruction
		accounts int
		data     map[string]interface{}
	}{
		{
			name:     "player_initialize",
			ix:       build(BuildPlayerInitialize(&PlayerInitializeParams{User: user})),
			accounts: 4,
			data:     map[string]interface{}{},
		},
		{
			name:     "player_close",
			ix:       build(BuildPlayerClose(&PlayerCloseParams{User: user})),
			accounts: 3,
			data:     map[string]interface{}{},
		},
		{
			name:     "pool_initialize",
			ix:       build(BuildPoolInitialize(&PoolInitializeParams{Initializer: user, Mint: token.NativeMint})),
			accounts: 16,
			data: map[string]interface{}{
				"pool_authority": base58.Encode(PublicPoolAuthority),
				"lookup_address": base58.Encode(PublicPoolAuthority),
			},
		},
		{
			name:     "pool_deposit",
			ix:       build(BuildPoolDeposit(&PoolDepositParams{User: user, Amount: 500})),
			accounts: 11,
			data:     map[string]interface{}{"amount": "500"},
		},
		{
			name:     "pool_withdraw",
			ix:       build(BuildPoolWithdraw(&PoolWithdrawParams{User: user, LpAmount: 7})),
			accounts: 11,
			data:     map[string]interface{}{"lp_amount": "7"},
		},
		{
			name:     "pool_mint_bonus_tokens",
			ix:       build(BuildPoolMintBonusTokens(&PoolMintBonusTokensParams{User: user, Amount: 9})),
			accounts: 11,
			data:     map[string]interface{}{"amount": "9"},
		},
		{
			name:     "distribute_fees",
			ix:       build(BuildDistributeFees(&DistributeFeesParams{Signer: user, DistributionRecipient: testutil.FilledKey(3), NativeSol: true})),
			accounts: 9,
			data:     map[string]interface{}{"native_sol": true},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Len(t, tc.ix.Accounts, tc.accounts)

			decoded := DecoderTable.DecodeInstruction(tc.ix)
			require.NotNil(t, decoded)
			assert.Equal(t, tc.name, decoded.Name)
			assert.Equal(t, tc.data, decoded.Data)
			assert.Len(t, decoded.Accounts, tc.accounts)
		})
	}
}

func TestBuilders_MalformedOptionalKeys(t *testing.T) {
	user := testutil.FilledKey(7)
	short := testutil.FilledKey(2)[:5]

	for _, tc := range []struct {
		name  string
		build func() (solana.Instruction, error)
	}{
		{
			name: "pool_initialize authority",
			build: func() (solana.Instruction, error) {
				return BuildPoolInitialize(&PoolInitializeParams{Initializer: user, Mint: token.NativeMint, PoolAuthority: short})
			},
		},
		{
			name: "pool_initialize lookup address",
			build: func() (solana.Instruction, error) {
				return BuildPoolInitialize(&PoolInitializeParams{Initializer: user, Mint: token.NativeMint, LookupAddress: short})
			},
		},
		{
			name: "pool_deposit mint",
			build: func() (solana.Instruction, error) {
				return BuildPoolDeposit(&PoolDepositParams{User: user, Amount: 1, Mint: short})
			},
		},
		{
			name: "pool_withdraw authority",
			build: func() (solana.Instruction, error) {
				return BuildPoolWithdraw(&PoolWithdrawParams{User: user, LpAmount: 1, PoolAuthority: short})
			},
		},
		{
			name: "pool_mint_bonus_tokens pool",
			build: func() (solana.Instruction, error) {
				return BuildPoolMintBonusTokens(&PoolMintBonusTokensParams{User: user, Amount: 1, Pool: short})
			},
		},
		{
			name: "distribute_fees mint",
			build: func() (solana.Instruction, error) {
				return BuildDistributeFees(&DistributeFeesParams{Signer: user, DistributionRecipient: testutil.FilledKey(3), Mint: short})
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			assert.True(t, solana.IsValidationError(err))
		})
	}
}

func TestDecoderTable_OtherProgram(t *testing.T) {
	ix, err := BuildPlayerInitialize(&PlayerInitializeParams{User: testutil.FilledKey(7)})
	require.NoError(t, err)

	assert.Nil(t, DecoderTable.Decode(token.ProgramKey, nil, ix.Data))
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

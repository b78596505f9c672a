package sdk

import (
	"context"
	"crypto/ed25519"
	"sync"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamba-labs/gamba-go/pkg/pointer"
	"github.com/gamba-labs/gamba-go/pkg/smartsend"
	"github.com/gamba-labs/gamba-go/pkg/solana"
	compute_budget "github.com/gamba-labs/gamba-go/pkg/solana/computebudget"
	"github.com/gamba-labs/gamba-go/pkg/solana/gamba"
	"github.com/gamba-labs/gamba-go/pkg/solana/multiplayer"
	"github.com/gamba-labs/gamba-go/pkg/solana/system"
	"github.com/gamba-labs/gamba-go/pkg/testutil"
)

type fakeClient struct {
	solana.Client

	sync.Mutex
	signatures     []*solana.TransactionSignature
	transactions   map[solana.Signature]solana.ConfirmedTransaction
	notFoundOnce   map[solana.Signature]bool
	transactionErr error
	programAccts   []solana.KeyedAccount
	program        ed25519.PublicKey

	inFlight    int
	maxInFlight int
	fetches     int

	submitted []solana.Transaction
}

func (c *fakeClient) GetSignaturesForAddress(ed25519.PublicKey, solana.Commitment, uint64, string, string) ([]*solana.TransactionSignature, error) {
	return c.signatures, nil
}

func (c *fakeClient) GetTransaction(sig solana.Signature, _ solana.Commitment) (solana.ConfirmedTransaction, error) {
	c.Lock()
	c.fetches++
	c.inFlight++
	if c.inFlight > c.maxInFlight {
		c.maxInFlight = c.inFlight
	}
	notFound := c.notFoundOnce[sig]
	delete(c.notFoundOnce, sig)
	c.Unlock()

	// Earlier signatures finish last.
	time.Sleep(time.Duration(10-sig[0]) * time.Millisecond)

	c.Lock()
	defer c.Unlock()
	c.inFlight--

	if notFound {
		return solana.ConfirmedTransaction{}, solana.ErrSignatureNotFound
	}
	if c.transactionErr != nil && sig[0] == 3 {
		return solana.ConfirmedTransaction{}, c.transactionErr
	}
	return c.transactions[sig], nil
}

func (c *fakeClient) GetProgramAccounts(program ed25519.PublicKey, _ uint, _ []byte) ([]solana.KeyedAccount, error) {
	c.program = program
	return c.programAccts, nil
}

func (c *fakeClient) GetLatestBlockhash() (solana.Blockhash, error) {
	return solana.Blockhash{1}, nil
}

func (c *fakeClient) SimulateTransaction(solana.Transaction, solana.Commitment) (solana.SimulationResult, error) {
	return solana.SimulationResult{UnitsConsumed: pointer.To[uint64](50_000)}, nil
}

func (c *fakeClient) SubmitTransaction(txn solana.Transaction, _ solana.SubmitOptions) (solana.Signature, error) {
	c.submitted = append(c.submitted, txn)
	var sig solana.Signature
	copy(sig[:], txn.Signature())
	return sig, nil
}

func mustDecodeBase58(t *testing.T, encoded string) ed25519.PublicKey {
	decoded, err := base58.Decode(encoded)
	require.NoError(t, err)
	return decoded
}

func transferTransaction(sig solana.Signature, from, to ed25519.PublicKey) solana.ConfirmedTransaction {
	ix := system.Transfer(from, to, 1000)
	return solana.ConfirmedTransaction{
		Slot:        uint64(sig[0]),
		Signature:   sig,
		AccountKeys: []ed25519.PublicKey{from, to, system.ProgramKey},
		Instructions: []solana.CompiledInstruction{
			{ProgramIndex: 2, Accounts: []byte{0, 1}, Data: ix.Data},
		},
	}
}

func setup(t *testing.T, concurrency uint64) (*fakeClient, *Provider) {
	client := &fakeClient{
		transactions: make(map[solana.Signature]solana.ConfirmedTransaction),
		notFoundOnce: make(map[solana.Signature]bool),
	}
	provider := NewProvider(
		client,
		nil,
		withManualTestOverrides(&testOverrides{historyConcurrency: concurrency}),
		smartsend.WithEnvConfigs(),
	)
	return client, provider
}

func TestRecentActivity_PreservesSignatureOrder(t *testing.T) {
	client, provider := setup(t, 2)

	for i := byte(1); i <= 6; i++ {
		sig := solana.Signature{i}
		client.signatures = append(client.signatures, &solana.TransactionSignature{Signature: sig})
		client.transactions[sig] = transferTransaction(sig, testutil.FilledKey(i), testutil.FilledKey(100))
	}

	client.signatures[0].Memo = pointer.To("first")

	activity, err := provider.RecentActivity(context.Background(), testutil.FilledKey(100), 6)
	require.NoError(t, err)
	require.Len(t, activity, 6)
	require.NotNil(t, activity[0].Memo)
	assert.Equal(t, "first", *activity[0].Memo)
	assert.Nil(t, activity[1].Memo)

	for i, a := range activity {
		assert.EqualValues(t, i+1, a.Slot)
		require.Len(t, a.Instructions, 1)
		assert.Equal(t, "system", a.Instructions[0].Program)
		assert.Equal(t, "transfer", a.Instructions[0].Name)
	}

	assert.LessOrEqual(t, client.maxInFlight, 2)
	assert.Equal(t, 6, client.fetches)
}

func TestRecentActivity_RetriesMissingTransaction(t *testing.T) {
	client, provider := setup(t, 4)

	sig := solana.Signature{1}
	client.signatures = []*solana.TransactionSignature{{Signature: sig}}
	client.transactions[sig] = transferTransaction(sig, testutil.FilledKey(1), testutil.FilledKey(2))
	client.notFoundOnce[sig] = true

	activity, err := provider.RecentActivity(context.Background(), testutil.FilledKey(2), 1)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, 2, client.fetches)
}

func TestRecentActivity_FetchError(t *testing.T) {
	client, provider := setup(t, 4)

	for i := byte(1); i <= 4; i++ {
		sig := solana.Signature{i}
		client.signatures = append(client.signatures, &solana.TransactionSignature{Signature: sig})
		client.transactions[sig] = transferTransaction(sig, testutil.FilledKey(i), testutil.FilledKey(100))
	}
	client.transactionErr = errors.New("node unavailable")

	_, err := provider.RecentActivity(context.Background(), testutil.FilledKey(100), 4)
	assert.Error(t, err)
}

func TestRecentActivity_InvalidAddress(t *testing.T) {
	client, provider := setup(t, 4)

	_, err := provider.RecentActivity(context.Background(), nil, 10)
	assert.True(t, solana.IsValidationError(err))
	assert.Zero(t, client.fetches)
}

func TestRecentActivity_UnknownInstructionsAreEmpty(t *testing.T) {
	client, provider := setup(t, 1)

	sig := solana.Signature{1}
	client.signatures = []*solana.TransactionSignature{{Signature: sig}}
	client.transactions[sig] = solana.ConfirmedTransaction{
		Signature:    sig,
		AccountKeys:  []ed25519.PublicKey{testutil.FilledKey(1), testutil.FilledKey(9)},
		Instructions: []solana.CompiledInstruction{{ProgramIndex: 1, Data: []byte{1, 2, 3}}},
	}

	activity, err := provider.RecentActivity(context.Background(), testutil.FilledKey(1), 1)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.NotNil(t, activity[0].Instructions)
	assert.Empty(t, activity[0].Instructions)
}

func TestTransaction_Cached(t *testing.T) {
	client := &fakeClient{transactions: make(map[solana.Signature]solana.ConfirmedTransaction)}
	provider := NewProvider(
		client,
		nil,
		withManualTestOverrides(&testOverrides{historyConcurrency: 1, transactionCacheSize: 16}),
		smartsend.WithEnvConfigs(),
	)

	sig := solana.Signature{1}
	client.transactions[sig] = transferTransaction(sig, testutil.FilledKey(1), testutil.FilledKey(2))

	first, err := provider.Transaction(context.Background(), sig)
	require.NoError(t, err)
	second, err := provider.Transaction(context.Background(), sig)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.fetches)

	client.signatures = []*solana.TransactionSignature{{Signature: sig}}
	activity, err := provider.RecentActivity(context.Background(), testutil.FilledKey(2), 1)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, first, activity[0])
	assert.Equal(t, 1, client.fetches)
}

func TestPools(t *testing.T) {
	client, provider := setup(t, 1)

	pool := &gamba.PoolAccount{
		PoolAuthority:       gamba.PublicPoolAuthority,
		UnderlyingTokenMint: testutil.FilledKey(4),
		LookupAddress:       testutil.FilledKey(5),
		Plays:               7,
	}
	client.programAccts = []solana.KeyedAccount{
		{PublicKey: testutil.FilledKey(1), Account: solana.AccountInfo{Data: pool.Marshal()}},
		{PublicKey: testutil.FilledKey(2), Account: solana.AccountInfo{Data: []byte{1, 2, 3}}},
	}

	pools, err := provider.Pools(context.Background())
	require.NoError(t, err)
	require.Len(t, pools, 1)
	assert.EqualValues(t, testutil.FilledKey(1), pools[0].PublicKey)
	assert.EqualValues(t, 7, pools[0].Account.Plays)
	assert.EqualValues(t, gamba.PROGRAM_ID, client.program)
}

func TestPlayGame_WithoutSigner(t *testing.T) {
	client, provider := setup(t, 1)

	_, err := provider.PlayGame(context.Background(), gamba.PlayGameParams{Bet: []uint32{2, 0}})
	assert.Equal(t, solana.ErrWalletNotConnected, err)
	assert.Empty(t, client.submitted)
}

func TestCreateGame_AssignsSeed(t *testing.T) {
	client := &fakeClient{}
	signer := testutil.NewSigner(t)

	provider := NewProvider(
		client,
		signer,
		withManualTestOverrides(&testOverrides{historyConcurrency: 1}),
		smartsend.WithEnvConfigs(),
	)

	game, _, err := provider.CreateGame(context.Background(), multiplayer.CreateGameParams{MaxPlayers: 2, Wager: 1000})
	require.NoError(t, err)
	require.Len(t, client.submitted, 1)

	instructions, err := client.submitted[0].Message.DecompileInstructions()
	require.NoError(t, err)
	require.Len(t, instructions, 2)
	assert.EqualValues(t, compute_budget.ProgramKey, instructions[0].Program)
	assert.EqualValues(t, multiplayer.PROGRAM_ID, instructions[1].Program)

	decoded := multiplayer.DecoderTable.DecodeInstruction(instructions[1])
	require.NotNil(t, decoded)
	assert.Equal(t, "create_game", decoded.Name)
	assert.EqualValues(t, game, mustDecodeBase58(t, decoded.Accounts["game"]))
	assert.EqualValues(t, signer.PublicKey(), mustDecodeBase58(t, decoded.Accounts["game_maker"]))
}

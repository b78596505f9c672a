// Package sdk composes the RPC client, transaction pipeline and instruction
// decoders into a single Provider.
package sdk

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	xrate "golang.org/x/time/rate"

	"github.com/gamba-labs/gamba-go/pkg/cache"
	"github.com/gamba-labs/gamba-go/pkg/metrics"
	"github.com/gamba-labs/gamba-go/pkg/pointer"
	"github.com/gamba-labs/gamba-go/pkg/rate"
	"github.com/gamba-labs/gamba-go/pkg/retry"
	"github.com/gamba-labs/gamba-go/pkg/retry/backoff"
	"github.com/gamba-labs/gamba-go/pkg/smartsend"
	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/accounts"
	compute_budget "github.com/gamba-labs/gamba-go/pkg/solana/computebudget"
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
	"github.com/gamba-labs/gamba-go/pkg/solana/gamba"
	"github.com/gamba-labs/gamba-go/pkg/solana/multiplayer"
	"github.com/gamba-labs/gamba-go/pkg/solana/referral"
	"github.com/gamba-labs/gamba-go/pkg/solana/staking"
	"github.com/gamba-labs/gamba-go/pkg/solana/system"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	metricsStructName                = "sdk.provider"
	recentActivityDurationMetricName = "Sdk.RecentActivityDuration"

	maxTransactionFetchAttempts = 3
)

// Activity is a transaction touching an address along with its decoded
// instructions.
type Activity struct {
	Signature    string                `json:"signature"`
	Slot         uint64                `json:"slot"`
	BlockTime    *time.Time            `json:"block_time,omitempty"`
	Err          string                `json:"err,omitempty"`
	Memo         *string               `json:"memo,omitempty"`
	Instructions []decoder.Instruction `json:"instructions"`
}

// Provider owns the long lived components built around a single RPC client.
// It is safe for concurrent use.
type Provider struct {
	log      *logrus.Entry
	conf     *conf
	client   solana.Client
	signer   solana.Signer
	sender   *smartsend.Sender
	seeds    *multiplayer.SeedGenerator
	registry *decoder.Registry

	// Confirmed transactions never change, so decoded ones are kept by
	// signature.
	transactions *cache.Cache[Activity]
}

// NewClient returns an RPC client for the configured endpoint, rate limited
// when a positive request rate is configured.
func NewClient(ctx context.Context, configProvider ConfigProvider) solana.Client {
	conf := configProvider()

	var limiter rate.Limiter = &rate.NoLimiter{}
	if rps := conf.rpcRequestsPerSecond.Get(ctx); rps > 0 {
		limiter = rate.NewLocalRateLimiter(xrate.Limit(rps))
	}

	return solana.NewWithOptions(conf.rpcEndpoint.Get(ctx), nil, limiter)
}

// NewProvider returns a Provider over client. signer may be nil, in which
// case every send fails with solana.ErrWalletNotConnected.
func NewProvider(
	client solana.Client,
	signer solana.Signer,
	configProvider ConfigProvider,
	senderConfigProvider smartsend.ConfigProvider,
) *Provider {
	registry := decoder.NewRegistry(
		gamba.DecoderTable,
		multiplayer.DecoderTable,
		staking.DecoderTable,
		referral.DecoderTable,
		compute_budget.DecoderTable,
		system.DecoderTable,
		token.DecoderTable,
	)

	conf := configProvider()

	return &Provider{
		log:      logrus.StandardLogger().WithField("type", "sdk/provider"),
		conf:     conf,
		client:   client,
		signer:   signer,
		sender:   smartsend.New(client, signer, senderConfigProvider),
		seeds:    multiplayer.NewSeedGenerator(nil),
		registry: registry,

		transactions: cache.New[Activity]("transactions", int(conf.transactionCacheSize.Get(context.Background()))),
	}
}

func (p *Provider) Client() solana.Client {
	return p.client
}

func (p *Provider) Sender() *smartsend.Sender {
	return p.sender
}

func (p *Provider) Registry() *decoder.Registry {
	return p.registry
}

// PublicKey returns the signer's address, or nil without a signer.
func (p *Provider) PublicKey() ed25519.PublicKey {
	if p.signer == nil {
		return nil
	}
	return p.signer.PublicKey()
}

// PlayGame resolves a play_game instruction for the signer and sends it.
// params.User defaults to the signer.
func (p *Provider) PlayGame(ctx context.Context, params gamba.PlayGameParams) (solana.Signature, error) {
	if len(params.User) == 0 {
		params.User = p.PublicKey()
	}
	if len(params.User) == 0 {
		return solana.Signature{}, solana.ErrWalletNotConnected
	}

	instruction, err := gamba.BuildPlayGame(p.client, &params)
	if err != nil {
		return solana.Signature{}, err
	}
	return p.sender.Send(ctx, []solana.Instruction{instruction})
}

// CreateGame sends a create_game instruction made by the signer. A zero
// params.GameSeed is replaced with the next generated seed, and the game
// address is returned alongside the signature.
func (p *Provider) CreateGame(ctx context.Context, params multiplayer.CreateGameParams) (ed25519.PublicKey, solana.Signature, error) {
	if len(params.GameMaker) == 0 {
		params.GameMaker = p.PublicKey()
	}
	if len(params.GameMaker) == 0 {
		return nil, solana.Signature{}, solana.ErrWalletNotConnected
	}
	if params.GameSeed == 0 {
		params.GameSeed = p.seeds.Next()
	}

	instruction, err := multiplayer.BuildCreateGame(&params)
	if err != nil {
		return nil, solana.Signature{}, err
	}

	game, _, err := multiplayer.GetGameAddress(&multiplayer.GetGameAddressArgs{GameSeed: params.GameSeed})
	if err != nil {
		return nil, solana.Signature{}, err
	}

	sig, err := p.sender.Send(ctx, []solana.Instruction{instruction})
	if err != nil {
		return nil, solana.Signature{}, err
	}
	return game, sig, nil
}

// Pools returns every decodable pool account.
func (p *Provider) Pools(ctx context.Context) ([]accounts.Keyed[gamba.PoolAccount], error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Pools")
	defer tracer.End()

	res, err := accounts.FetchAll(p.client, gamba.PROGRAM_ID, gamba.PoolShape)
	tracer.OnError(err)
	return res, err
}

// MultiplayerGames returns every decodable multiplayer game account.
func (p *Provider) MultiplayerGames(ctx context.Context) ([]accounts.Keyed[multiplayer.GameAccount], error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "MultiplayerGames")
	defer tracer.End()

	res, err := accounts.FetchAll(p.client, multiplayer.PROGRAM_ID, multiplayer.GameShape)
	tracer.OnError(err)
	return res, err
}

// Vaults returns every decodable staking vault account.
func (p *Provider) Vaults(ctx context.Context) ([]accounts.Keyed[staking.VaultAccount], error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Vaults")
	defer tracer.End()

	res, err := accounts.FetchAll(p.client, staking.PROGRAM_ID, staking.VaultShape)
	tracer.OnError(err)
	return res, err
}

// Transaction fetches and decodes a single confirmed transaction.
func (p *Provider) Transaction(ctx context.Context, sig solana.Signature) (*Activity, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Transaction")
	defer tracer.End()

	activity, err := p.activity(ctx, sig)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}
	return activity, nil
}

// RecentActivity returns up to limit of the most recent transactions that
// touched address, newest first. Transactions are fetched concurrently and
// returned in the order the node listed their signatures.
func (p *Provider) RecentActivity(ctx context.Context, address ed25519.PublicKey, limit uint64) ([]*Activity, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "RecentActivity")
	defer tracer.End()

	start := time.Now()
	res, err := p.recentActivity(ctx, address, limit)
	metrics.RecordDuration(ctx, recentActivityDurationMetricName, time.Since(start))
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}

	tracer.AddAttribute("transactions", len(res))
	return res, nil
}

func (p *Provider) recentActivity(ctx context.Context, address ed25519.PublicKey, limit uint64) ([]*Activity, error) {
	log := p.log.WithFields(logrus.Fields{
		"method":  "RecentActivity",
		"address": base58.Encode(address),
	})

	if err := solana.RequireKey("address", address); err != nil {
		return nil, err
	}

	sigs, err := p.client.GetSignaturesForAddress(address, solana.CommitmentConfirmed, limit, "", "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get signatures")
	}

	concurrency := int(p.conf.historyConcurrency.Get(ctx))
	if concurrency < 1 {
		concurrency = 1
	}

	res := make([]*Activity, len(sigs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, sig := range sigs {
		i, sig := i, sig
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			activity, err := p.activity(ctx, sig.Signature)
			if err != nil {
				return errors.Wrapf(err, "failed to get transaction %s", base58.Encode(sig.Signature[:]))
			}

			activity.Memo = pointer.Copy(sig.Memo)
			res[i] = activity
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("failure fetching activity")
		return nil, err
	}

	log.WithField("transactions", len(res)).Debug("fetched activity")
	return res, nil
}

// activity returns the decoded transaction for sig. The returned value may
// share state with the cache and must not be modified.
func (p *Provider) activity(ctx context.Context, sig solana.Signature) (*Activity, error) {
	key := string(sig[:])
	if cached, ok := p.transactions.Retrieve(key); ok {
		return pointer.To(cached), nil
	}

	txn, err := p.fetchTransaction(ctx, sig)
	if err != nil {
		return nil, err
	}

	activity := p.toActivity(txn)
	if err := p.transactions.Insert(key, *activity, 1); err != nil && err != cache.ErrKeyExists {
		p.log.WithError(err).Warn("failure caching transaction")
	}
	return activity, nil
}

// fetchTransaction retries briefly when a freshly listed signature is not
// yet queryable.
func (p *Provider) fetchTransaction(ctx context.Context, sig solana.Signature) (solana.ConfirmedTransaction, error) {
	var txn solana.ConfirmedTransaction
	_, err := retry.RetryContext(
		ctx,
		func() (err error) {
			txn, err = p.client.GetTransaction(sig, solana.CommitmentConfirmed)
			return err
		},
		retry.RetriableErrors(solana.ErrSignatureNotFound),
		retry.Limit(maxTransactionFetchAttempts),
		retry.Backoff(backoff.BinaryExponential(250*time.Millisecond), 2*time.Second),
	)
	return txn, err
}

func (p *Provider) toActivity(txn solana.ConfirmedTransaction) *Activity {
	activity := &Activity{
		Signature:    base58.Encode(txn.Signature[:]),
		Slot:         txn.Slot,
		BlockTime:    pointer.Copy(txn.BlockTime),
		Instructions: p.registry.DecodeTransaction(txn),
	}
	if txn.Err != nil {
		activity.Err = txn.Err.Error()
	}
	if activity.Instructions == nil {
		activity.Instructions = []decoder.Instruction{}
	}
	return activity
}

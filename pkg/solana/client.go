package solana

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/gamba-labs/gamba-go/pkg/pointer"
	"github.com/gamba-labs/gamba-go/pkg/rate"
	"github.com/gamba-labs/gamba-go/pkg/retry"
	"github.com/gamba-labs/gamba-go/pkg/retry/backoff"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005
	rpcInvalidParamsCode = -32602

	rateLimiterKey = "rpc"

	encodingBase64 = "base64"
	encodingJSON   = "json"
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

var (
	CommitmentProcessed = Commitment{Commitment: "processed"}
	CommitmentConfirmed = Commitment{Commitment: "confirmed"}
	CommitmentFinalized = Commitment{Commitment: "finalized"}
)

// ParseCommitment returns the commitment level with the provided name.
func ParseCommitment(name string) (Commitment, error) {
	for _, c := range []Commitment{CommitmentProcessed, CommitmentConfirmed, CommitmentFinalized} {
		if c.Commitment == name {
			return c, nil
		}
	}
	return Commitment{}, errors.Errorf("unknown commitment: %s", name)
}

var (
	ErrNoAccountInfo     = errors.New("no account info")
	ErrSignatureNotFound = errors.New("signature not found")
	ErrNoBalance         = errors.New("no balance")
)

// AccountInfo is the raw state of an on-chain account.
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// KeyedAccount is an account returned alongside its address.
type KeyedAccount struct {
	PublicKey ed25519.PublicKey
	Account   AccountInfo
}

// InnerInstructionGroup is the set of instructions invoked by the top-level
// instruction at Index.
type InnerInstructionGroup struct {
	Index        int
	Instructions []CompiledInstruction
}

// ConfirmedTransaction is a transaction fetched from the ledger along with
// its execution metadata.
type ConfirmedTransaction struct {
	Slot      uint64
	BlockTime *time.Time
	Signature Signature

	// AccountKeys are the static keys followed by the loaded writable and
	// then the loaded readonly addresses.
	AccountKeys       []ed25519.PublicKey
	Instructions      []CompiledInstruction
	InnerInstructions []InnerInstructionGroup
	LogMessages       []string
	Err               *TransactionError
}

type TransactionSignature struct {
	Signature Signature
	Slot      uint64
	BlockTime *time.Time
	Err       *TransactionError
	Memo      *string
}

// SimulationResult is the outcome of a transaction simulation.
type SimulationResult struct {
	// UnitsConsumed is nil when the node did not report consumption.
	UnitsConsumed *uint64
	Logs          []string
	Err           *TransactionError
}

// SubmitOptions controls preflight checks for SubmitTransaction.
type SubmitOptions struct {
	SkipPreflight       bool
	PreflightCommitment Commitment
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	GetBalance(ed25519.PublicKey) (uint64, error)
	GetLatestBlockhash() (Blockhash, error)
	GetProgramAccounts(program ed25519.PublicKey, offset uint, filterValue []byte) ([]KeyedAccount, error)
	GetSignaturesForAddress(owner ed25519.PublicKey, commitment Commitment, limit uint64, before, until string) ([]*TransactionSignature, error)
	GetSlot(Commitment) (uint64, error)
	GetTokenAccountBalance(ed25519.PublicKey) (uint64, uint64, error)
	GetTransaction(Signature, Commitment) (ConfirmedTransaction, error)
	SimulateTransaction(Transaction, Commitment) (SimulationResult, error)
	SubmitTransaction(Transaction, SubmitOptions) (Signature, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

// rpcConfig is the trailing configuration object accepted by most methods.
// Unset fields are omitted from the request.
type rpcConfig struct {
	Commitment          string `json:"commitment,omitempty"`
	PreflightCommitment string `json:"preflightCommitment,omitempty"`
	Encoding            string `json:"encoding,omitempty"`

	SkipPreflight *bool `json:"skipPreflight,omitempty"`
	SigVerify     *bool `json:"sigVerify,omitempty"`

	MaxSupportedTransactionVersion *int `json:"maxSupportedTransactionVersion,omitempty"`

	Filters []rpcFilter `json:"filters,omitempty"`

	Limit  *uint64 `json:"limit,omitempty"`
	Before string  `json:"before,omitempty"`
	Until  string  `json:"until,omitempty"`
}

type rpcFilter struct {
	Memcmp rpcMemcmp `json:"memcmp"`
}

type rpcMemcmp struct {
	Offset uint   `json:"offset"`
	Bytes  string `json:"bytes"`
}

type rpcAccount struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"` // [payload, encoding]
	Executable bool     `json:"executable"`
}

type rpcInstruction struct {
	ProgramIDIndex int    `json:"programIdIndex"`
	Accounts       []int  `json:"accounts"`
	Data           string `json:"data"`
}

type rpcTransaction struct {
	Slot        uint64 `json:"slot"`
	BlockTime   *int64 `json:"blockTime"`
	Transaction struct {
		Message struct {
			AccountKeys  []string         `json:"accountKeys"`
			Instructions []rpcInstruction `json:"instructions"`
		} `json:"message"`
	} `json:"transaction"`
	Meta *struct {
		Err               interface{} `json:"err"`
		LogMessages       []string    `json:"logMessages"`
		InnerInstructions []struct {
			Index        int              `json:"index"`
			Instructions []rpcInstruction `json:"instructions"`
		} `json:"innerInstructions"`
		LoadedAddresses struct {
			Writable []string `json:"writable"`
			Readonly []string `json:"readonly"`
		} `json:"loadedAddresses"`
	} `json:"meta"`
}

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier retry.Retrier
	limiter rate.Limiter
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithOptions(endpoint, nil, &rate.NoLimiter{})
}

// NewWithOptions returns a client configured with the specified RPC options.
// Every request waits on limiter before being sent.
func NewWithOptions(endpoint string, opts *jsonrpc.RPCClientOpts, limiter rate.Limiter) Client {
	if limiter == nil {
		limiter = &rate.NoLimiter{}
	}

	return &client{
		log:     logrus.StandardLogger().WithField("type", "solana/client"),
		client:  jsonrpc.NewClientWithOpts(endpoint, opts),
		limiter: limiter,
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
		),
	}
}

// call sends a single request, retrying throttled and unhealthy responses.
// A lone struct param must be wrapped in a slice, otherwise it is sent as
// the params object itself.
func (c *client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		if err := c.limiter.Wait(context.Background(), rateLimiterKey); err != nil {
			return errors.Wrap(err, "rate limiter failure")
		}

		if err := c.client.CallFor(out, method, params...); err != nil {
			return c.classify(method, err)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "%s() failed to send request", method)
	}
	return nil
}

func (c *client) classify(method string, err error) error {
	code, ok := statusCode(err)
	switch {
	case !ok:
		return err
	case code == http.StatusTooManyRequests:
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	case code >= http.StatusInternalServerError, code == rpcNodeUnhealthyCode:
		return errServiceError
	}
	return err
}

// statusCode extracts the code carried by a JSON-RPC or HTTP failure.
func statusCode(err error) (int, bool) {
	switch typed := errors.Cause(err).(type) {
	case *jsonrpc.RPCError:
		return typed.Code, true
	case *jsonrpc.HTTPError:
		return typed.Code, true
	}
	return 0, false
}

func isInvalidParams(err error) bool {
	code, ok := statusCode(err)
	return ok && code == rpcInvalidParamsCode
}

func (c *client) GetSlot(commitment Commitment) (uint64, error) {
	var slot uint64
	err := c.call(&slot, "getSlot", []interface{}{rpcConfig{Commitment: commitment.Commitment}})
	return slot, err
}

// GetLatestBlockhash always queries the node. Transactions built from the
// result must not be reused across pipeline runs.
func (c *client) GetLatestBlockhash() (Blockhash, error) {
	var hash Blockhash
	var resp struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getLatestBlockhash", []interface{}{rpcConfig{Commitment: CommitmentConfirmed.Commitment}}); err != nil {
		return hash, err
	}

	decoded, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid base58 encoded hash in response")
	}
	if len(decoded) != len(hash) {
		return hash, errors.Errorf("invalid blockhash length: %d", len(decoded))
	}

	copy(hash[:], decoded)
	return hash, nil
}

func (c *client) GetBalance(account ed25519.PublicKey) (uint64, error) {
	var resp struct {
		Value uint64 `json:"value"`
	}
	err := c.call(&resp, "getBalance", base58.Encode(account), rpcConfig{Commitment: CommitmentProcessed.Commitment})
	if isInvalidParams(err) {
		return 0, ErrNoBalance
	} else if err != nil {
		return 0, err
	}
	return resp.Value, nil
}

// GetTokenAccountBalance returns the raw token amount held by account and
// the slot it was observed at.
func (c *client) GetTokenAccountBalance(account ed25519.PublicKey) (uint64, uint64, error) {
	var resp struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Amount string `json:"amount"`
		} `json:"value"`
	}
	err := c.call(&resp, "getTokenAccountBalance", base58.Encode(account), rpcConfig{Commitment: CommitmentConfirmed.Commitment})
	if isInvalidParams(err) {
		return 0, 0, ErrNoBalance
	} else if err != nil {
		return 0, 0, err
	}

	amount, err := strconv.ParseUint(resp.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid token amount in response: %q", resp.Value.Amount)
	}
	return amount, resp.Context.Slot, nil
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error) {
	var resp struct {
		Value *rpcAccount `json:"value"`
	}
	config := rpcConfig{
		Commitment: commitment.Commitment,
		Encoding:   encodingBase64,
	}
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), config); err != nil {
		return AccountInfo{}, err
	}

	if resp.Value == nil {
		return AccountInfo{}, ErrNoAccountInfo
	}
	return resp.Value.info()
}

// GetProgramAccounts lists the accounts owned by program. When filterValue
// is set, only accounts whose data holds it at offset are returned.
func (c *client) GetProgramAccounts(program ed25519.PublicKey, offset uint, filterValue []byte) ([]KeyedAccount, error) {
	config := rpcConfig{
		Commitment: CommitmentConfirmed.Commitment,
		Encoding:   encodingBase64,
	}
	if len(filterValue) > 0 {
		config.Filters = append(config.Filters, rpcFilter{
			Memcmp: rpcMemcmp{Offset: offset, Bytes: base58.Encode(filterValue)},
		})
	}

	var resp []struct {
		PubKey  string     `json:"pubkey"`
		Account rpcAccount `json:"account"`
	}
	if err := c.call(&resp, "getProgramAccounts", base58.Encode(program), config); err != nil {
		return nil, err
	}

	// Entries that cannot be read are dropped so the rest of the scan survives.
	res := make([]KeyedAccount, 0, len(resp))
	for _, entry := range resp {
		log := c.log.WithFields(logrus.Fields{
			"method":  "GetProgramAccounts",
			"account": entry.PubKey,
		})

		key, err := base58.Decode(entry.PubKey)
		if err == nil && len(key) != ed25519.PublicKeySize {
			err = ErrInvalidPublicKey
		}
		if err != nil {
			log.WithError(err).Debug("skipping account with invalid address")
			continue
		}

		info, err := entry.Account.info()
		if err != nil {
			log.WithError(err).Debug("skipping unreadable account")
			continue
		}

		res = append(res, KeyedAccount{PublicKey: key, Account: info})
	}
	return res, nil
}

func (c *client) GetSignaturesForAddress(account ed25519.PublicKey, commitment Commitment, limit uint64, before, until string) ([]*TransactionSignature, error) {
	config := rpcConfig{
		Commitment: commitment.Commitment,
		Before:     before,
		Until:      until,
	}
	if limit > 0 {
		config.Limit = &limit
	}

	var resp []struct {
		Signature string      `json:"signature"`
		Slot      uint64      `json:"slot"`
		Err       interface{} `json:"err"`
		Memo      *string     `json:"memo"`
		BlockTime *int64      `json:"blockTime"`
	}
	if err := c.call(&resp, "getSignaturesForAddress", base58.Encode(account), config); err != nil {
		return nil, err
	}

	res := make([]*TransactionSignature, len(resp))
	for i, entry := range resp {
		decoded, err := base58.Decode(entry.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid transaction signature: %s", entry.Signature)
		}

		txErr, err := ParseTransactionError(entry.Err)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid error for transaction %s", entry.Signature)
		}

		res[i] = &TransactionSignature{
			Slot:      entry.Slot,
			BlockTime: unixTime(entry.BlockTime),
			Err:       txErr,
			Memo:      entry.Memo,
		}
		copy(res[i].Signature[:], decoded)
	}
	return res, nil
}

// GetTransaction returns ErrSignatureNotFound until the node has the
// transaction at the requested commitment.
func (c *client) GetTransaction(sig Signature, commitment Commitment) (ConfirmedTransaction, error) {
	config := rpcConfig{
		Commitment: commitment.Commitment,
		Encoding:   encodingJSON,

		MaxSupportedTransactionVersion: pointer.To(0),
	}

	var resp *rpcTransaction
	if err := c.call(&resp, "getTransaction", base58.Encode(sig[:]), config); err != nil {
		return ConfirmedTransaction{}, err
	}
	if resp == nil {
		return ConfirmedTransaction{}, ErrSignatureNotFound
	}

	return resp.confirmed(sig)
}

func (c *client) SimulateTransaction(txn Transaction, commitment Commitment) (SimulationResult, error) {
	config := rpcConfig{
		Commitment: commitment.Commitment,
		Encoding:   encodingBase64,
		SigVerify:  pointer.To(false),
	}

	var resp struct {
		Value struct {
			Err           interface{} `json:"err"`
			Logs          []string    `json:"logs"`
			UnitsConsumed *uint64     `json:"unitsConsumed"`
		} `json:"value"`
	}
	if err := c.call(&resp, "simulateTransaction", txn.ToBase64(), config); err != nil {
		return SimulationResult{}, err
	}

	txErr, err := ParseTransactionError(resp.Value.Err)
	if err != nil {
		return SimulationResult{}, errors.Wrap(err, "failed to parse simulation error")
	}

	return SimulationResult{
		UnitsConsumed: resp.Value.UnitsConsumed,
		Logs:          resp.Value.Logs,
		Err:           txErr,
	}, nil
}

// SubmitTransaction sends a signed transaction. A preflight rejection is
// returned as the *TransactionError reported by the node.
func (c *client) SubmitTransaction(txn Transaction, opts SubmitOptions) (Signature, error) {
	var sig Signature
	if len(txn.Signatures) == 0 {
		return sig, errors.New("transaction has no signatures")
	}
	sig = txn.Signatures[0]

	config := rpcConfig{
		PreflightCommitment: opts.PreflightCommitment.Commitment,
		Encoding:            encodingBase64,
		SkipPreflight:       pointer.To(opts.SkipPreflight),
	}

	var returned string
	if err := c.call(&returned, "sendTransaction", txn.ToBase64(), config); err != nil {
		if rpcErr, ok := errors.Cause(err).(*jsonrpc.RPCError); ok {
			if txErr, parseErr := ParseRPCError(rpcErr); parseErr == nil && txErr != nil {
				return sig, txErr
			}
		}
		return sig, err
	}

	decoded, err := base58.Decode(returned)
	if err != nil || len(decoded) != len(sig) {
		return sig, errors.Errorf("invalid signature in response: %s", returned)
	}
	if !bytes.Equal(decoded, sig[:]) {
		c.log.WithField("method", "SubmitTransaction").Warnf("node returned unexpected signature %s", returned)
	}
	return sig, nil
}

func (r *rpcTransaction) confirmed(sig Signature) (ConfirmedTransaction, error) {
	txn := ConfirmedTransaction{
		Slot:      r.Slot,
		BlockTime: unixTime(r.BlockTime),
		Signature: sig,
	}

	keys := r.Transaction.Message.AccountKeys
	if r.Meta != nil {
		keys = append(keys, r.Meta.LoadedAddresses.Writable...)
		keys = append(keys, r.Meta.LoadedAddresses.Readonly...)
	}
	for _, key := range keys {
		decoded, err := base58.Decode(key)
		if err != nil {
			return txn, errors.Wrapf(err, "invalid account key: %s", key)
		}
		txn.AccountKeys = append(txn.AccountKeys, decoded)
	}

	for i, raw := range r.Transaction.Message.Instructions {
		compiled, err := raw.compile(len(txn.AccountKeys))
		if err != nil {
			return txn, errors.Wrapf(err, "invalid instruction %d", i)
		}
		txn.Instructions = append(txn.Instructions, compiled)
	}

	if r.Meta == nil {
		return txn, nil
	}

	txn.LogMessages = r.Meta.LogMessages
	for _, group := range r.Meta.InnerInstructions {
		inner := InnerInstructionGroup{Index: group.Index}
		for i, raw := range group.Instructions {
			compiled, err := raw.compile(len(txn.AccountKeys))
			if err != nil {
				return txn, errors.Wrapf(err, "invalid inner instruction %d:%d", group.Index, i)
			}
			inner.Instructions = append(inner.Instructions, compiled)
		}
		txn.InnerInstructions = append(txn.InnerInstructions, inner)
	}

	var err error
	if txn.Err, err = ParseTransactionError(r.Meta.Err); err != nil {
		return txn, errors.Wrap(err, "failed to parse transaction result")
	}
	return txn, nil
}

func (r rpcInstruction) compile(numKeys int) (CompiledInstruction, error) {
	data, err := base58.Decode(r.Data)
	if err != nil {
		return CompiledInstruction{}, errors.Wrap(err, "invalid base58 instruction data")
	}

	program, err := keyIndex(r.ProgramIDIndex, numKeys)
	if err != nil {
		return CompiledInstruction{}, errors.Wrap(err, "invalid program")
	}

	compiled := CompiledInstruction{
		ProgramIndex: program,
		Accounts:     make([]byte, len(r.Accounts)),
		Data:         data,
	}
	for i, index := range r.Accounts {
		if compiled.Accounts[i], err = keyIndex(index, numKeys); err != nil {
			return CompiledInstruction{}, errors.Wrapf(err, "invalid account %d", i)
		}
	}
	return compiled, nil
}

func keyIndex(index, numKeys int) (byte, error) {
	if index < 0 || index >= numKeys {
		return 0, errors.Errorf("index out of range: %d", index)
	}
	return byte(index), nil
}

// ResolveInstruction returns the program and account keys referenced by a
// compiled instruction of the transaction.
func (t ConfirmedTransaction) ResolveInstruction(c CompiledInstruction) (ed25519.PublicKey, []ed25519.PublicKey, error) {
	if _, err := keyIndex(int(c.ProgramIndex), len(t.AccountKeys)); err != nil {
		return nil, nil, errors.Wrap(err, "invalid program")
	}

	accounts := make([]ed25519.PublicKey, len(c.Accounts))
	for i, index := range c.Accounts {
		if _, err := keyIndex(int(index), len(t.AccountKeys)); err != nil {
			return nil, nil, errors.Wrapf(err, "invalid account %d", i)
		}
		accounts[i] = t.AccountKeys[index]
	}
	return t.AccountKeys[c.ProgramIndex], accounts, nil
}

func (r rpcAccount) info() (AccountInfo, error) {
	if len(r.Data) == 0 {
		return AccountInfo{}, errors.New("missing account data")
	}

	owner, err := base58.Decode(r.Owner)
	if err != nil {
		return AccountInfo{}, errors.Wrap(err, "invalid base58 encoded owner")
	}

	data, err := base64.StdEncoding.DecodeString(r.Data[0])
	if err != nil {
		return AccountInfo{}, errors.Wrap(err, "invalid base64 encoded data")
	}

	return AccountInfo{
		Data:       data,
		Owner:      owner,
		Lamports:   r.Lamports,
		Executable: r.Executable,
	}, nil
}

func unixTime(seconds *int64) *time.Time {
	if seconds == nil {
		return nil
	}
	return pointer.To(time.Unix(*seconds, 0))
}

package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamba-labs/gamba-go/pkg/rate"
	"github.com/gamba-labs/gamba-go/pkg/retry"
)

type rpcHandler func(params []json.RawMessage) (result interface{}, rpcErr map[string]interface{})

type testRPCServer struct {
	mu       sync.Mutex
	handlers map[string]rpcHandler
	calls    map[string]int
	lastReq  map[string][]json.RawMessage
}

func newTestRPCServer(t *testing.T, handlers map[string]rpcHandler) (*client, *testRPCServer) {
	s := &testRPCServer{
		handlers: handlers,
		calls:    make(map[string]int),
		lastReq:  make(map[string][]json.RawMessage),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int               `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		s.mu.Lock()
		s.calls[req.Method]++
		s.lastReq[req.Method] = req.Params
		handler, ok := s.handlers[req.Method]
		s.mu.Unlock()

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
		}
		if !ok {
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		} else {
			result, rpcErr := handler(req.Params)
			if rpcErr != nil {
				resp["error"] = rpcErr
			} else {
				resp["result"] = result
			}
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	c := NewWithOptions(server.URL, nil, &rate.NoLimiter{}).(*client)
	c.retrier = retry.NewRetrier(
		retry.RetriableErrors(errRateLimited, errServiceError),
		retry.Limit(3),
	)
	return c, s
}

func (s *testRPCServer) callCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *testRPCServer) params(method string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReq[method]
}

func TestClient_GetLatestBlockhash_NotCached(t *testing.T) {
	hashes := []Blockhash{{1}, {2}}
	var served int

	c, s := newTestRPCServer(t, map[string]rpcHandler{
		"getLatestBlockhash": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			hash := hashes[served%len(hashes)]
			served++
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 1},
				"value": map[string]interface{}{
					"blockhash":            base58.Encode(hash[:]),
					"lastValidBlockHeight": 100,
				},
			}, nil
		},
	})

	first, err := c.GetLatestBlockhash()
	require.NoError(t, err)
	second, err := c.GetLatestBlockhash()
	require.NoError(t, err)

	assert.Equal(t, hashes[0], first)
	assert.Equal(t, hashes[1], second)
	assert.Equal(t, 2, s.callCount("getLatestBlockhash"))
}

func TestClient_RetriesRateLimited(t *testing.T) {
	var attempts int
	c, s := newTestRPCServer(t, map[string]rpcHandler{
		"getSlot": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			attempts++
			if attempts < 3 {
				return nil, map[string]interface{}{"code": 429, "message": "too many requests"}
			}
			return 1234, nil
		},
	})

	slot, err := c.GetSlot(CommitmentConfirmed)
	require.NoError(t, err)
	assert.EqualValues(t, 1234, slot)
	assert.Equal(t, 3, s.callCount("getSlot"))
}

func TestClient_SimulateTransaction(t *testing.T) {
	c, s := newTestRPCServer(t, map[string]rpcHandler{
		"simulateTransaction": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 1},
				"value": map[string]interface{}{
					"err":           map[string]interface{}{"InstructionError": []interface{}{1, map[string]interface{}{"Custom": 1}}},
					"logs":          []string{"Program log: Instruction: PlayGame"},
					"unitsConsumed": 100000,
				},
			}, nil
		},
	})

	payer := generateKeys(t, 1)[0]
	txn := NewTransaction(public(payer), NewInstruction(public(payer), []byte{1}))

	result, err := c.SimulateTransaction(txn, CommitmentConfirmed)
	require.NoError(t, err)
	require.NotNil(t, result.UnitsConsumed)
	assert.EqualValues(t, 100000, *result.UnitsConsumed)
	assert.Equal(t, []string{"Program log: Instruction: PlayGame"}, result.Logs)
	require.NotNil(t, result.Err)
	assert.Equal(t, CustomError(1), *result.Err.InstructionError().CustomError())

	params := s.params("simulateTransaction")
	require.Len(t, params, 2)

	var encoded string
	require.NoError(t, json.Unmarshal(params[0], &encoded))
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, txn.Marshal(), decoded)

	var config map[string]interface{}
	require.NoError(t, json.Unmarshal(params[1], &config))
	assert.Equal(t, "base64", config["encoding"])
	assert.Equal(t, false, config["sigVerify"])
}

func TestClient_SimulateTransaction_NoUnits(t *testing.T) {
	c, _ := newTestRPCServer(t, map[string]rpcHandler{
		"simulateTransaction": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 1},
				"value":   map[string]interface{}{"err": nil, "logs": nil},
			}, nil
		},
	})

	payer := generateKeys(t, 1)[0]
	result, err := c.SimulateTransaction(NewTransaction(public(payer)), CommitmentConfirmed)
	require.NoError(t, err)
	assert.Nil(t, result.UnitsConsumed)
	assert.Nil(t, result.Err)
}

func TestClient_SubmitTransaction(t *testing.T) {
	payer := generateKeys(t, 1)[0]
	txn := NewTransaction(public(payer), NewInstruction(public(payer), []byte{1}))
	require.NoError(t, txn.Sign(signerFor(t, payer)))

	c, s := newTestRPCServer(t, map[string]rpcHandler{
		"sendTransaction": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return base58.Encode(txn.Signature()), nil
		},
	})

	sig, err := c.SubmitTransaction(txn, SubmitOptions{PreflightCommitment: CommitmentConfirmed})
	require.NoError(t, err)
	assert.Equal(t, txn.Signatures[0], sig)

	var config map[string]interface{}
	require.NoError(t, json.Unmarshal(s.params("sendTransaction")[1], &config))
	assert.Equal(t, "base64", config["encoding"])
	assert.Equal(t, "confirmed", config["preflightCommitment"])
	assert.Equal(t, false, config["skipPreflight"])
}

func TestClient_SubmitTransaction_PreflightFailure(t *testing.T) {
	payer := generateKeys(t, 1)[0]
	txn := NewTransaction(public(payer), NewInstruction(public(payer), []byte{1}))
	require.NoError(t, txn.Sign(signerFor(t, payer)))

	c, _ := newTestRPCServer(t, map[string]rpcHandler{
		"sendTransaction": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return nil, map[string]interface{}{
				"code":    -32002,
				"message": "Transaction simulation failed",
				"data": map[string]interface{}{
					"err": map[string]interface{}{"InstructionError": []interface{}{0, "InvalidArgument"}},
				},
			}
		},
	})

	_, err := c.SubmitTransaction(txn, SubmitOptions{PreflightCommitment: CommitmentConfirmed})
	require.Error(t, err)

	txErr, ok := err.(*TransactionError)
	require.True(t, ok)
	assert.Equal(t, InstructionErrorInvalidArgument, txErr.InstructionError().ErrorKey())
}

func TestClient_GetProgramAccounts(t *testing.T) {
	account := generateKeys(t, 1)[0]
	program := generateKeys(t, 1)[0]
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}

	c, s := newTestRPCServer(t, map[string]rpcHandler{
		"getProgramAccounts": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return []interface{}{
				map[string]interface{}{
					"pubkey": base58.Encode(public(account)),
					"account": map[string]interface{}{
						"lamports":   42,
						"owner":      base58.Encode(public(program)),
						"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
						"executable": false,
					},
				},
			}, nil
		},
	})

	accounts, err := c.GetProgramAccounts(public(program), 0, data[:8])
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.EqualValues(t, public(account), accounts[0].PublicKey)
	assert.EqualValues(t, public(program), accounts[0].Account.Owner)
	assert.Equal(t, data, accounts[0].Account.Data)
	assert.EqualValues(t, 42, accounts[0].Account.Lamports)

	var config struct {
		Filters []struct {
			Memcmp struct {
				Offset uint   `json:"offset"`
				Bytes  string `json:"bytes"`
			} `json:"memcmp"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(s.params("getProgramAccounts")[1], &config))
	require.Len(t, config.Filters, 1)
	assert.EqualValues(t, 0, config.Filters[0].Memcmp.Offset)
	assert.Equal(t, base58.Encode(data[:8]), config.Filters[0].Memcmp.Bytes)
}

func TestClient_GetProgramAccounts_SkipsUnreadable(t *testing.T) {
	keys := generateKeys(t, 3)
	program := generateKeys(t, 1)[0]
	encoded := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})

	entry := func(pubkey, data string) map[string]interface{} {
		return map[string]interface{}{
			"pubkey": pubkey,
			"account": map[string]interface{}{
				"lamports":   1,
				"owner":      base58.Encode(public(program)),
				"data":       []string{data, "base64"},
				"executable": false,
			},
		}
	}

	c, _ := newTestRPCServer(t, map[string]rpcHandler{
		"getProgramAccounts": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return []interface{}{
				entry(base58.Encode(public(keys[0])), encoded),
				entry(base58.Encode(public(keys[1])), encoded[:5]),
				entry(base58.Encode([]byte{1, 2, 3}), encoded),
				entry(base58.Encode(public(keys[2])), encoded),
			}, nil
		},
	})

	accounts, err := c.GetProgramAccounts(public(program), 0, nil)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.EqualValues(t, public(keys[0]), accounts[0].PublicKey)
	assert.EqualValues(t, public(keys[2]), accounts[1].PublicKey)
}

func TestClient_GetAccountInfo_Missing(t *testing.T) {
	c, _ := newTestRPCServer(t, map[string]rpcHandler{
		"getAccountInfo": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 1},
				"value":   nil,
			}, nil
		},
	})

	_, err := c.GetAccountInfo(make([]byte, ed25519.PublicKeySize), CommitmentConfirmed)
	assert.Equal(t, ErrNoAccountInfo, err)
}

func TestClient_GetTransaction(t *testing.T) {
	keys := generateKeys(t, 4)
	sig := Signature{7}
	blockTime := int64(1700000000)

	c, _ := newTestRPCServer(t, map[string]rpcHandler{
		"getTransaction": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return map[string]interface{}{
				"slot":      99,
				"blockTime": blockTime,
				"transaction": map[string]interface{}{
					"signatures": []string{base58.Encode(sig[:])},
					"message": map[string]interface{}{
						"accountKeys": []string{
							base58.Encode(public(keys[0])),
							base58.Encode(public(keys[1])),
						},
						"instructions": []interface{}{
							map[string]interface{}{
								"programIdIndex": 1,
								"accounts":       []int{0, 2},
								"data":           base58.Encode([]byte{1, 2, 3}),
							},
						},
					},
				},
				"meta": map[string]interface{}{
					"err":         nil,
					"logMessages": []string{"Program log: ok"},
					"innerInstructions": []interface{}{
						map[string]interface{}{
							"index": 0,
							"instructions": []interface{}{
								map[string]interface{}{
									"programIdIndex": 3,
									"accounts":       []int{0},
									"data":           base58.Encode([]byte{4}),
								},
							},
						},
					},
					"loadedAddresses": map[string]interface{}{
						"writable": []string{base58.Encode(public(keys[2]))},
						"readonly": []string{base58.Encode(public(keys[3]))},
					},
				},
			}, nil
		},
	})

	txn, err := c.GetTransaction(sig, CommitmentConfirmed)
	require.NoError(t, err)
	assert.EqualValues(t, 99, txn.Slot)
	require.NotNil(t, txn.BlockTime)
	assert.Equal(t, blockTime, txn.BlockTime.Unix())
	assert.Nil(t, txn.Err)
	assert.Equal(t, []string{"Program log: ok"}, txn.LogMessages)

	require.Len(t, txn.AccountKeys, 4)
	for i := range keys {
		assert.EqualValues(t, public(keys[i]), txn.AccountKeys[i])
	}

	require.Len(t, txn.Instructions, 1)
	program, accounts, err := txn.ResolveInstruction(txn.Instructions[0])
	require.NoError(t, err)
	assert.EqualValues(t, public(keys[1]), program)
	require.Len(t, accounts, 2)
	assert.EqualValues(t, public(keys[2]), accounts[1])
	assert.Equal(t, []byte{1, 2, 3}, txn.Instructions[0].Data)

	require.Len(t, txn.InnerInstructions, 1)
	assert.Equal(t, 0, txn.InnerInstructions[0].Index)
	program, _, err = txn.ResolveInstruction(txn.InnerInstructions[0].Instructions[0])
	require.NoError(t, err)
	assert.EqualValues(t, public(keys[3]), program)
}

func TestClient_GetTransaction_NotFound(t *testing.T) {
	c, _ := newTestRPCServer(t, map[string]rpcHandler{
		"getTransaction": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return nil, nil
		},
	})

	_, err := c.GetTransaction(Signature{1}, CommitmentConfirmed)
	assert.Equal(t, ErrSignatureNotFound, err)
}

func TestClient_GetSignaturesForAddress(t *testing.T) {
	blockTime := int64(1700000000)
	c, s := newTestRPCServer(t, map[string]rpcHandler{
		"getSignaturesForAddress": func(_ []json.RawMessage) (interface{}, map[string]interface{}) {
			return []interface{}{
				map[string]interface{}{
					"signature": base58.Encode([]byte{1}),
					"slot":      10,
					"err":       nil,
					"blockTime": blockTime,
				},
				map[string]interface{}{
					"signature": base58.Encode([]byte{2}),
					"slot":      9,
					"err":       "BlockhashNotFound",
				},
			}, nil
		},
	})

	sigs, err := c.GetSignaturesForAddress(make([]byte, 32), CommitmentConfirmed, 2, "", "")
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	assert.EqualValues(t, 10, sigs[0].Slot)
	assert.Nil(t, sigs[0].Err)
	require.NotNil(t, sigs[0].BlockTime)
	assert.Nil(t, sigs[1].BlockTime)
	require.NotNil(t, sigs[1].Err)
	assert.Equal(t, TransactionErrorBlockhashNotFound, sigs[1].Err.ErrorKey())

	var config map[string]interface{}
	require.NoError(t, json.Unmarshal(s.params("getSignaturesForAddress")[1], &config))
	assert.EqualValues(t, 2, config["limit"])
	assert.NotContains(t, config, "before")
}

func TestParseCommitment(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected Commitment
	}{
		{"processed", CommitmentProcessed},
		{"confirmed", CommitmentConfirmed},
		{"finalized", CommitmentFinalized},
	} {
		actual, err := ParseCommitment(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, actual)
	}

	_, err := ParseCommitment("recent")
	assert.Error(t, err)
}

package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/ybbus/jsonrpc"
)

func TestParse(t *testing.T) {
	d := json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[2,{"Custom":3}]}`))

	var raw interface{}
	assert.NoError(t, d.Decode(&raw))

	e, err := ParseTransactionError(raw)
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.NotNil(t, e.InstructionError())
	assert.Equal(t, 2, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorCustom, e.InstructionError().ErrorKey())
	assert.NotNil(t, e.InstructionError().CustomError())
	assert.Equal(t, CustomError(3), *e.InstructionError().CustomError())

	d = json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[0,"InvalidArgument"]}`))
	assert.NoError(t, d.Decode(&raw))

	e, err = ParseTransactionError(raw)
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.NotNil(t, e.InstructionError())
	assert.Equal(t, 0, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorInvalidArgument, e.InstructionError().ErrorKey())

	d = json.NewDecoder(bytes.NewBufferString(`"DuplicateSignature"`))
	assert.NoError(t, d.Decode(&raw))

	e, err = ParseTransactionError(raw)
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorKey("DuplicateSignature"), e.ErrorKey())
	assert.Nil(t, e.InstructionError())
}

func TestParseJSONNumber(t *testing.T) {
	tc := []interface{}{
		"1",
		1.0,
		json.Number("1"),
	}
	for i, c := range tc {
		v, err := parseJSONNumber(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, v, i)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, IsValidationError(ErrNoInstructions))
	assert.True(t, IsValidationError(errors.Wrap(ErrWalletNotConnected, "send")))
	assert.False(t, IsResolutionError(ErrNoInstructions))
	assert.Equal(t, "no instructions provided", ErrNoInstructions.Error())
	assert.Equal(t, "wallet not connected", ErrWalletNotConnected.Error())

	cause := errors.New("account not found")
	resolutionErr := NewResolutionError("pool", cause)
	assert.True(t, IsResolutionError(resolutionErr))
	assert.ErrorIs(t, resolutionErr, cause)
	assert.Equal(t, "pool: account not found", resolutionErr.Error())

	sendErr := NewSendError("submit", cause)
	assert.ErrorIs(t, sendErr, cause)
	assert.False(t, IsValidationError(sendErr))
	assert.Equal(t, "submit failed: account not found", sendErr.Error())
}

func TestParseRPCError(t *testing.T) {
	d := json.NewDecoder(bytes.NewBufferString(`{"err":{"InstructionError":[1,{"Custom":6001}]},"logs":[]}`))
	var data interface{}
	assert.NoError(t, d.Decode(&data))

	e, err := ParseRPCError(&jsonrpc.RPCError{Code: -32002, Message: "simulation failed", Data: data})
	assert.NoError(t, err)
	assert.NotNil(t, e)
	assert.Equal(t, 1, e.InstructionError().Index)
	assert.Equal(t, CustomError(6001), *e.InstructionError().CustomError())
	assert.Equal(t, "Error processing Instruction 1: custom program error: 1771", e.Error())

	raw, err := e.JSONString()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"InstructionError":[1,{"Custom":6001}]}`, raw)

	e, err = ParseRPCError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestRequireKey(t *testing.T) {
	assert.NoError(t, RequireKey("user", make([]byte, 32)))

	err := RequireKey("user", nil)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "user is required", err.Error())

	err = RequireKey("pool", make([]byte, 31))
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "pool is not a valid address", err.Error())
}

func TestParseTransactionError_Malformed(t *testing.T) {
	e, err := ParseTransactionError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)

	for _, raw := range []interface{}{
		map[string]interface{}{"AccountInUse": nil, "AccountNotFound": nil},
		map[string]interface{}{"InstructionError": []interface{}{0}},
		map[string]interface{}{"InstructionError": []interface{}{"x", "InvalidArgument"}},
		42.0,
	} {
		_, err := ParseTransactionError(raw)
		assert.Error(t, err, raw)
	}

	e, err = ParseTransactionError(map[string]interface{}{
		"InstructionError": []interface{}{3.0, map[string]interface{}{"BorshIoError": "Unknown"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, InstructionErrorKey("BorshIoError"), e.InstructionError().ErrorKey())
	assert.Nil(t, e.InstructionError().CustomError())
	assert.Equal(t, "Error processing Instruction 3: BorshIoError", e.Error())
}

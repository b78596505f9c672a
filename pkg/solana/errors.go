package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
)

var (
	// ErrNoInstructions is returned when a transaction is requested without
	// any instructions.
	ErrNoInstructions = NewValidationError("no instructions provided")

	// ErrWalletNotConnected is returned when an operation requires a signer
	// and none is available.
	ErrWalletNotConnected = NewValidationError("wallet not connected")
)

// ValidationError indicates the caller supplied incomplete or invalid input.
// It is always raised before any network access.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func NewValidationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ResolutionError indicates an address or a dependent on-chain account could
// not be resolved.
type ResolutionError struct {
	Message string
	Cause   error
}

func NewResolutionError(message string, cause error) *ResolutionError {
	return &ResolutionError{Message: message, Cause: cause}
}

func (e *ResolutionError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// SendError indicates the transport rejected signing or submission of a
// transaction.
type SendError struct {
	Stage string
	Cause error
}

func NewSendError(stage string, cause error) *SendError {
	return &SendError{Stage: stage, Cause: cause}
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
}

func (e *SendError) Unwrap() error {
	return e.Cause
}

// RequireKey returns a ValidationError naming the field when key is not a
// 32 byte address.
func RequireKey(name string, key ed25519.PublicKey) error {
	if len(key) == 0 {
		return NewValidationErrorf("%s is required", name)
	}
	if len(key) != ed25519.PublicKeySize {
		return NewValidationErrorf("%s is not a valid address", name)
	}
	return nil
}

// IsValidationError returns whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsResolutionError returns whether err is, or wraps, a ResolutionError.
func IsResolutionError(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

// TransactionErrorKey names a transaction failure.
//
// Source: https://github.com/solana-labs/solana/blob/fc2bf2d3b669d1c6655ae48b0a05f470938f3676/sdk/src/transaction/mod.rs#L37
type TransactionErrorKey string

const (
	TransactionErrorAccountNotFound         TransactionErrorKey = "AccountNotFound"
	TransactionErrorInsufficientFundsForFee TransactionErrorKey = "InsufficientFundsForFee"
	TransactionErrorBlockhashNotFound       TransactionErrorKey = "BlockhashNotFound"
	TransactionErrorInstructionError        TransactionErrorKey = "InstructionError"
	TransactionErrorSignatureFailure        TransactionErrorKey = "SignatureFailure"
)

// InstructionErrorKey names an instruction failure.
//
// Source: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
type InstructionErrorKey string

const (
	InstructionErrorInvalidArgument   InstructionErrorKey = "InvalidArgument"
	InstructionErrorInsufficientFunds InstructionErrorKey = "InsufficientFunds"
	InstructionErrorCustom            InstructionErrorKey = "Custom"
)

// CustomError is a program specific error code.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %x", int(c))
}

// InstructionError is the failure of the instruction at Index.
type InstructionError struct {
	Index int
	Err   error
}

func (i InstructionError) Error() string {
	return fmt.Sprintf("Error processing Instruction %d: %v", i.Index, i.Err)
}

func (i InstructionError) ErrorKey() InstructionErrorKey {
	switch i.Err.(type) {
	case nil:
		return ""
	case CustomError:
		return InstructionErrorCustom
	default:
		return InstructionErrorKey(i.Err.Error())
	}
}

// CustomError returns the program error code, or nil for a builtin failure.
func (i InstructionError) CustomError() *CustomError {
	if code, ok := i.Err.(CustomError); ok {
		return &code
	}
	return nil
}

// TransactionError is a transaction failure reported by the node.
type TransactionError struct {
	key         TransactionErrorKey
	instruction *InstructionError
	raw         interface{}
}

func (t TransactionError) Error() string {
	if t.instruction != nil {
		return t.instruction.Error()
	}
	return string(t.key)
}

func (t TransactionError) ErrorKey() TransactionErrorKey {
	return t.key
}

// InstructionError is set when the key is TransactionErrorInstructionError.
func (t TransactionError) InstructionError() *InstructionError {
	return t.instruction
}

// JSONString returns the error as the node reported it.
func (t TransactionError) JSONString() (string, error) {
	b, err := json.Marshal(t.raw)
	return string(b), err
}

// ParseRPCError extracts the transaction failure carried in the data of a
// preflight rejection. It returns nil if there is none.
func ParseRPCError(err *jsonrpc.RPCError) (*TransactionError, error) {
	if err == nil {
		return nil, nil
	}

	data, ok := err.Data.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("unexpected rpc error data: %T", err.Data)
	}
	return ParseTransactionError(data["err"])
}

// ParseTransactionError parses the "err" value returned by transaction
// related RPC methods. A nil value parses to a nil error.
func ParseTransactionError(raw interface{}) (*TransactionError, error) {
	if raw == nil {
		return nil, nil
	}

	tag, payload, ok := variant(raw)
	if !ok {
		return nil, errors.Errorf("unexpected transaction error: %v", raw)
	}

	txErr := &TransactionError{
		key: TransactionErrorKey(tag),
		raw: raw,
	}
	if txErr.key != TransactionErrorInstructionError {
		return txErr, nil
	}

	var err error
	if txErr.instruction, err = parseInstructionError(payload); err != nil {
		return nil, errors.Wrap(err, "failed to parse instruction error")
	}
	return txErr, nil
}

// parseInstructionError parses the [index, error] tuple of an
// InstructionError.
func parseInstructionError(payload interface{}) (*InstructionError, error) {
	tuple, ok := payload.([]interface{})
	if !ok || len(tuple) != 2 {
		return nil, errors.Errorf("unexpected tuple: %v", payload)
	}

	index, err := parseJSONNumber(tuple[0])
	if err != nil {
		return nil, err
	}

	tag, detail, ok := variant(tuple[1])
	if !ok {
		return nil, errors.Errorf("unexpected instruction error: %v", tuple[1])
	}

	if tag != string(InstructionErrorCustom) {
		return &InstructionError{Index: index, Err: errors.New(tag)}, nil
	}

	code, err := parseJSONNumber(detail)
	if err != nil {
		return nil, errors.Wrap(err, "invalid custom error code")
	}
	return &InstructionError{Index: index, Err: CustomError(code)}, nil
}

// variant splits a serialized enum value into its tag and payload. Unit
// variants are bare strings, others are single entry objects.
func variant(v interface{}) (tag string, payload interface{}, ok bool) {
	switch typed := v.(type) {
	case string:
		return typed, nil, true
	case map[string]interface{}:
		if len(typed) != 1 {
			return "", nil, false
		}
		for tag, payload = range typed {
		}
		return tag, payload, true
	}
	return "", nil, false
}

func parseJSONNumber(v interface{}) (int, error) {
	var n int64
	var err error
	switch typed := v.(type) {
	case float64:
		return int(typed), nil
	case json.Number:
		n, err = typed.Int64()
	case string:
		n, err = strconv.ParseInt(typed, 10, 64)
	default:
		err = errors.New("unsupported type")
	}
	if err != nil {
		return 0, errors.Errorf("non numeric value: %v", v)
	}
	return int(n), nil
}

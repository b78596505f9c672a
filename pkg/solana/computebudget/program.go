package compute_budget

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
)

// ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

const (
	commandRequestUnits uint8 = iota
	commandRequestHeapFrame
	commandSetComputeUnitLimit
	commandSetComputeUnitPrice
)

var (
	ErrInvalidLength      = errors.New("invalid length")
	ErrInvalidInstruction = errors.New("invalid instruction")
)

// SetComputeUnitLimitArgs is the decoded form of a SetComputeUnitLimit
// instruction.
type SetComputeUnitLimitArgs struct {
	Units uint32 `json:"units"`
}

// SetComputeUnitPriceArgs is the decoded form of a SetComputeUnitPrice
// instruction.
type SetComputeUnitPriceArgs struct {
	MicroLamports uint64 `json:"micro_lamports"`
}

func SetComputeUnitLimit(computeUnitLimit uint32) solana.Instruction {
	data := make([]byte, 1+4)
	data[0] = commandSetComputeUnitLimit
	binary.LittleEndian.PutUint32(data[1:], computeUnitLimit)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

func SetComputeUnitPrice(computeUnitPrice uint64) solana.Instruction {
	data := make([]byte, 1+8)
	data[0] = commandSetComputeUnitPrice
	binary.LittleEndian.PutUint64(data[1:], computeUnitPrice)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

func ParseSetComputeUnitLimitIxnData(data []byte) (uint32, error) {
	if len(data) != 5 {
		return 0, ErrInvalidLength
	}

	if data[0] != commandSetComputeUnitLimit {
		return 0, ErrInvalidInstruction
	}

	return binary.LittleEndian.Uint32(data[1:]), nil
}

func ParseSetComputeUnitPriceIxnData(data []byte) (uint64, error) {
	if len(data) != 9 {
		return 0, ErrInvalidLength
	}

	if data[0] != commandSetComputeUnitPrice {
		return 0, ErrInvalidInstruction
	}

	return binary.LittleEndian.Uint64(data[1:]), nil
}

// DecoderTable decodes the compute budget instructions the pipeline emits.
var DecoderTable = decoder.MustNewTable(
	"compute_budget",
	ProgramKey,
	decoder.Entry{
		Name:          "set_compute_unit_limit",
		Discriminator: []byte{commandSetComputeUnitLimit},
		Parse: func(data []byte) (interface{}, error) {
			units, err := ParseSetComputeUnitLimitIxnData(data)
			return SetComputeUnitLimitArgs{Units: units}, err
		},
	},
	decoder.Entry{
		Name:          "set_compute_unit_price",
		Discriminator: []byte{commandSetComputeUnitPrice},
		Parse: func(data []byte) (interface{}, error) {
			price, err := ParseSetComputeUnitPriceIxnData(data)
			return SetComputeUnitPriceArgs{MicroLamports: price}, err
		},
	},
)

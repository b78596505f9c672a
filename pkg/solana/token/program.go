package token

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
)

// ProgramKey is the address of the token program that should be used.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

// NativeMint is the wrapped SOL mint, used as the placeholder mint for
// native lamport wagers.
//
// Current key: So11111111111111111111111111111111111111112
var NativeMint = ed25519.PublicKey{6, 155, 136, 87, 254, 171, 129, 132, 251, 104, 127, 99, 70, 24, 192, 53, 218, 196, 57, 220, 26, 235, 59, 85, 152, 160, 240, 0, 0, 0, 0, 1}

// Command is the leading tag byte of token program instruction data.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs
type Command byte

const (
	CommandTransfer        Command = 3
	CommandCloseAccount    Command = 9
	CommandTransferChecked Command = 12
)

// IsNativeMint returns whether mint is the wrapped SOL placeholder mint.
func IsNativeMint(mint ed25519.PublicKey) bool {
	return string(mint) == string(NativeMint)
}

type TransferArgs struct {
	Amount uint64 `json:"amount"`
}

type TransferCheckedArgs struct {
	Amount   uint64 `json:"amount"`
	Decimals uint8  `json:"decimals"`
}

// Transfer moves amount from source to dest, authorized by owner.
func Transfer(source, dest, owner ed25519.PublicKey, amount uint64) solana.Instruction {
	data := binary.LittleEndian.AppendUint64([]byte{byte(CommandTransfer)}, amount)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(source, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}

// CloseAccount closes account, sending its lamports to dest.
func CloseAccount(account, dest, owner ed25519.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		ProgramKey,
		[]byte{byte(CommandCloseAccount)},
		solana.NewAccountMeta(account, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}

// DecoderTable decodes the token movements that show up around wagers.
var DecoderTable = decoder.MustNewTable(
	"token",
	ProgramKey,
	decoder.Entry{
		Name:          "transfer",
		Discriminator: []byte{byte(CommandTransfer)},
		Accounts:      []string{"source", "destination", "owner"},
		Parse: func(data []byte) (interface{}, error) {
			if len(data) != 9 {
				return nil, errors.Errorf("invalid instruction data size: %d", len(data))
			}
			return TransferArgs{Amount: binary.LittleEndian.Uint64(data[1:])}, nil
		},
	},
	decoder.Entry{
		Name:          "close_account",
		Discriminator: []byte{byte(CommandCloseAccount)},
		Accounts:      []string{"account", "destination", "owner"},
		Parse: func(data []byte) (interface{}, error) {
			return struct{}{}, nil
		},
	},
	decoder.Entry{
		Name:          "transfer_checked",
		Discriminator: []byte{byte(CommandTransferChecked)},
		Accounts:      []string{"source", "mint", "destination", "owner"},
		Parse: func(data []byte) (interface{}, error) {
			if len(data) != 10 {
				return nil, errors.Errorf("invalid instruction data size: %d", len(data))
			}
			return TransferCheckedArgs{
				Amount:   binary.LittleEndian.Uint64(data[1:]),
				Decimals: data[9],
			}, nil
		},
	},
)

package system

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
)

// ProgramKey is the system program, 11111111111111111111111111111111.
var ProgramKey = make(ed25519.PublicKey, ed25519.PublicKeySize)

// RentSysVar is the rent sysvar, SysvarRent111111111111111111111111111111111.
var RentSysVar = ed25519.PublicKey{6, 167, 213, 23, 25, 44, 92, 81, 33, 140, 201, 76, 61, 74, 241, 127, 88, 218, 238, 8, 155, 161, 253, 68, 227, 219, 217, 138, 0, 0, 0, 0}

const (
	commandCreateAccount uint32 = iota
	// nolint:varcheck,deadcode,unused
	commandAssign
	commandTransfer
)

// TransferArgs is the decoded form of a Transfer instruction.
type TransferArgs struct {
	Lamports uint64 `json:"lamports"`
}

// CreateAccountArgs is the decoded form of a CreateAccount instruction.
type CreateAccountArgs struct {
	Lamports uint64            `json:"lamports"`
	Space    uint64            `json:"space"`
	Owner    ed25519.PublicKey `json:"owner"`
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	data := make([]byte, 4+2*8+32)
	binary.LittleEndian.PutUint32(data, commandCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[4+8:], size)
	copy(data[4+2*8:], owner)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

// Transfer moves lamports between two system accounts.
func Transfer(from, to ed25519.PublicKey, lamports uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, commandTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}

func commandPrefix(command uint32) []byte {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], command)
	return prefix[:]
}

// DecoderTable decodes the system instructions that move lamports.
var DecoderTable = decoder.MustNewTable(
	"system",
	ProgramKey,
	decoder.Entry{
		Name:          "create_account",
		Discriminator: commandPrefix(commandCreateAccount),
		Accounts:      []string{"funder", "address"},
		Parse: func(data []byte) (interface{}, error) {
			if len(data) != 52 {
				return nil, errors.Errorf("invalid instruction data size: %d", len(data))
			}

			owner := make(ed25519.PublicKey, ed25519.PublicKeySize)
			copy(owner, data[4+2*8:])

			return CreateAccountArgs{
				Lamports: binary.LittleEndian.Uint64(data[4:]),
				Space:    binary.LittleEndian.Uint64(data[4+8:]),
				Owner:    owner,
			}, nil
		},
	},
	decoder.Entry{
		Name:          "transfer",
		Discriminator: commandPrefix(commandTransfer),
		Accounts:      []string{"from", "to"},
		Parse: func(data []byte) (interface{}, error) {
			if len(data) != 12 {
				return nil, errors.Errorf("invalid instruction data size: %d", len(data))
			}
			return TransferArgs{Lamports: binary.LittleEndian.Uint64(data[4:])}, nil
		},
	},
)

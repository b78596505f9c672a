package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// AccountRole is the combined signer/writable role of an account reference.
type AccountRole string

const (
	RoleReadonly       AccountRole = "readonly"
	RoleWritable       AccountRole = "writable"
	RoleReadonlySigner AccountRole = "readonly-signer"
	RoleWritableSigner AccountRole = "writable-signer"
)

// AccountMeta is an account reference of an instruction.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool

	isPayer   bool
	isProgram bool
}

// NewAccountMeta references a writable account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{PublicKey: pub, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta references a readonly account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{PublicKey: pub, IsSigner: isSigner}
}

func (a AccountMeta) Role() AccountRole {
	switch {
	case a.IsSigner && a.IsWritable:
		return RoleWritableSigner
	case a.IsSigner:
		return RoleReadonlySigner
	case a.IsWritable:
		return RoleWritable
	default:
		return RoleReadonly
	}
}

func (a AccountMeta) String() string {
	return fmt.Sprintf("%s (%s)", base58.Encode(a.PublicKey), a.Role())
}

// rank orders accounts within a message: the payer, then signers before
// non-signers and writable before readonly, with programs last.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
func (a AccountMeta) rank() int {
	if a.isPayer {
		return 0
	}

	var rank int
	switch a.Role() {
	case RoleWritableSigner:
		rank = 1
	case RoleReadonlySigner:
		rank = 2
	case RoleWritable:
		rank = 3
	default:
		rank = 4
	}
	if a.isProgram {
		rank += 4
	}
	return rank
}

// SortableAccountMeta sorts accounts by message order, breaking ties by key.
type SortableAccountMeta []AccountMeta

func (s SortableAccountMeta) Len() int      { return len(s) }
func (s SortableAccountMeta) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s SortableAccountMeta) Less(i, j int) bool {
	if ri, rj := s[i].rank(), s[j].rank(); ri != rj {
		return ri < rj
	}
	return bytes.Compare(s[i].PublicKey, s[j].PublicKey) < 0
}

// Instruction is a single program invocation.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Accounts: accounts,
		Data:     data,
	}
}

// CompiledInstruction is an Instruction whose keys were replaced by indexes
// into the message account list.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}

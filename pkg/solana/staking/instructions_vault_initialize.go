package staking

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	VaultInitializeInstructionArgsSize = (8) // vault_id
)

var VaultInitializeInstructionDiscriminator = binary.InstructionDiscriminator("vault_initialize")

type VaultInitializeInstructionArgs struct {
	VaultId uint64 `json:"vault_id"`
}

type VaultInitializeInstructionAccounts struct {
	Authority         ed25519.PublicKey
	Vault             ed25519.PublicKey
	Mint              ed25519.PublicKey
	VaultTokenAccount ed25519.PublicKey
}

var vaultInitializeAccountNames = []string{
	"authority",
	"vault",
	"mint",
	"vault_token_account",
	"system_program",
	"token_program",
	"associated_token_program",
}

func NewVaultInitializeInstruction(
	accounts *VaultInitializeInstructionAccounts,
	args *VaultInitializeInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+VaultInitializeInstructionArgsSize)

	binary.PutDiscriminator(data, VaultInitializeInstructionDiscriminator, &offset)
	binary.PutUint64(data, args.VaultId, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Authority,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Vault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.VaultTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func parseVaultInitializeInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+VaultInitializeInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args VaultInitializeInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint64(data, &args.VaultId, &offset)

	return args, nil
}

// VaultInitializeParams are the inputs to BuildVaultInitialize. Only
// Authority is required.
type VaultInitializeParams struct {
	Authority ed25519.PublicKey
	VaultId   uint64

	// Mint defaults to the native mint.
	Mint ed25519.PublicKey
}

func BuildVaultInitialize(params *VaultInitializeParams) (solana.Instruction, error) {
	if err := solana.RequireKey("authority", params.Authority); err != nil {
		return solana.Instruction{}, err
	}

	vault, err := resolveVault(nil, params.VaultId, params.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewVaultInitializeInstruction(
		&VaultInitializeInstructionAccounts{
			Authority:         params.Authority,
			Vault:             vault.Vault,
			Mint:              vault.Mint,
			VaultTokenAccount: vault.VaultTokenAccount,
		},
		&VaultInitializeInstructionArgs{
			VaultId: params.VaultId,
		},
	), nil
}

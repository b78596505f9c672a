package staking

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	VaultWithdrawInstructionArgsSize = (16) // shares
)

var VaultWithdrawInstructionDiscriminator = binary.InstructionDiscriminator("vault_withdraw")

type VaultWithdrawInstructionArgs struct {
	Shares binary.Uint128 `json:"shares"`
}

type VaultWithdrawInstructionAccounts struct {
	Owner             ed25519.PublicKey
	Vault             ed25519.PublicKey
	Stake             ed25519.PublicKey
	Mint              ed25519.PublicKey
	VaultTokenAccount ed25519.PublicKey
	OwnerAta          ed25519.PublicKey
}

var vaultWithdrawAccountNames = []string{
	"owner",
	"vault",
	"stake",
	"mint",
	"vault_token_account",
	"owner_ata",
	"system_program",
	"token_program",
	"associated_token_program",
}

func NewVaultWithdrawInstruction(
	accounts *VaultWithdrawInstructionAccounts,
	args *VaultWithdrawInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+VaultWithdrawInstructionArgsSize)

	binary.PutDiscriminator(data, VaultWithdrawInstructionDiscriminator, &offset)
	binary.PutUint128(data, args.Shares, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Owner,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Vault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Stake,
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
				PublicKey:  accounts.OwnerAta,
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

func parseVaultWithdrawInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+VaultWithdrawInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args VaultWithdrawInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint128(data, &args.Shares, &offset)

	return args, nil
}

// VaultWithdrawParams are the inputs to BuildVaultWithdraw. Owner is required.
type VaultWithdrawParams struct {
	Owner ed25519.PublicKey

	Shares binary.Uint128

	// Vault is used as-is when set, otherwise derived from VaultId.
	Vault   ed25519.PublicKey
	VaultId uint64

	// Mint defaults to the native mint and must be the vault's mint.
	Mint ed25519.PublicKey
}

// BuildVaultWithdraw redeems Shares for their portion of the vault's
// balance.
func BuildVaultWithdraw(params *VaultWithdrawParams) (solana.Instruction, error) {
	if err := solana.RequireKey("owner", params.Owner); err != nil {
		return solana.Instruction{}, err
	}

	vault, err := resolveVault(params.Vault, params.VaultId, params.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}

	stake, _, err := GetStakeAddress(&GetStakeAddressArgs{
		Vault: vault.Vault,
		Owner: params.Owner,
	})
	if err != nil {
		return solana.Instruction{}, err
	}

	ownerAta, err := token.DeriveAssociatedAccount(params.Owner, vault.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewVaultWithdrawInstruction(
		&VaultWithdrawInstructionAccounts{
			Owner:             params.Owner,
			Vault:             vault.Vault,
			Stake:             stake,
			Mint:              vault.Mint,
			VaultTokenAccount: vault.VaultTokenAccount,
			OwnerAta:          ownerAta,
		},
		&VaultWithdrawInstructionArgs{
			Shares: params.Shares,
		},
	), nil
}

package staking

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	VaultDepositInstructionArgsSize = (8) // amount
)

var VaultDepositInstructionDiscriminator = binary.InstructionDiscriminator("vault_deposit")

type VaultDepositInstructionArgs struct {
	Amount uint64 `json:"amount"`
}

type VaultDepositInstructionAccounts struct {
	Owner             ed25519.PublicKey
	Vault             ed25519.PublicKey
	Stake             ed25519.PublicKey
	Mint              ed25519.PublicKey
	VaultTokenAccount ed25519.PublicKey
	OwnerAta          ed25519.PublicKey
}

var vaultDepositAccountNames = []string{
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

func NewVaultDepositInstruction(
	accounts *VaultDepositInstructionAccounts,
	args *VaultDepositInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+VaultDepositInstructionArgsSize)

	binary.PutDiscriminator(data, VaultDepositInstructionDiscriminator, &offset)
	binary.PutUint64(data, args.Amount, &offset)

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

func parseVaultDepositInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+VaultDepositInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args VaultDepositInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint64(data, &args.Amount, &offset)

	return args, nil
}

// VaultDepositParams are the inputs to BuildVaultDeposit. Owner is required.
type VaultDepositParams struct {
	Owner ed25519.PublicKey

	Amount uint64

	// Vault is used as-is when set, otherwise derived from VaultId.
	Vault   ed25519.PublicKey
	VaultId uint64

	// Mint defaults to the native mint and must be the vault's mint.
	Mint ed25519.PublicKey
}

// BuildVaultDeposit moves Amount of the vault mint from the owner into the
// vault in exchange for shares.
func BuildVaultDeposit(params *VaultDepositParams) (solana.Instruction, error) {
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

	return NewVaultDepositInstruction(
		&VaultDepositInstructionAccounts{
			Owner:             params.Owner,
			Vault:             vault.Vault,
			Stake:             stake,
			Mint:              vault.Mint,
			VaultTokenAccount: vault.VaultTokenAccount,
			OwnerAta:          ownerAta,
		},
		&VaultDepositInstructionArgs{
			Amount: params.Amount,
		},
	), nil
}

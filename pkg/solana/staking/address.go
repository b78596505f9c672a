package staking

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

var (
	VaultPrefix = []byte("vault")
	StakePrefix = []byte("stake")
)

type GetVaultAddressArgs struct {
	VaultId uint64
}

func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		VaultPrefix,
		solana.SeedUint64(args.VaultId),
	)
}

type GetStakeAddressArgs struct {
	Vault ed25519.PublicKey
	Owner ed25519.PublicKey
}

func GetStakeAddress(args *GetStakeAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		StakePrefix,
		args.Vault,
		args.Owner,
	)
}

// GetVaultTokenAccountAddress returns the token account holding a vault's
// deposits.
func GetVaultTokenAccountAddress(vault, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return token.DeriveAssociatedAccount(vault, mint)
}

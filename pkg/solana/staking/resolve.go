package staking

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

// vaultAddresses are the accounts every vault instruction touches.
type vaultAddresses struct {
	Vault             ed25519.PublicKey
	Mint              ed25519.PublicKey
	VaultTokenAccount ed25519.PublicKey
}

// resolveVault uses vault when set, otherwise derives it from vaultId. A
// missing mint means the native mint.
func resolveVault(vault ed25519.PublicKey, vaultId uint64, mint ed25519.PublicKey) (*vaultAddresses, error) {
	res := &vaultAddresses{
		Vault: vault,
		Mint:  mint,
	}

	var err error
	if len(res.Vault) == 0 {
		res.Vault, _, err = GetVaultAddress(&GetVaultAddressArgs{VaultId: vaultId})
		if err != nil {
			return nil, err
		}
	} else if err := solana.RequireKey("vault", res.Vault); err != nil {
		return nil, err
	}

	if len(res.Mint) == 0 {
		res.Mint = token.NativeMint
	} else if err := solana.RequireKey("mint", res.Mint); err != nil {
		return nil, err
	}

	res.VaultTokenAccount, err = GetVaultTokenAccountAddress(res.Vault, res.Mint)
	if err != nil {
		return nil, err
	}

	return res, nil
}

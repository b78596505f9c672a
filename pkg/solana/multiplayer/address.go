package multiplayer

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

var (
	GambaStatePrefix = []byte("GAMBA_STATE")
	GamePrefix       = []byte("GAME")
)

func GetGambaStateAddress() (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		GambaStatePrefix,
	)
}

type GetGameAddressArgs struct {
	GameSeed uint64
}

func GetGameAddress(args *GetGameAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		GamePrefix,
		solana.SeedUint64(args.GameSeed),
	)
}

// GetEscrowAddress returns the token account holding a game's wagers.
func GetEscrowAddress(game, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return token.DeriveAssociatedAccount(game, mint)
}

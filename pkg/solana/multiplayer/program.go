package multiplayer

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/system"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("MP5o14fjGUU6G562tivBsvUBohqFxiczbWGHrwXDEyQ")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID           = system.ProgramKey
	SPL_TOKEN_PROGRAM_ID        = token.ProgramKey
	ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

// resolveMint defaults an empty mint to the native mint.
func resolveMint(mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(mint) == 0 {
		return token.NativeMint, nil
	}
	if err := solana.RequireKey("mint", mint); err != nil {
		return nil, err
	}
	return mint, nil
}

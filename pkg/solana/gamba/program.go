package gamba

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/solana/system"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("GambaXcmhJg1vgPm1Gn6mnMKGyyR3X2eSmF6yeU6XWtT")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	METADATA_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"))

	SYSTEM_PROGRAM_ID           = system.ProgramKey
	SPL_TOKEN_PROGRAM_ID        = token.ProgramKey
	ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey

	SYSVAR_RENT_PUBKEY = system.RentSysVar
)

// PublicPoolAuthority is the authority of pools anyone can use.
var PublicPoolAuthority = make(ed25519.PublicKey, ed25519.PublicKeySize)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

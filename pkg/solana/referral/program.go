package referral

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/solana/system"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("RefwFk2PPNd9bPehSyAkrkrehSHkvz6mTAHTNe8v9vH")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var SYSTEM_PROGRAM_ID = system.ProgramKey

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

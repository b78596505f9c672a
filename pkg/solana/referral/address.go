package referral

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

var ReferAccountPrefix = []byte("ReferAccount")

// GetReferAccountAddressArgs identifies the referral a user (Authority)
// holds on one platform (Creator).
type GetReferAccountAddressArgs struct {
	Creator   ed25519.PublicKey
	Authority ed25519.PublicKey
}

func GetReferAccountAddress(args *GetReferAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		ReferAccountPrefix,
		args.Creator,
		args.Authority,
	)
}

package referral

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/gamba-labs/gamba-go/pkg/solana/accounts"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	ReferAccountSize = (8 + // discriminator
		32) // referrer
)

var ReferAccountDiscriminator = binary.AccountDiscriminator("ReferAccount")

type ReferAccount struct {
	Referrer ed25519.PublicKey
}

var ReferAccountShape = accounts.Shape[ReferAccount]{
	Name:          "ReferAccount",
	Discriminator: ReferAccountDiscriminator,
	Size:          ReferAccountSize,
	Decode: func(data []byte) (ReferAccount, error) {
		var obj ReferAccount
		err := obj.Unmarshal(data)
		return obj, err
	},
}

func (obj *ReferAccount) Marshal() []byte {
	data := make([]byte, ReferAccountSize)

	var offset int

	binary.PutDiscriminator(data, ReferAccountDiscriminator, &offset)
	binary.PutKey32(data, obj.Referrer, &offset)

	return data
}

func (obj *ReferAccount) Unmarshal(data []byte) error {
	if len(data) < ReferAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ReferAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey32(data, &obj.Referrer, &offset)

	return nil
}

func (obj *ReferAccount) String() string {
	return fmt.Sprintf(
		"ReferAccount{referrer=%s}",
		base58.Encode(obj.Referrer),
	)
}

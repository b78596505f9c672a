package staking

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/gamba-labs/gamba-go/pkg/solana/accounts"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	StakeAccountSize = (8 + // discriminator
		32 + // vault
		32 + // owner
		16 + // shares
		1) // bump
)

var StakeAccountDiscriminator = binary.AccountDiscriminator("Stake")

type StakeAccount struct {
	Vault  ed25519.PublicKey
	Owner  ed25519.PublicKey
	Shares binary.Uint128
	Bump   uint8
}

var StakeShape = accounts.Shape[StakeAccount]{
	Name:          "Stake",
	Discriminator: StakeAccountDiscriminator,
	Size:          StakeAccountSize,
	Decode: func(data []byte) (StakeAccount, error) {
		var obj StakeAccount
		err := obj.Unmarshal(data)
		return obj, err
	},
}

func (obj *StakeAccount) Marshal() []byte {
	data := make([]byte, StakeAccountSize)

	var offset int

	binary.PutDiscriminator(data, StakeAccountDiscriminator, &offset)
	binary.PutKey32(data, obj.Vault, &offset)
	binary.PutKey32(data, obj.Owner, &offset)
	binary.PutUint128(data, obj.Shares, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *StakeAccount) Unmarshal(data []byte) error {
	if len(data) < StakeAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, StakeAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey32(data, &obj.Vault, &offset)
	binary.GetKey32(data, &obj.Owner, &offset)
	binary.GetUint128(data, &obj.Shares, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *StakeAccount) String() string {
	return fmt.Sprintf(
		"Stake{vault=%s,owner=%s,shares=%s}",
		base58.Encode(obj.Vault),
		base58.Encode(obj.Owner),
		obj.Shares,
	)
}

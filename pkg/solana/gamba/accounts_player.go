package gamba

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/gamba-labs/gamba-go/pkg/solana/accounts"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	PlayerAccountSize = (8 + // discriminator
		1 + // bump
		32 + // user
		8) // nonce
)

var PlayerAccountDiscriminator = binary.AccountDiscriminator("Player")

type PlayerAccount struct {
	Bump  uint8
	User  ed25519.PublicKey
	Nonce uint64
}

var PlayerShape = accounts.Shape[PlayerAccount]{
	Name:          "Player",
	Discriminator: PlayerAccountDiscriminator,
	Size:          PlayerAccountSize,
	Decode: func(data []byte) (PlayerAccount, error) {
		var obj PlayerAccount
		err := obj.Unmarshal(data)
		return obj, err
	},
}

func (obj *PlayerAccount) Marshal() []byte {
	data := make([]byte, PlayerAccountSize)

	var offset int

	binary.PutDiscriminator(data, PlayerAccountDiscriminator, &offset)
	binary.PutUint8(data, obj.Bump, &offset)
	binary.PutKey32(data, obj.User, &offset)
	binary.PutUint64(data, obj.Nonce, &offset)

	return data
}

func (obj *PlayerAccount) Unmarshal(data []byte) error {
	if len(data) < PlayerAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, PlayerAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetKey32(data, &obj.User, &offset)
	binary.GetUint64(data, &obj.Nonce, &offset)

	return nil
}

func (obj *PlayerAccount) String() string {
	return fmt.Sprintf(
		"Player{user=%s,nonce=%d}",
		base58.Encode(obj.User),
		obj.Nonce,
	)
}

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
	VaultAccountSize = (8 + // discriminator
		8 + // vault_id
		32 + // authority
		32 + // mint
		16 + // total_shares
		1) // bump
)

var VaultAccountDiscriminator = binary.AccountDiscriminator("Vault")

type VaultAccount struct {
	VaultId     uint64
	Authority   ed25519.PublicKey
	Mint        ed25519.PublicKey
	TotalShares binary.Uint128
	Bump        uint8
}

var VaultShape = accounts.Shape[VaultAccount]{
	Name:          "Vault",
	Discriminator: VaultAccountDiscriminator,
	Size:          VaultAccountSize,
	Decode: func(data []byte) (VaultAccount, error) {
		var obj VaultAccount
		err := obj.Unmarshal(data)
		return obj, err
	},
}

func (obj *VaultAccount) Marshal() []byte {
	data := make([]byte, VaultAccountSize)

	var offset int

	binary.PutDiscriminator(data, VaultAccountDiscriminator, &offset)
	binary.PutUint64(data, obj.VaultId, &offset)
	binary.PutKey32(data, obj.Authority, &offset)
	binary.PutKey32(data, obj.Mint, &offset)
	binary.PutUint128(data, obj.TotalShares, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *VaultAccount) Unmarshal(data []byte) error {
	if len(data) < VaultAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, VaultAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint64(data, &obj.VaultId, &offset)
	binary.GetKey32(data, &obj.Authority, &offset)
	binary.GetKey32(data, &obj.Mint, &offset)
	binary.GetUint128(data, &obj.TotalShares, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *VaultAccount) String() string {
	return fmt.Sprintf(
		"Vault{vault_id=%d,authority=%s,mint=%s,total_shares=%s}",
		obj.VaultId,
		base58.Encode(obj.Authority),
		base58.Encode(obj.Mint),
		obj.TotalShares,
	)
}

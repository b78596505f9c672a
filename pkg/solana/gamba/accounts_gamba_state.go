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
	GambaStateAccountSize = (8 + // discriminator
		32 + // authority
		32 + // rng_address
		32 + // gamba_fee_address
		8 + // gamba_fee_bps
		8 + // pool_creation_fee
		8 + // default_pool_fee
		8 + // jackpot_payout_to_user_bps
		8 + // jackpot_payout_to_creator_bps
		8 + // jackpot_payout_to_pool_bps
		8 + // jackpot_payout_to_gamba_bps
		8 + // bonus_to_jackpot_ratio_bps
		8 + // max_house_edge_bps
		8 + // max_creator_fee_bps
		8 + // max_payout_bps
		8 + // pool_withdraw_fee_bps
		1 + // pool_creation_allowed
		1 + // pool_deposit_allowed
		1 + // pool_withdraw_allowed
		1 + // playing_allowed
		32 + // distribution_recipient
		1) // bump
)

var GambaStateAccountDiscriminator = binary.AccountDiscriminator("GambaState")

type GambaStateAccount struct {
	Authority                 ed25519.PublicKey
	RngAddress                ed25519.PublicKey
	GambaFeeAddress           ed25519.PublicKey
	GambaFeeBps               uint64
	PoolCreationFee           uint64
	DefaultPoolFee            uint64
	JackpotPayoutToUserBps    uint64
	JackpotPayoutToCreatorBps uint64
	JackpotPayoutToPoolBps    uint64
	JackpotPayoutToGambaBps   uint64
	BonusToJackpotRatioBps    uint64
	MaxHouseEdgeBps           uint64
	MaxCreatorFeeBps          uint64
	MaxPayoutBps              uint64
	PoolWithdrawFeeBps        uint64
	PoolCreationAllowed       bool
	PoolDepositAllowed        bool
	PoolWithdrawAllowed       bool
	PlayingAllowed            bool
	DistributionRecipient     ed25519.PublicKey
	Bump                      uint8
}

var GambaStateShape = accounts.Shape[GambaStateAccount]{
	Name:          "GambaState",
	Discriminator: GambaStateAccountDiscriminator,
	Size:          GambaStateAccountSize,
	Decode: func(data []byte) (GambaStateAccount, error) {
		var obj GambaStateAccount
		err := obj.Unmarshal(data)
		return obj, err
	},
}

func (obj *GambaStateAccount) Marshal() []byte {
	data := make([]byte, GambaStateAccountSize)

	var offset int

	binary.PutDiscriminator(data, GambaStateAccountDiscriminator, &offset)
	binary.PutKey32(data, obj.Authority, &offset)
	binary.PutKey32(data, obj.RngAddress, &offset)
	binary.PutKey32(data, obj.GambaFeeAddress, &offset)
	binary.PutUint64(data, obj.GambaFeeBps, &offset)
	binary.PutUint64(data, obj.PoolCreationFee, &offset)
	binary.PutUint64(data, obj.DefaultPoolFee, &offset)
	binary.PutUint64(data, obj.JackpotPayoutToUserBps, &offset)
	binary.PutUint64(data, obj.JackpotPayoutToCreatorBps, &offset)
	binary.PutUint64(data, obj.JackpotPayoutToPoolBps, &offset)
	binary.PutUint64(data, obj.JackpotPayoutToGambaBps, &offset)
	binary.PutUint64(data, obj.BonusToJackpotRatioBps, &offset)
	binary.PutUint64(data, obj.MaxHouseEdgeBps, &offset)
	binary.PutUint64(data, obj.MaxCreatorFeeBps, &offset)
	binary.PutUint64(data, obj.MaxPayoutBps, &offset)
	binary.PutUint64(data, obj.PoolWithdrawFeeBps, &offset)
	binary.PutBool(data, obj.PoolCreationAllowed, &offset)
	binary.PutBool(data, obj.PoolDepositAllowed, &offset)
	binary.PutBool(data, obj.PoolWithdrawAllowed, &offset)
	binary.PutBool(data, obj.PlayingAllowed, &offset)
	binary.PutKey32(data, obj.DistributionRecipient, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *GambaStateAccount) Unmarshal(data []byte) error {
	if len(data) < GambaStateAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, GambaStateAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey32(data, &obj.Authority, &offset)
	binary.GetKey32(data, &obj.RngAddress, &offset)
	binary.GetKey32(data, &obj.GambaFeeAddress, &offset)
	binary.GetUint64(data, &obj.GambaFeeBps, &offset)
	binary.GetUint64(data, &obj.PoolCreationFee, &offset)
	binary.GetUint64(data, &obj.DefaultPoolFee, &offset)
	binary.GetUint64(data, &obj.JackpotPayoutToUserBps, &offset)
	binary.GetUint64(data, &obj.JackpotPayoutToCreatorBps, &offset)
	binary.GetUint64(data, &obj.JackpotPayoutToPoolBps, &offset)
	binary.GetUint64(data, &obj.JackpotPayoutToGambaBps, &offset)
	binary.GetUint64(data, &obj.BonusToJackpotRatioBps, &offset)
	binary.GetUint64(data, &obj.MaxHouseEdgeBps, &offset)
	binary.GetUint64(data, &obj.MaxCreatorFeeBps, &offset)
	binary.GetUint64(data, &obj.MaxPayoutBps, &offset)
	binary.GetUint64(data, &obj.PoolWithdrawFeeBps, &offset)
	binary.GetBool(data, &obj.PoolCreationAllowed, &offset)
	binary.GetBool(data, &obj.PoolDepositAllowed, &offset)
	binary.GetBool(data, &obj.PoolWithdrawAllowed, &offset)
	binary.GetBool(data, &obj.PlayingAllowed, &offset)
	binary.GetKey32(data, &obj.DistributionRecipient, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *GambaStateAccount) String() string {
	return fmt.Sprintf(
		"GambaState{authority=%s,rng_address=%s,gamba_fee_address=%s,gamba_fee_bps=%d,max_house_edge_bps=%d,max_creator_fee_bps=%d,max_payout_bps=%d,playing_allowed=%v,distribution_recipient=%s}",
		base58.Encode(obj.Authority),
		base58.Encode(obj.RngAddress),
		base58.Encode(obj.GambaFeeAddress),
		obj.GambaFeeBps,
		obj.MaxHouseEdgeBps,
		obj.MaxCreatorFeeBps,
		obj.MaxPayoutBps,
		obj.PlayingAllowed,
		base58.Encode(obj.DistributionRecipient),
	)
}

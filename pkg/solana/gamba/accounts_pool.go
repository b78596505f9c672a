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
	PoolAccountSize = (8 + // discriminator
		1 + // bump
		32 + // pool_authority
		32 + // underlying_token_mint
		32 + // lookup_address
		1 + // anti_spam_fee_exempt
		8 + // min_wager
		8 + // plays
		8 + // liquidity_checkpoint
		1 + // deposit_limit
		8 + // deposit_limit_amount
		1 + // custom_pool_fee
		8 + // custom_pool_fee_bps
		1 + // custom_gamba_fee
		8 + // custom_gamba_fee_bps
		1 + // custom_max_payout
		8) // custom_max_payout_bps
)

var PoolAccountDiscriminator = binary.AccountDiscriminator("Pool")

type PoolAccount struct {
	Bump                uint8
	PoolAuthority       ed25519.PublicKey
	UnderlyingTokenMint ed25519.PublicKey
	LookupAddress       ed25519.PublicKey
	AntiSpamFeeExempt   bool
	MinWager            uint64
	Plays               uint64
	LiquidityCheckpoint uint64
	DepositLimit        bool
	DepositLimitAmount  uint64
	CustomPoolFee       bool
	CustomPoolFeeBps    uint64
	CustomGambaFee      bool
	CustomGambaFeeBps   uint64
	CustomMaxPayout     bool
	CustomMaxPayoutBps  uint64
}

var PoolShape = accounts.Shape[PoolAccount]{
	Name:          "Pool",
	Discriminator: PoolAccountDiscriminator,
	Size:          PoolAccountSize,
	Decode: func(data []byte) (PoolAccount, error) {
		var obj PoolAccount
		err := obj.Unmarshal(data)
		return obj, err
	},
}

// IsPublic returns whether anyone may play against the pool.
func (obj *PoolAccount) IsPublic() bool {
	return bytes.Equal(obj.PoolAuthority, PublicPoolAuthority)
}

func (obj *PoolAccount) Marshal() []byte {
	data := make([]byte, PoolAccountSize)

	var offset int

	binary.PutDiscriminator(data, PoolAccountDiscriminator, &offset)
	binary.PutUint8(data, obj.Bump, &offset)
	binary.PutKey32(data, obj.PoolAuthority, &offset)
	binary.PutKey32(data, obj.UnderlyingTokenMint, &offset)
	binary.PutKey32(data, obj.LookupAddress, &offset)
	binary.PutBool(data, obj.AntiSpamFeeExempt, &offset)
	binary.PutUint64(data, obj.MinWager, &offset)
	binary.PutUint64(data, obj.Plays, &offset)
	binary.PutUint64(data, obj.LiquidityCheckpoint, &offset)
	binary.PutBool(data, obj.DepositLimit, &offset)
	binary.PutUint64(data, obj.DepositLimitAmount, &offset)
	binary.PutBool(data, obj.CustomPoolFee, &offset)
	binary.PutUint64(data, obj.CustomPoolFeeBps, &offset)
	binary.PutBool(data, obj.CustomGambaFee, &offset)
	binary.PutUint64(data, obj.CustomGambaFeeBps, &offset)
	binary.PutBool(data, obj.CustomMaxPayout, &offset)
	binary.PutUint64(data, obj.CustomMaxPayoutBps, &offset)

	return data
}

func (obj *PoolAccount) Unmarshal(data []byte) error {
	if len(data) < PoolAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, PoolAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetKey32(data, &obj.PoolAuthority, &offset)
	binary.GetKey32(data, &obj.UnderlyingTokenMint, &offset)
	binary.GetKey32(data, &obj.LookupAddress, &offset)
	binary.GetBool(data, &obj.AntiSpamFeeExempt, &offset)
	binary.GetUint64(data, &obj.MinWager, &offset)
	binary.GetUint64(data, &obj.Plays, &offset)
	binary.GetUint64(data, &obj.LiquidityCheckpoint, &offset)
	binary.GetBool(data, &obj.DepositLimit, &offset)
	binary.GetUint64(data, &obj.DepositLimitAmount, &offset)
	binary.GetBool(data, &obj.CustomPoolFee, &offset)
	binary.GetUint64(data, &obj.CustomPoolFeeBps, &offset)
	binary.GetBool(data, &obj.CustomGambaFee, &offset)
	binary.GetUint64(data, &obj.CustomGambaFeeBps, &offset)
	binary.GetBool(data, &obj.CustomMaxPayout, &offset)
	binary.GetUint64(data, &obj.CustomMaxPayoutBps, &offset)

	return nil
}

func (obj *PoolAccount) String() string {
	return fmt.Sprintf(
		"Pool{pool_authority=%s,underlying_token_mint=%s,lookup_address=%s,min_wager=%d,plays=%d,liquidity_checkpoint=%d,deposit_limit=%v,deposit_limit_amount=%d}",
		base58.Encode(obj.PoolAuthority),
		base58.Encode(obj.UnderlyingTokenMint),
		base58.Encode(obj.LookupAddress),
		obj.MinWager,
		obj.Plays,
		obj.LiquidityCheckpoint,
		obj.DepositLimit,
		obj.DepositLimitAmount,
	)
}

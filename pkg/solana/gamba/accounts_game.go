package gamba

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/mr-tron/base58"

	"github.com/gamba-labs/gamba-go/pkg/solana/accounts"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	gameAccountFixedSize = (8 + // discriminator
		1 + // bump
		8 + // nonce
		32 + // user
		1 + // status
		32 + // pool
		32 + // creator
		8 + // timestamp
		8 + // wager
		4 + // result
		8 + // creator_fee
		8 + // gamba_fee
		8 + // pool_fee
		8) // jackpot_fee

	// MinGameAccountSize is the size of a game with an empty bet, empty
	// seeds and empty metadata.
	MinGameAccountSize = (gameAccountFixedSize +
		4 + // bet
		4 + // client_seed
		4 + // rng_seed
		4 + // next_rng_seed_hashed
		4) // metadata
)

var GameAccountDiscriminator = binary.AccountDiscriminator("Game")

type GameAccount struct {
	Bump              uint8
	Nonce             uint64
	User              ed25519.PublicKey
	Status            GameStatus
	Pool              ed25519.PublicKey
	Creator           ed25519.PublicKey
	Timestamp         int64
	Wager             uint64
	Result            uint32
	CreatorFee        uint64
	GambaFee          uint64
	PoolFee           uint64
	JackpotFee        uint64
	Bet               []uint32
	ClientSeed        string
	RngSeed           string
	NextRngSeedHashed string
	Metadata          string
}

var GameShape = accounts.Shape[GameAccount]{
	Name:          "Game",
	Discriminator: GameAccountDiscriminator,
	Size:          MinGameAccountSize,
	Decode: func(data []byte) (GameAccount, error) {
		var obj GameAccount
		err := obj.Unmarshal(data)
		return obj, err
	},
}

func (obj *GameAccount) Size() int {
	return (gameAccountFixedSize +
		binary.Uint32VecSize(obj.Bet) +
		binary.StringSize(obj.ClientSeed) +
		binary.StringSize(obj.RngSeed) +
		binary.StringSize(obj.NextRngSeedHashed) +
		binary.StringSize(obj.Metadata))
}

func (obj *GameAccount) Marshal() []byte {
	data := make([]byte, obj.Size())

	var offset int

	binary.PutDiscriminator(data, GameAccountDiscriminator, &offset)
	binary.PutUint8(data, obj.Bump, &offset)
	binary.PutUint64(data, obj.Nonce, &offset)
	binary.PutKey32(data, obj.User, &offset)
	binary.PutUint8(data, uint8(obj.Status), &offset)
	binary.PutKey32(data, obj.Pool, &offset)
	binary.PutKey32(data, obj.Creator, &offset)
	binary.PutInt64(data, obj.Timestamp, &offset)
	binary.PutUint64(data, obj.Wager, &offset)
	binary.PutUint32(data, obj.Result, &offset)
	binary.PutUint64(data, obj.CreatorFee, &offset)
	binary.PutUint64(data, obj.GambaFee, &offset)
	binary.PutUint64(data, obj.PoolFee, &offset)
	binary.PutUint64(data, obj.JackpotFee, &offset)
	binary.PutUint32Vec(data, obj.Bet, &offset)
	binary.PutString(data, obj.ClientSeed, &offset)
	binary.PutString(data, obj.RngSeed, &offset)
	binary.PutString(data, obj.NextRngSeedHashed, &offset)
	binary.PutString(data, obj.Metadata, &offset)

	return data
}

func (obj *GameAccount) Unmarshal(data []byte) error {
	if len(data) < MinGameAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, GameAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	var status uint8
	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetUint64(data, &obj.Nonce, &offset)
	binary.GetKey32(data, &obj.User, &offset)
	binary.GetUint8(data, &status, &offset)
	binary.GetKey32(data, &obj.Pool, &offset)
	binary.GetKey32(data, &obj.Creator, &offset)
	binary.GetInt64(data, &obj.Timestamp, &offset)
	binary.GetUint64(data, &obj.Wager, &offset)
	binary.GetUint32(data, &obj.Result, &offset)
	binary.GetUint64(data, &obj.CreatorFee, &offset)
	binary.GetUint64(data, &obj.GambaFee, &offset)
	binary.GetUint64(data, &obj.PoolFee, &offset)
	binary.GetUint64(data, &obj.JackpotFee, &offset)
	obj.Status = GameStatus(status)

	if err := binary.GetUint32Vec(data, &obj.Bet, &offset); err != nil {
		return ErrInvalidAccountData
	}
	for _, dst := range []*string{&obj.ClientSeed, &obj.RngSeed, &obj.NextRngSeedHashed, &obj.Metadata} {
		if err := binary.GetString(data, dst, &offset); err != nil {
			return ErrInvalidAccountData
		}
	}

	return nil
}

func (obj *GameAccount) String() string {
	return fmt.Sprintf(
		"Game{nonce=%d,user=%s,status=%s,pool=%s,creator=%s,timestamp=%s,wager=%d,bet=%v,result=%d,client_seed=%s,metadata=%s}",
		obj.Nonce,
		base58.Encode(obj.User),
		obj.Status,
		base58.Encode(obj.Pool),
		base58.Encode(obj.Creator),
		time.Unix(obj.Timestamp, 0).UTC().String(),
		obj.Wager,
		obj.Bet,
		obj.Result,
		obj.ClientSeed,
		obj.Metadata,
	)
}

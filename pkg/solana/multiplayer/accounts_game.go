package multiplayer

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/gamba-labs/gamba-go/pkg/solana/accounts"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	PlayerEntrySize = (32 + // user
		32 + // creator_address
		4 + // creator_fee_bps
		8 + // wager
		1) // team

	gameAccountFixedSize = (8 + // discriminator
		32 + // game_maker
		1 + // state
		32 + // mint
		4 + // max_players
		1 + // num_teams
		1 + // winners
		8 + // game_seed
		8 + // game_expiration_timestamp
		1 + // wager_type
		8 + // wager
		8 + // min_bet
		8 + // max_bet
		4) // creator_fee_bps

	MinGameAccountSize = gameAccountFixedSize + 4 // players
)

var GameAccountDiscriminator = binary.AccountDiscriminator("Game")

type PlayerEntry struct {
	User           ed25519.PublicKey
	CreatorAddress ed25519.PublicKey
	CreatorFeeBps  uint32
	Wager          uint64
	Team           uint8
}

type GameAccount struct {
	GameMaker               ed25519.PublicKey
	State                   GameState
	Mint                    ed25519.PublicKey
	MaxPlayers              uint32
	NumTeams                uint8
	Winners                 uint8
	GameSeed                uint64
	GameExpirationTimestamp int64
	WagerType               WagerType
	Wager                   uint64
	MinBet                  uint64
	MaxBet                  uint64
	CreatorFeeBps           uint32
	Players                 []PlayerEntry
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
	return MinGameAccountSize + len(obj.Players)*PlayerEntrySize
}

// Player returns the entry of user, if it has joined.
func (obj *GameAccount) Player(user ed25519.PublicKey) (PlayerEntry, bool) {
	for _, p := range obj.Players {
		if bytes.Equal(p.User, user) {
			return p, true
		}
	}
	return PlayerEntry{}, false
}

func (obj *GameAccount) Marshal() []byte {
	data := make([]byte, obj.Size())

	var offset int

	binary.PutDiscriminator(data, GameAccountDiscriminator, &offset)
	binary.PutKey32(data, obj.GameMaker, &offset)
	binary.PutUint8(data, uint8(obj.State), &offset)
	binary.PutKey32(data, obj.Mint, &offset)
	binary.PutUint32(data, obj.MaxPlayers, &offset)
	binary.PutUint8(data, obj.NumTeams, &offset)
	binary.PutUint8(data, obj.Winners, &offset)
	binary.PutUint64(data, obj.GameSeed, &offset)
	binary.PutInt64(data, obj.GameExpirationTimestamp, &offset)
	binary.PutUint8(data, uint8(obj.WagerType), &offset)
	binary.PutUint64(data, obj.Wager, &offset)
	binary.PutUint64(data, obj.MinBet, &offset)
	binary.PutUint64(data, obj.MaxBet, &offset)
	binary.PutUint32(data, obj.CreatorFeeBps, &offset)

	binary.PutUint32(data, uint32(len(obj.Players)), &offset)
	for _, p := range obj.Players {
		binary.PutKey32(data, p.User, &offset)
		binary.PutKey32(data, p.CreatorAddress, &offset)
		binary.PutUint32(data, p.CreatorFeeBps, &offset)
		binary.PutUint64(data, p.Wager, &offset)
		binary.PutUint8(data, p.Team, &offset)
	}

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

	var state, wagerType uint8
	binary.GetKey32(data, &obj.GameMaker, &offset)
	binary.GetUint8(data, &state, &offset)
	binary.GetKey32(data, &obj.Mint, &offset)
	binary.GetUint32(data, &obj.MaxPlayers, &offset)
	binary.GetUint8(data, &obj.NumTeams, &offset)
	binary.GetUint8(data, &obj.Winners, &offset)
	binary.GetUint64(data, &obj.GameSeed, &offset)
	binary.GetInt64(data, &obj.GameExpirationTimestamp, &offset)
	binary.GetUint8(data, &wagerType, &offset)
	binary.GetUint64(data, &obj.Wager, &offset)
	binary.GetUint64(data, &obj.MinBet, &offset)
	binary.GetUint64(data, &obj.MaxBet, &offset)
	binary.GetUint32(data, &obj.CreatorFeeBps, &offset)
	obj.State = GameState(state)
	obj.WagerType = WagerType(wagerType)

	count, err := binary.GetVecLen(data, PlayerEntrySize, &offset)
	if err != nil {
		return ErrInvalidAccountData
	}

	obj.Players = make([]PlayerEntry, count)
	for i := range obj.Players {
		p := &obj.Players[i]
		binary.GetKey32(data, &p.User, &offset)
		binary.GetKey32(data, &p.CreatorAddress, &offset)
		binary.GetUint32(data, &p.CreatorFeeBps, &offset)
		binary.GetUint64(data, &p.Wager, &offset)
		binary.GetUint8(data, &p.Team, &offset)
	}

	return nil
}

func (obj *GameAccount) String() string {
	players := make([]string, len(obj.Players))
	for i, p := range obj.Players {
		players[i] = fmt.Sprintf("%s:%d:%d", base58.Encode(p.User), p.Team, p.Wager)
	}

	return fmt.Sprintf(
		"Game{game_maker=%s,state=%s,mint=%s,game_seed=%d,max_players=%d,winners=%d,wager_type=%s,wager=%d,expiration=%d,players=[%s]}",
		base58.Encode(obj.GameMaker),
		obj.State,
		base58.Encode(obj.Mint),
		obj.GameSeed,
		obj.MaxPlayers,
		obj.Winners,
		obj.WagerType,
		obj.Wager,
		obj.GameExpirationTimestamp,
		strings.Join(players, ","),
	)
}

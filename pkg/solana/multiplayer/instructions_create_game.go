package multiplayer

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	CreateGameInstructionArgsSize = (4 + // max_players
		1 + // num_teams
		1 + // winners
		8 + // duration_seconds
		1 + // wager_type
		8 + // wager
		8 + // min_bet
		8 + // max_bet
		4 + // creator_fee_bps
		8) // game_seed
)

var CreateGameInstructionDiscriminator = binary.InstructionDiscriminator("create_game")

type CreateGameInstructionArgs struct {
	MaxPlayers      uint32 `json:"max_players"`
	NumTeams        uint8  `json:"num_teams"`
	Winners         uint8  `json:"winners"`
	DurationSeconds int64  `json:"duration_seconds"`
	WagerType       uint8  `json:"wager_type"`
	Wager           uint64 `json:"wager"`
	MinBet          uint64 `json:"min_bet"`
	MaxBet          uint64 `json:"max_bet"`
	CreatorFeeBps   uint32 `json:"creator_fee_bps"`
	GameSeed        uint64 `json:"game_seed"`
}

type CreateGameInstructionAccounts struct {
	GameMaker  ed25519.PublicKey
	GambaState ed25519.PublicKey
	Game       ed25519.PublicKey
	Mint       ed25519.PublicKey

	// Token accounts are only passed for non-native mints.
	EscrowTokenAccount ed25519.PublicKey
}

var createGameAccountNames = []string{
	"game_maker",
	"gamba_state",
	"game",
	"mint",
	"system_program",
	"escrow_token_account",
	"token_program",
	"associated_token_program",
}

func NewCreateGameInstruction(
	accounts *CreateGameInstructionAccounts,
	args *CreateGameInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+CreateGameInstructionArgsSize)

	binary.PutDiscriminator(data, CreateGameInstructionDiscriminator, &offset)
	binary.PutUint32(data, args.MaxPlayers, &offset)
	binary.PutUint8(data, args.NumTeams, &offset)
	binary.PutUint8(data, args.Winners, &offset)
	binary.PutInt64(data, args.DurationSeconds, &offset)
	binary.PutUint8(data, args.WagerType, &offset)
	binary.PutUint64(data, args.Wager, &offset)
	binary.PutUint64(data, args.MinBet, &offset)
	binary.PutUint64(data, args.MaxBet, &offset)
	binary.PutUint32(data, args.CreatorFeeBps, &offset)
	binary.PutUint64(data, args.GameSeed, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.GameMaker,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.GambaState,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Game,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Mint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	}

	if !token.IsNativeMint(accounts.Mint) {
		metas = append(
			metas,
			solana.AccountMeta{
				PublicKey:  accounts.EscrowTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		)
	}

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: metas,
	}
}

func parseCreateGameInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+CreateGameInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args CreateGameInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint32(data, &args.MaxPlayers, &offset)
	binary.GetUint8(data, &args.NumTeams, &offset)
	binary.GetUint8(data, &args.Winners, &offset)
	binary.GetInt64(data, &args.DurationSeconds, &offset)
	binary.GetUint8(data, &args.WagerType, &offset)
	binary.GetUint64(data, &args.Wager, &offset)
	binary.GetUint64(data, &args.MinBet, &offset)
	binary.GetUint64(data, &args.MaxBet, &offset)
	binary.GetUint32(data, &args.CreatorFeeBps, &offset)
	binary.GetUint64(data, &args.GameSeed, &offset)

	return args, nil
}

// CreateGameParams are the inputs to BuildCreateGame. GameMaker and
// MaxPlayers are required. GameSeed is normally taken from a SeedGenerator.
type CreateGameParams struct {
	GameMaker ed25519.PublicKey
	GameSeed  uint64

	// Mint defaults to the native mint.
	Mint ed25519.PublicKey

	MaxPlayers      uint32
	NumTeams        uint8
	Winners         uint8
	DurationSeconds int64
	WagerType       WagerType
	Wager           uint64
	MinBet          uint64
	MaxBet          uint64
	CreatorFeeBps   uint32
}

func BuildCreateGame(params *CreateGameParams) (solana.Instruction, error) {
	if err := solana.RequireKey("game maker", params.GameMaker); err != nil {
		return solana.Instruction{}, err
	}
	if params.MaxPlayers == 0 {
		return solana.Instruction{}, solana.NewValidationError("max players is required")
	}

	mint, err := resolveMint(params.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}

	gambaState, _, err := GetGambaStateAddress()
	if err != nil {
		return solana.Instruction{}, err
	}
	game, _, err := GetGameAddress(&GetGameAddressArgs{GameSeed: params.GameSeed})
	if err != nil {
		return solana.Instruction{}, err
	}

	ixAccounts := &CreateGameInstructionAccounts{
		GameMaker:  params.GameMaker,
		GambaState: gambaState,
		Game:       game,
		Mint:       mint,
	}
	if !token.IsNativeMint(mint) {
		ixAccounts.EscrowTokenAccount, err = GetEscrowAddress(game, mint)
		if err != nil {
			return solana.Instruction{}, err
		}
	}

	return NewCreateGameInstruction(ixAccounts, &CreateGameInstructionArgs{
		MaxPlayers:      params.MaxPlayers,
		NumTeams:        params.NumTeams,
		Winners:         params.Winners,
		DurationSeconds: params.DurationSeconds,
		WagerType:       uint8(params.WagerType),
		Wager:           params.Wager,
		MinBet:          params.MinBet,
		MaxBet:          params.MaxBet,
		CreatorFeeBps:   params.CreatorFeeBps,
		GameSeed:        params.GameSeed,
	}), nil
}

package multiplayer

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	JoinGameInstructionArgsSize = (4 + // creator_fee_bps
		1 + // team
		8) // wager
)

var JoinGameInstructionDiscriminator = binary.InstructionDiscriminator("join_game")

type JoinGameInstructionArgs struct {
	CreatorFeeBps uint32 `json:"creator_fee_bps"`
	Team          uint8  `json:"team"`
	Wager         uint64 `json:"wager"`
}

type JoinGameInstructionAccounts struct {
	User           ed25519.PublicKey
	GambaState     ed25519.PublicKey
	Game           ed25519.PublicKey
	Mint           ed25519.PublicKey
	CreatorAddress ed25519.PublicKey

	// Token accounts are only passed for non-native mints.
	EscrowTokenAccount ed25519.PublicKey
	PlayerAta          ed25519.PublicKey
	CreatorAta         ed25519.PublicKey
}

var joinGameAccountNames = []string{
	"user",
	"gamba_state",
	"game",
	"mint",
	"creator_address",
	"system_program",
	"escrow_token_account",
	"player_ata",
	"creator_ata",
	"token_program",
	"associated_token_program",
}

func NewJoinGameInstruction(
	accounts *JoinGameInstructionAccounts,
	args *JoinGameInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+JoinGameInstructionArgsSize)

	binary.PutDiscriminator(data, JoinGameInstructionDiscriminator, &offset)
	binary.PutUint32(data, args.CreatorFeeBps, &offset)
	binary.PutUint8(data, args.Team, &offset)
	binary.PutUint64(data, args.Wager, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.User,
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
			PublicKey:  accounts.CreatorAddress,
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
				PublicKey:  accounts.PlayerAta,
				IsWritable: true,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.CreatorAta,
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

func parseJoinGameInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+JoinGameInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args JoinGameInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint32(data, &args.CreatorFeeBps, &offset)
	binary.GetUint8(data, &args.Team, &offset)
	binary.GetUint64(data, &args.Wager, &offset)

	return args, nil
}

// JoinGameParams are the inputs to BuildJoinGame and BuildEditBet. User and
// Game are required.
type JoinGameParams struct {
	User ed25519.PublicKey
	Game ed25519.PublicKey

	// Mint defaults to the native mint and must be the game's mint.
	Mint ed25519.PublicKey

	// Creator defaults to User.
	Creator       ed25519.PublicKey
	CreatorFeeBps uint32

	Team  uint8
	Wager uint64
}

func BuildJoinGame(params *JoinGameParams) (solana.Instruction, error) {
	if err := solana.RequireKey("user", params.User); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("game", params.Game); err != nil {
		return solana.Instruction{}, err
	}

	mint, err := resolveMint(params.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}

	creator := params.Creator
	if len(creator) == 0 {
		creator = params.User
	} else if err := solana.RequireKey("creator", creator); err != nil {
		return solana.Instruction{}, err
	}

	gambaState, _, err := GetGambaStateAddress()
	if err != nil {
		return solana.Instruction{}, err
	}

	ixAccounts := &JoinGameInstructionAccounts{
		User:           params.User,
		GambaState:     gambaState,
		Game:           params.Game,
		Mint:           mint,
		CreatorAddress: creator,
	}
	if !token.IsNativeMint(mint) {
		if ixAccounts.EscrowTokenAccount, err = GetEscrowAddress(params.Game, mint); err != nil {
			return solana.Instruction{}, err
		}
		if ixAccounts.PlayerAta, err = token.DeriveAssociatedAccount(params.User, mint); err != nil {
			return solana.Instruction{}, err
		}
		if ixAccounts.CreatorAta, err = token.DeriveAssociatedAccount(creator, mint); err != nil {
			return solana.Instruction{}, err
		}
	}

	return NewJoinGameInstruction(ixAccounts, &JoinGameInstructionArgs{
		CreatorFeeBps: params.CreatorFeeBps,
		Team:          params.Team,
		Wager:         params.Wager,
	}), nil
}

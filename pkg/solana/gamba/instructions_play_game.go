package gamba

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/accounts"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

var PlayGameInstructionDiscriminator = binary.InstructionDiscriminator("play_game")

type PlayGameInstructionArgs struct {
	Wager         uint64   `json:"wager"`
	Bet           []uint32 `json:"bet"`
	ClientSeed    string   `json:"client_seed"`
	CreatorFeeBps uint32   `json:"creator_fee_bps"`
	JackpotFeeBps uint32   `json:"jackpot_fee_bps"`
	Metadata      string   `json:"metadata"`
}

func (args *PlayGameInstructionArgs) Size() int {
	return (8 + // wager
		binary.Uint32VecSize(args.Bet) + // bet
		binary.StringSize(args.ClientSeed) + // client_seed
		4 + // creator_fee_bps
		4 + // jackpot_fee_bps
		binary.StringSize(args.Metadata)) // metadata
}

type PlayGameInstructionAccounts struct {
	User                    ed25519.PublicKey
	Player                  ed25519.PublicKey
	Game                    ed25519.PublicKey
	GambaState              ed25519.PublicKey
	Pool                    ed25519.PublicKey
	UnderlyingTokenMint     ed25519.PublicKey
	PoolJackpotTokenAccount ed25519.PublicKey
	PlayerAta               ed25519.PublicKey
	UserUnderlyingAta       ed25519.PublicKey
	Creator                 ed25519.PublicKey
	CreatorAta              ed25519.PublicKey

	// Both bonus accounts are included only when both are set.
	UserBonusAta   ed25519.PublicKey
	PlayerBonusAta ed25519.PublicKey
}

var playGameAccountNames = []string{
	"user",
	"player",
	"game",
	"gamba_state",
	"pool",
	"underlying_token_mint",
	"pool_jackpot_token_account",
	"player_ata",
	"user_underlying_ata",
	"creator",
	"creator_ata",
	"system_program",
	"token_program",
	"associated_token_program",
	"user_bonus_ata",
	"player_bonus_ata",
}

func NewPlayGameInstruction(
	accounts *PlayGameInstructionAccounts,
	args *PlayGameInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+args.Size())

	binary.PutDiscriminator(data, PlayGameInstructionDiscriminator, &offset)
	binary.PutUint64(data, args.Wager, &offset)
	binary.PutUint32Vec(data, args.Bet, &offset)
	binary.PutString(data, args.ClientSeed, &offset)
	binary.PutUint32(data, args.CreatorFeeBps, &offset)
	binary.PutUint32(data, args.JackpotFeeBps, &offset)
	binary.PutString(data, args.Metadata, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.User,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Player,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Game,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.GambaState,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Pool,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.UnderlyingTokenMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.PoolJackpotTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.PlayerAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.UserUnderlyingAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Creator,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.CreatorAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SPL_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	}

	if len(accounts.UserBonusAta) > 0 && len(accounts.PlayerBonusAta) > 0 {
		metas = append(
			metas,
			solana.AccountMeta{
				PublicKey:  accounts.UserBonusAta,
				IsWritable: true,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.PlayerBonusAta,
				IsWritable: true,
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

func parsePlayGameInstructionArgs(data []byte) (interface{}, error) {
	if len(data) < binary.DiscriminatorSize+8+4+4+4+4+4 {
		return nil, ErrInvalidInstructionData
	}

	var args PlayGameInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint64(data, &args.Wager, &offset)
	if err := binary.GetUint32Vec(data, &args.Bet, &offset); err != nil {
		return nil, err
	}
	if err := binary.GetString(data, &args.ClientSeed, &offset); err != nil {
		return nil, err
	}
	if len(data) < offset+4+4 {
		return nil, ErrInvalidInstructionData
	}
	binary.GetUint32(data, &args.CreatorFeeBps, &offset)
	binary.GetUint32(data, &args.JackpotFeeBps, &offset)
	if err := binary.GetString(data, &args.Metadata, &offset); err != nil {
		return nil, err
	}

	return args, nil
}

// BalanceReader is the transport capability play_game resolution needs.
type BalanceReader interface {
	accounts.AccountReader
	GetTokenAccountBalance(ed25519.PublicKey) (uint64, uint64, error)
}

// PlayGameParams are the inputs to BuildPlayGame. Only User and Bet are
// required.
type PlayGameParams struct {
	User ed25519.PublicKey

	Wager         uint64
	Bet           []uint32
	ClientSeed    string
	CreatorFeeBps uint32
	JackpotFeeBps uint32
	Metadata      string

	// Pool is used as-is when set, otherwise it is derived from Mint and
	// PoolAuthority.
	Pool ed25519.PublicKey

	// Mint defaults to the explicit pool's underlying mint, then to the
	// native mint.
	Mint ed25519.PublicKey

	// PoolAuthority defaults to the public pool authority.
	PoolAuthority ed25519.PublicKey

	// Creator defaults to User.
	Creator ed25519.PublicKey
}

var log = logrus.StandardLogger().WithField("type", "solana/gamba")

// BuildPlayGame resolves the play_game accounts and returns the
// instruction.
//
// Resolution:
//   - User and a non-empty Bet are required.
//   - Pool is used as-is when set, otherwise derived from the mint and authority.
//   - Mint is used as-is when set, otherwise read from an explicit pool's
//     account, otherwise the native mint.
//   - The bonus account pair is included only when the user's bonus token
//     account holds a positive balance.
func BuildPlayGame(reader BalanceReader, params *PlayGameParams) (solana.Instruction, error) {
	if err := solana.RequireKey("user", params.User); err != nil {
		return solana.Instruction{}, err
	}
	if len(params.Bet) == 0 {
		return solana.Instruction{}, solana.NewValidationError("bet is required")
	}
	if len(params.Mint) == 0 && len(params.Pool) > 0 && reader == nil {
		return solana.Instruction{}, solana.NewValidationError("mint is required when no reader is available")
	}

	log := log.WithFields(logrus.Fields{
		"method": "BuildPlayGame",
		"user":   base58.Encode(params.User),
	})

	mint := params.Mint
	if len(mint) == 0 && len(params.Pool) > 0 {
		if err := solana.RequireKey("pool", params.Pool); err != nil {
			return solana.Instruction{}, err
		}

		pool, err := accounts.FetchOne(reader, params.Pool, PoolShape)
		if err != nil {
			return solana.Instruction{}, err
		}
		mint = pool.UnderlyingTokenMint
	}

	pool, err := resolvePool(params.Pool, mint, params.PoolAuthority)
	if err != nil {
		return solana.Instruction{}, err
	}
	player, err := resolvePlayer(params.User)
	if err != nil {
		return solana.Instruction{}, err
	}

	creator, err := orDefault("creator", params.Creator, params.User)
	if err != nil {
		return solana.Instruction{}, err
	}

	userAta, err := token.DeriveAssociatedAccount(params.User, pool.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}
	creatorAta, err := token.DeriveAssociatedAccount(creator, pool.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}
	userBonusAta, err := token.DeriveAssociatedAccount(params.User, pool.BonusMint)
	if err != nil {
		return solana.Instruction{}, err
	}

	ixAccounts := &PlayGameInstructionAccounts{
		User:                    params.User,
		Player:                  player.Player,
		Game:                    player.Game,
		GambaState:              pool.GambaState,
		Pool:                    pool.Pool,
		UnderlyingTokenMint:     pool.Mint,
		PoolJackpotTokenAccount: pool.JackpotTokenAccount,
		PlayerAta:               player.PlayerTokenAccount,
		UserUnderlyingAta:       userAta,
		Creator:                 creator,
		CreatorAta:              creatorAta,
	}

	if hasBonusBalance(log, reader, userBonusAta) {
		ixAccounts.UserBonusAta = userBonusAta
		ixAccounts.PlayerBonusAta = player.PlayerBonusTokenAccount
	}

	return NewPlayGameInstruction(ixAccounts, &PlayGameInstructionArgs{
		Wager:         params.Wager,
		Bet:           params.Bet,
		ClientSeed:    params.ClientSeed,
		CreatorFeeBps: params.CreatorFeeBps,
		JackpotFeeBps: params.JackpotFeeBps,
		Metadata:      params.Metadata,
	}), nil
}

// hasBonusBalance treats a failed balance lookup as no balance.
func hasBonusBalance(log *logrus.Entry, reader BalanceReader, userBonusAta ed25519.PublicKey) bool {
	if reader == nil {
		return false
	}

	balance, _, err := reader.GetTokenAccountBalance(userBonusAta)
	if err == solana.ErrNoBalance {
		return false
	} else if err != nil {
		log.WithError(err).Debug("bonus balance unavailable, omitting bonus accounts")
		return false
	}

	return balance > 0
}

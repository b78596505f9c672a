package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	PoolMintBonusTokensInstructionArgsSize = (8) // amount
)

var PoolMintBonusTokensInstructionDiscriminator = binary.InstructionDiscriminator("pool_mint_bonus_tokens")

type PoolMintBonusTokensInstructionArgs struct {
	Amount uint64 `json:"amount"`
}

type PoolMintBonusTokensInstructionAccounts struct {
	User                            ed25519.PublicKey
	GambaState                      ed25519.PublicKey
	Pool                            ed25519.PublicKey
	UnderlyingTokenMint             ed25519.PublicKey
	PoolBonusUnderlyingTokenAccount ed25519.PublicKey
	BonusMint                       ed25519.PublicKey
	UserUnderlyingAta               ed25519.PublicKey
	UserBonusAta                    ed25519.PublicKey
}

var poolMintBonusTokensAccountNames = []string{
	"user",
	"gamba_state",
	"pool",
	"underlying_token_mint",
	"pool_bonus_underlying_token_account",
	"bonus_mint",
	"user_underlying_ata",
	"user_bonus_ata",
	"associated_token_program",
	"token_program",
	"system_program",
}

func NewPoolMintBonusTokensInstruction(
	accounts *PoolMintBonusTokensInstructionAccounts,
	args *PoolMintBonusTokensInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+PoolMintBonusTokensInstructionArgsSize)

	binary.PutDiscriminator(data, PoolMintBonusTokensInstructionDiscriminator, &offset)
	binary.PutUint64(data, args.Amount, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
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
				PublicKey:  accounts.PoolBonusUnderlyingTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.BonusMint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserUnderlyingAta,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserBonusAta,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func parsePoolMintBonusTokensInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+PoolMintBonusTokensInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args PoolMintBonusTokensInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint64(data, &args.Amount, &offset)

	return args, nil
}

// PoolMintBonusTokensParams are the inputs to BuildPoolMintBonusTokens. Only
// User is required.
type PoolMintBonusTokensParams struct {
	User ed25519.PublicKey

	Amount uint64

	Pool          ed25519.PublicKey
	Mint          ed25519.PublicKey
	PoolAuthority ed25519.PublicKey
}

func BuildPoolMintBonusTokens(params *PoolMintBonusTokensParams) (solana.Instruction, error) {
	if err := solana.RequireKey("user", params.User); err != nil {
		return solana.Instruction{}, err
	}

	pool, err := resolvePool(params.Pool, params.Mint, params.PoolAuthority)
	if err != nil {
		return solana.Instruction{}, err
	}

	userAta, err := token.DeriveAssociatedAccount(params.User, pool.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}
	userBonusAta, err := token.DeriveAssociatedAccount(params.User, pool.BonusMint)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewPoolMintBonusTokensInstruction(
		&PoolMintBonusTokensInstructionAccounts{
			User:                            params.User,
			GambaState:                      pool.GambaState,
			Pool:                            pool.Pool,
			UnderlyingTokenMint:             pool.Mint,
			PoolBonusUnderlyingTokenAccount: pool.BonusUnderlyingTokenAccount,
			BonusMint:                       pool.BonusMint,
			UserUnderlyingAta:               userAta,
			UserBonusAta:                    userBonusAta,
		},
		&PoolMintBonusTokensInstructionArgs{
			Amount: params.Amount,
		},
	), nil
}

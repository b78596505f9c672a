package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	PoolWithdrawInstructionArgsSize = (8) // lp_amount
)

var PoolWithdrawInstructionDiscriminator = binary.InstructionDiscriminator("pool_withdraw")

type PoolWithdrawInstructionArgs struct {
	LpAmount uint64 `json:"lp_amount"`
}

type PoolWithdrawInstructionAccounts struct {
	User                       ed25519.PublicKey
	GambaState                 ed25519.PublicKey
	Pool                       ed25519.PublicKey
	UnderlyingTokenMint        ed25519.PublicKey
	PoolUnderlyingTokenAccount ed25519.PublicKey
	LpMint                     ed25519.PublicKey
	UserUnderlyingAta          ed25519.PublicKey
	UserLpAta                  ed25519.PublicKey
}

var poolWithdrawAccountNames = []string{
	"user",
	"gamba_state",
	"pool",
	"underlying_token_mint",
	"pool_underlying_token_account",
	"lp_mint",
	"user_underlying_ata",
	"user_lp_ata",
	"associated_token_program",
	"token_program",
	"system_program",
}

func NewPoolWithdrawInstruction(
	accounts *PoolWithdrawInstructionAccounts,
	args *PoolWithdrawInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+PoolWithdrawInstructionArgsSize)

	binary.PutDiscriminator(data, PoolWithdrawInstructionDiscriminator, &offset)
	binary.PutUint64(data, args.LpAmount, &offset)

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
				PublicKey:  accounts.PoolUnderlyingTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.LpMint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserUnderlyingAta,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserLpAta,
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

func parsePoolWithdrawInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+PoolWithdrawInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args PoolWithdrawInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetUint64(data, &args.LpAmount, &offset)

	return args, nil
}

// PoolWithdrawParams are the inputs to BuildPoolWithdraw. Only User is required.
type PoolWithdrawParams struct {
	User ed25519.PublicKey

	LpAmount uint64

	// Pool is used as-is when set, otherwise derived from Mint and
	// PoolAuthority. Mint must match an explicit pool.
	Pool          ed25519.PublicKey
	Mint          ed25519.PublicKey
	PoolAuthority ed25519.PublicKey
}

func BuildPoolWithdraw(params *PoolWithdrawParams) (solana.Instruction, error) {
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
	userLpAta, err := token.DeriveAssociatedAccount(params.User, pool.LpMint)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewPoolWithdrawInstruction(
		&PoolWithdrawInstructionAccounts{
			User:                       params.User,
			GambaState:                 pool.GambaState,
			Pool:                       pool.Pool,
			UnderlyingTokenMint:        pool.Mint,
			PoolUnderlyingTokenAccount: pool.UnderlyingTokenAccount,
			LpMint:                     pool.LpMint,
			UserUnderlyingAta:          userAta,
			UserLpAta:                  userLpAta,
		},
		&PoolWithdrawInstructionArgs{
			LpAmount: params.LpAmount,
		},
	), nil
}

package multiplayer

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

var LeaveGameInstructionDiscriminator = binary.InstructionDiscriminator("leave_game")

type LeaveGameInstructionArgs struct{}

type LeaveGameInstructionAccounts struct {
	User ed25519.PublicKey
	Game ed25519.PublicKey
	Mint ed25519.PublicKey

	// Token accounts are only passed for non-native mints.
	EscrowTokenAccount ed25519.PublicKey
	PlayerAta          ed25519.PublicKey
}

var leaveGameAccountNames = []string{
	"user",
	"game",
	"mint",
	"system_program",
	"escrow_token_account",
	"player_ata",
	"token_program",
	"associated_token_program",
}

func NewLeaveGameInstruction(
	accounts *LeaveGameInstructionAccounts,
	_ *LeaveGameInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize)

	binary.PutDiscriminator(data, LeaveGameInstructionDiscriminator, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.User,
			IsWritable: true,
			IsSigner:   true,
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
				PublicKey:  accounts.PlayerAta,
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

func parseLeaveGameInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize {
		return nil, ErrInvalidInstructionData
	}
	return LeaveGameInstructionArgs{}, nil
}

// LeaveGameParams are the inputs to BuildLeaveGame. User and Game are
// required.
type LeaveGameParams struct {
	User ed25519.PublicKey
	Game ed25519.PublicKey

	// Mint defaults to the native mint and must be the game's mint.
	Mint ed25519.PublicKey
}

func BuildLeaveGame(params *LeaveGameParams) (solana.Instruction, error) {
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

	ixAccounts := &LeaveGameInstructionAccounts{
		User: params.User,
		Game: params.Game,
		Mint: mint,
	}
	if !token.IsNativeMint(mint) {
		if ixAccounts.EscrowTokenAccount, err = GetEscrowAddress(params.Game, mint); err != nil {
			return solana.Instruction{}, err
		}
		if ixAccounts.PlayerAta, err = token.DeriveAssociatedAccount(params.User, mint); err != nil {
			return solana.Instruction{}, err
		}
	}

	return NewLeaveGameInstruction(ixAccounts, &LeaveGameInstructionArgs{}), nil
}

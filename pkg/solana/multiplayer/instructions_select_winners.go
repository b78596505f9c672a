package multiplayer

import (
	"crypto/ed25519"
	"fmt"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

var SelectWinnersInstructionDiscriminator = binary.InstructionDiscriminator("select_winners")

type SelectWinnersInstructionArgs struct{}

type SelectWinnersInstructionAccounts struct {
	Rng             ed25519.PublicKey
	GambaState      ed25519.PublicKey
	Game            ed25519.PublicKey
	Mint            ed25519.PublicKey
	GambaFeeAddress ed25519.PublicKey

	// Token accounts are only passed for non-native mints.
	EscrowTokenAccount ed25519.PublicKey
	GambaFeeAta        ed25519.PublicKey

	// Each player's wallet, followed by its token account for non-native mints.
	RemainingAccounts []solana.AccountMeta
}

var selectWinnersAccountNames = []string{
	"rng",
	"gamba_state",
	"game",
	"mint",
	"gamba_fee_address",
	"system_program",
	"escrow_token_account",
	"gamba_fee_ata",
	"token_program",
	"associated_token_program",
}

func NewSelectWinnersInstruction(
	accounts *SelectWinnersInstructionAccounts,
	_ *SelectWinnersInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize)

	binary.PutDiscriminator(data, SelectWinnersInstructionDiscriminator, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Rng,
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
			PublicKey:  accounts.GambaFeeAddress,
			IsWritable: true,
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
				PublicKey:  accounts.GambaFeeAta,
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

	metas = append(metas, accounts.RemainingAccounts...)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: metas,
	}
}

func parseSelectWinnersInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize {
		return nil, ErrInvalidInstructionData
	}
	return SelectWinnersInstructionArgs{}, nil
}

// SelectWinnersParams are the inputs to BuildSelectWinners. Every field
// except Mint is required.
type SelectWinnersParams struct {
	Rng             ed25519.PublicKey
	Game            ed25519.PublicKey
	GambaFeeAddress ed25519.PublicKey

	// Mint defaults to the native mint and must be the game's mint.
	Mint ed25519.PublicKey

	// Players are the wallets of every joined player, in game order.
	Players []ed25519.PublicKey
}

func BuildSelectWinners(params *SelectWinnersParams) (solana.Instruction, error) {
	if err := solana.RequireKey("rng", params.Rng); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("game", params.Game); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("gamba fee address", params.GambaFeeAddress); err != nil {
		return solana.Instruction{}, err
	}
	if len(params.Players) == 0 {
		return solana.Instruction{}, solana.NewValidationError("players are required")
	}

	mint, err := resolveMint(params.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}
	native := token.IsNativeMint(mint)

	gambaState, _, err := GetGambaStateAddress()
	if err != nil {
		return solana.Instruction{}, err
	}

	ixAccounts := &SelectWinnersInstructionAccounts{
		Rng:             params.Rng,
		GambaState:      gambaState,
		Game:            params.Game,
		Mint:            mint,
		GambaFeeAddress: params.GambaFeeAddress,
	}
	if !native {
		if ixAccounts.EscrowTokenAccount, err = GetEscrowAddress(params.Game, mint); err != nil {
			return solana.Instruction{}, err
		}
		if ixAccounts.GambaFeeAta, err = token.DeriveAssociatedAccount(params.GambaFeeAddress, mint); err != nil {
			return solana.Instruction{}, err
		}
	}

	for i, player := range params.Players {
		if err := solana.RequireKey(fmt.Sprintf("player %d", i), player); err != nil {
			return solana.Instruction{}, err
		}
		ixAccounts.RemainingAccounts = append(ixAccounts.RemainingAccounts, solana.NewAccountMeta(player, false))

		if native {
			continue
		}

		ata, err := token.DeriveAssociatedAccount(player, mint)
		if err != nil {
			return solana.Instruction{}, err
		}
		ixAccounts.RemainingAccounts = append(ixAccounts.RemainingAccounts, solana.NewAccountMeta(ata, false))
	}

	return NewSelectWinnersInstruction(ixAccounts, &SelectWinnersInstructionArgs{}), nil
}

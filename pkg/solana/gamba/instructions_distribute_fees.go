package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

const (
	DistributeFeesInstructionArgsSize = (1) // native_sol
)

var DistributeFeesInstructionDiscriminator = binary.InstructionDiscriminator("distribute_fees")

type DistributeFeesInstructionArgs struct {
	NativeSol bool `json:"native_sol"`
}

type DistributeFeesInstructionAccounts struct {
	Signer                   ed25519.PublicKey
	GambaState               ed25519.PublicKey
	UnderlyingTokenMint      ed25519.PublicKey
	GambaStateAta            ed25519.PublicKey
	DistributionRecipient    ed25519.PublicKey
	DistributionRecipientAta ed25519.PublicKey
}

var distributeFeesAccountNames = []string{
	"signer",
	"gamba_state",
	"underlying_token_mint",
	"gamba_state_ata",
	"distribution_recipient",
	"distribution_recipient_ata",
	"associated_token_program",
	"token_program",
	"system_program",
}

func NewDistributeFeesInstruction(
	accounts *DistributeFeesInstructionAccounts,
	args *DistributeFeesInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+DistributeFeesInstructionArgsSize)

	binary.PutDiscriminator(data, DistributeFeesInstructionDiscriminator, &offset)
	binary.PutBool(data, args.NativeSol, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Signer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.GambaState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UnderlyingTokenMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.GambaStateAta,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.DistributionRecipient,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.DistributionRecipientAta,
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

func parseDistributeFeesInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+DistributeFeesInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args DistributeFeesInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetBool(data, &args.NativeSol, &offset)

	return args, nil
}

// DistributeFeesParams are the inputs to BuildDistributeFees. Signer and
// DistributionRecipient are required. Mint defaults to the native mint.
type DistributeFeesParams struct {
	Signer                ed25519.PublicKey
	DistributionRecipient ed25519.PublicKey
	Mint                  ed25519.PublicKey
	NativeSol             bool
}

func BuildDistributeFees(params *DistributeFeesParams) (solana.Instruction, error) {
	if err := solana.RequireKey("signer", params.Signer); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("distribution recipient", params.DistributionRecipient); err != nil {
		return solana.Instruction{}, err
	}

	mint, err := orDefault("mint", params.Mint, token.NativeMint)
	if err != nil {
		return solana.Instruction{}, err
	}

	gambaState, _, err := GetGambaStateAddress()
	if err != nil {
		return solana.Instruction{}, err
	}
	gambaStateAta, err := token.DeriveAssociatedAccount(gambaState, mint)
	if err != nil {
		return solana.Instruction{}, err
	}
	recipientAta, err := token.DeriveAssociatedAccount(params.DistributionRecipient, mint)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewDistributeFeesInstruction(
		&DistributeFeesInstructionAccounts{
			Signer:                   params.Signer,
			GambaState:               gambaState,
			UnderlyingTokenMint:      mint,
			GambaStateAta:            gambaStateAta,
			DistributionRecipient:    params.DistributionRecipient,
			DistributionRecipientAta: recipientAta,
		},
		&DistributeFeesInstructionArgs{
			NativeSol: params.NativeSol,
		},
	), nil
}

package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

var PlayerInitializeInstructionDiscriminator = binary.InstructionDiscriminator("player_initialize")

type PlayerInitializeInstructionArgs struct{}

type PlayerInitializeInstructionAccounts struct {
	User   ed25519.PublicKey
	Player ed25519.PublicKey
	Game   ed25519.PublicKey
}

var playerInitializeAccountNames = []string{
	"user",
	"player",
	"game",
	"system_program",
}

func NewPlayerInitializeInstruction(
	accounts *PlayerInitializeInstructionAccounts,
	_ *PlayerInitializeInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize)

	binary.PutDiscriminator(data, PlayerInitializeInstructionDiscriminator, &offset)

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
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func parsePlayerInitializeInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize {
		return nil, ErrInvalidInstructionData
	}
	return PlayerInitializeInstructionArgs{}, nil
}

type PlayerInitializeParams struct {
	User ed25519.PublicKey
}

func BuildPlayerInitialize(params *PlayerInitializeParams) (solana.Instruction, error) {
	if err := solana.RequireKey("user", params.User); err != nil {
		return solana.Instruction{}, err
	}

	player, err := resolvePlayer(params.User)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewPlayerInitializeInstruction(
		&PlayerInitializeInstructionAccounts{
			User:   params.User,
			Player: player.Player,
			Game:   player.Game,
		},
		&PlayerInitializeInstructionArgs{},
	), nil
}

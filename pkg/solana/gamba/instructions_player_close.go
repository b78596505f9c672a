package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

var PlayerCloseInstructionDiscriminator = binary.InstructionDiscriminator("player_close")

type PlayerCloseInstructionArgs struct{}

type PlayerCloseInstructionAccounts struct {
	User   ed25519.PublicKey
	Player ed25519.PublicKey
	Game   ed25519.PublicKey
}

var playerCloseAccountNames = []string{
	"user",
	"player",
	"game",
}

func NewPlayerCloseInstruction(
	accounts *PlayerCloseInstructionAccounts,
	_ *PlayerCloseInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize)

	binary.PutDiscriminator(data, PlayerCloseInstructionDiscriminator, &offset)

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
		},
	}
}

func parsePlayerCloseInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize {
		return nil, ErrInvalidInstructionData
	}
	return PlayerCloseInstructionArgs{}, nil
}

type PlayerCloseParams struct {
	User ed25519.PublicKey
}

func BuildPlayerClose(params *PlayerCloseParams) (solana.Instruction, error) {
	if err := solana.RequireKey("user", params.User); err != nil {
		return solana.Instruction{}, err
	}

	player, err := resolvePlayer(params.User)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewPlayerCloseInstruction(
		&PlayerCloseInstructionAccounts{
			User:   params.User,
			Player: player.Player,
			Game:   player.Game,
		},
		&PlayerCloseInstructionArgs{},
	), nil
}

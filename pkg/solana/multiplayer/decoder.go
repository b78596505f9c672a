package multiplayer

import (
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
)

// DecoderTable decodes every multiplayer program instruction. Account
// names assume a non-native mint; for native games the accounts past
// system_program are players.
var DecoderTable = decoder.MustNewTable(
	"multiplayer",
	PROGRAM_ID,
	decoder.Entry{
		Name:          "create_game",
		Discriminator: CreateGameInstructionDiscriminator,
		Accounts:      createGameAccountNames,
		Parse:         parseCreateGameInstructionArgs,
	},
	decoder.Entry{
		Name:          "join_game",
		Discriminator: JoinGameInstructionDiscriminator,
		Accounts:      joinGameAccountNames,
		Parse:         parseJoinGameInstructionArgs,
	},
	decoder.Entry{
		Name:          "leave_game",
		Discriminator: LeaveGameInstructionDiscriminator,
		Accounts:      leaveGameAccountNames,
		Parse:         parseLeaveGameInstructionArgs,
	},
	decoder.Entry{
		Name:          "select_winners",
		Discriminator: SelectWinnersInstructionDiscriminator,
		Accounts:      selectWinnersAccountNames,
		Parse:         parseSelectWinnersInstructionArgs,
	},
)

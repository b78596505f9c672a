package gamba

import (
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
)

// DecoderTable decodes every gamba program instruction.
var DecoderTable = decoder.MustNewTable(
	"gamba",
	PROGRAM_ID,
	decoder.Entry{
		Name:          "play_game",
		Discriminator: PlayGameInstructionDiscriminator,
		Accounts:      playGameAccountNames,
		Parse:         parsePlayGameInstructionArgs,
	},
	decoder.Entry{
		Name:          "player_initialize",
		Discriminator: PlayerInitializeInstructionDiscriminator,
		Accounts:      playerInitializeAccountNames,
		Parse:         parsePlayerInitializeInstructionArgs,
	},
	decoder.Entry{
		Name:          "player_close",
		Discriminator: PlayerCloseInstructionDiscriminator,
		Accounts:      playerCloseAccountNames,
		Parse:         parsePlayerCloseInstructionArgs,
	},
	decoder.Entry{
		Name:          "pool_initialize",
		Discriminator: PoolInitializeInstructionDiscriminator,
		Accounts:      poolInitializeAccountNames,
		Parse:         parsePoolInitializeInstructionArgs,
	},
	decoder.Entry{
		Name:          "pool_deposit",
		Discriminator: PoolDepositInstructionDiscriminator,
		Accounts:      poolDepositAccountNames,
		Parse:         parsePoolDepositInstructionArgs,
	},
	decoder.Entry{
		Name:          "pool_withdraw",
		Discriminator: PoolWithdrawInstructionDiscriminator,
		Accounts:      poolWithdrawAccountNames,
		Parse:         parsePoolWithdrawInstructionArgs,
	},
	decoder.Entry{
		Name:          "pool_mint_bonus_tokens",
		Discriminator: PoolMintBonusTokensInstructionDiscriminator,
		Accounts:      poolMintBonusTokensAccountNames,
		Parse:         parsePoolMintBonusTokensInstructionArgs,
	},
	decoder.Entry{
		Name:          "distribute_fees",
		Discriminator: DistributeFeesInstructionDiscriminator,
		Accounts:      distributeFeesAccountNames,
		Parse:         parseDistributeFeesInstructionArgs,
	},
)

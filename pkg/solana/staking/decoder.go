package staking

import (
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
)

var DecoderTable = decoder.MustNewTable(
	"staking",
	PROGRAM_ID,
	decoder.Entry{
		Name:          "vault_initialize",
		Discriminator: VaultInitializeInstructionDiscriminator,
		Accounts:      vaultInitializeAccountNames,
		Parse:         parseVaultInitializeInstructionArgs,
	},
	decoder.Entry{
		Name:          "vault_deposit",
		Discriminator: VaultDepositInstructionDiscriminator,
		Accounts:      vaultDepositAccountNames,
		Parse:         parseVaultDepositInstructionArgs,
	},
	decoder.Entry{
		Name:          "vault_withdraw",
		Discriminator: VaultWithdrawInstructionDiscriminator,
		Accounts:      vaultWithdrawAccountNames,
		Parse:         parseVaultWithdrawInstructionArgs,
	},
)

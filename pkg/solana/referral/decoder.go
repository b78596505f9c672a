package referral

import (
	"github.com/gamba-labs/gamba-go/pkg/solana/decoder"
)

var DecoderTable = decoder.MustNewTable(
	"referral",
	PROGRAM_ID,
	decoder.Entry{
		Name:          "config_referral",
		Discriminator: ConfigReferralInstructionDiscriminator,
		Accounts:      configReferralAccountNames,
		Parse:         parseConfigReferralInstructionArgs,
	},
	decoder.Entry{
		Name:          "close_referral",
		Discriminator: CloseReferralInstructionDiscriminator,
		Accounts:      closeReferralAccountNames,
		Parse:         parseCloseReferralInstructionArgs,
	},
)

package referral

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	ConfigReferralInstructionArgsSize = (32) // referrer
)

var ConfigReferralInstructionDiscriminator = binary.InstructionDiscriminator("config_referral")

type ConfigReferralInstructionArgs struct {
	Referrer ed25519.PublicKey `json:"referrer"`
}

type ConfigReferralInstructionAccounts struct {
	Authority    ed25519.PublicKey
	ReferAccount ed25519.PublicKey
	Creator      ed25519.PublicKey
}

var configReferralAccountNames = []string{
	"authority",
	"refer_account",
	"creator",
	"system_program",
}

func NewConfigReferralInstruction(
	accounts *ConfigReferralInstructionAccounts,
	args *ConfigReferralInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+ConfigReferralInstructionArgsSize)

	binary.PutDiscriminator(data, ConfigReferralInstructionDiscriminator, &offset)
	binary.PutKey32(data, args.Referrer, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Authority,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.ReferAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Creator,
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

func parseConfigReferralInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+ConfigReferralInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args ConfigReferralInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetKey32(data, &args.Referrer, &offset)

	return args, nil
}

// ConfigReferralParams are the inputs to BuildConfigReferral. All fields
// are required.
type ConfigReferralParams struct {
	Authority ed25519.PublicKey
	Creator   ed25519.PublicKey
	Referrer  ed25519.PublicKey
}

// BuildConfigReferral records Referrer as the referrer of Authority on the
// Creator's platform, replacing any previous referrer.
func BuildConfigReferral(params *ConfigReferralParams) (solana.Instruction, error) {
	if err := solana.RequireKey("authority", params.Authority); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("creator", params.Creator); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("referrer", params.Referrer); err != nil {
		return solana.Instruction{}, err
	}

	referAccount, _, err := GetReferAccountAddress(&GetReferAccountAddressArgs{
		Creator:   params.Creator,
		Authority: params.Authority,
	})
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewConfigReferralInstruction(
		&ConfigReferralInstructionAccounts{
			Authority:    params.Authority,
			ReferAccount: referAccount,
			Creator:      params.Creator,
		},
		&ConfigReferralInstructionArgs{
			Referrer: params.Referrer,
		},
	), nil
}

package referral

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

var CloseReferralInstructionDiscriminator = binary.InstructionDiscriminator("close_referral")

type CloseReferralInstructionArgs struct{}

type CloseReferralInstructionAccounts struct {
	Authority    ed25519.PublicKey
	ReferAccount ed25519.PublicKey
	Creator      ed25519.PublicKey
}

var closeReferralAccountNames = []string{
	"authority",
	"refer_account",
	"creator",
}

func NewCloseReferralInstruction(
	accounts *CloseReferralInstructionAccounts,
	_ *CloseReferralInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize)

	binary.PutDiscriminator(data, CloseReferralInstructionDiscriminator, &offset)

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
		},
	}
}

func parseCloseReferralInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize {
		return nil, ErrInvalidInstructionData
	}
	return CloseReferralInstructionArgs{}, nil
}

type CloseReferralParams struct {
	Authority ed25519.PublicKey
	Creator   ed25519.PublicKey
}

func BuildCloseReferral(params *CloseReferralParams) (solana.Instruction, error) {
	if err := solana.RequireKey("authority", params.Authority); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("creator", params.Creator); err != nil {
		return solana.Instruction{}, err
	}

	referAccount, _, err := GetReferAccountAddress(&GetReferAccountAddressArgs{
		Creator:   params.Creator,
		Authority: params.Authority,
	})
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewCloseReferralInstruction(
		&CloseReferralInstructionAccounts{
			Authority:    params.Authority,
			ReferAccount: referAccount,
			Creator:      params.Creator,
		},
		&CloseReferralInstructionArgs{},
	), nil
}

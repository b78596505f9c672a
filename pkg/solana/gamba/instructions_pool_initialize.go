package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/binary"
)

const (
	PoolInitializeInstructionArgsSize = (32 + // pool_authority
		32) // lookup_address
)

var PoolInitializeInstructionDiscriminator = binary.InstructionDiscriminator("pool_initialize")

type PoolInitializeInstructionArgs struct {
	PoolAuthority ed25519.PublicKey `json:"pool_authority"`
	LookupAddress ed25519.PublicKey `json:"lookup_address"`
}

type PoolInitializeInstructionAccounts struct {
	Initializer                     ed25519.PublicKey
	GambaState                      ed25519.PublicKey
	UnderlyingTokenMint             ed25519.PublicKey
	Pool                            ed25519.PublicKey
	PoolUnderlyingTokenAccount      ed25519.PublicKey
	PoolJackpotTokenAccount         ed25519.PublicKey
	PoolBonusUnderlyingTokenAccount ed25519.PublicKey
	LpMint                          ed25519.PublicKey
	LpMintMetadata                  ed25519.PublicKey
	BonusMint                       ed25519.PublicKey
	BonusMintMetadata               ed25519.PublicKey
}

var poolInitializeAccountNames = []string{
	"initializer",
	"gamba_state",
	"underlying_token_mint",
	"pool",
	"pool_underlying_token_account",
	"pool_jackpot_token_account",
	"pool_bonus_underlying_token_account",
	"lp_mint",
	"lp_mint_metadata",
	"bonus_mint",
	"bonus_mint_metadata",
	"token_program",
	"associated_token_program",
	"token_metadata_program",
	"system_program",
	"rent",
}

func NewPoolInitializeInstruction(
	accounts *PoolInitializeInstructionAccounts,
	args *PoolInitializeInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, binary.DiscriminatorSize+PoolInitializeInstructionArgsSize)

	binary.PutDiscriminator(data, PoolInitializeInstructionDiscriminator, &offset)
	binary.PutKey32(data, args.PoolAuthority, &offset)
	binary.PutKey32(data, args.LookupAddress, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Initializer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.GambaState,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UnderlyingTokenMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Pool,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PoolUnderlyingTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PoolJackpotTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PoolBonusUnderlyingTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.LpMint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.LpMintMetadata,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.BonusMint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.BonusMintMetadata,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  METADATA_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func parsePoolInitializeInstructionArgs(data []byte) (interface{}, error) {
	if len(data) != binary.DiscriminatorSize+PoolInitializeInstructionArgsSize {
		return nil, ErrInvalidInstructionData
	}

	var args PoolInitializeInstructionArgs
	offset := binary.DiscriminatorSize

	binary.GetKey32(data, &args.PoolAuthority, &offset)
	binary.GetKey32(data, &args.LookupAddress, &offset)

	return args, nil
}

// PoolInitializeParams are the inputs to BuildPoolInitialize. Initializer
// and Mint are required.
type PoolInitializeParams struct {
	Initializer ed25519.PublicKey
	Mint        ed25519.PublicKey

	// PoolAuthority defaults to the public pool authority.
	PoolAuthority ed25519.PublicKey

	LookupAddress ed25519.PublicKey
}

func BuildPoolInitialize(params *PoolInitializeParams) (solana.Instruction, error) {
	if err := solana.RequireKey("initializer", params.Initializer); err != nil {
		return solana.Instruction{}, err
	}
	if err := solana.RequireKey("mint", params.Mint); err != nil {
		return solana.Instruction{}, err
	}

	authority, err := orDefault("pool authority", params.PoolAuthority, PublicPoolAuthority)
	if err != nil {
		return solana.Instruction{}, err
	}
	lookup, err := orDefault("lookup address", params.LookupAddress, PublicPoolAuthority)
	if err != nil {
		return solana.Instruction{}, err
	}

	pool, err := resolvePool(nil, params.Mint, authority)
	if err != nil {
		return solana.Instruction{}, err
	}

	lpMintMetadata, _, err := GetMetadataAddress(&GetMetadataAddressArgs{Mint: pool.LpMint})
	if err != nil {
		return solana.Instruction{}, err
	}
	bonusMintMetadata, _, err := GetMetadataAddress(&GetMetadataAddressArgs{Mint: pool.BonusMint})
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewPoolInitializeInstruction(
		&PoolInitializeInstructionAccounts{
			Initializer:                     params.Initializer,
			GambaState:                      pool.GambaState,
			UnderlyingTokenMint:             pool.Mint,
			Pool:                            pool.Pool,
			PoolUnderlyingTokenAccount:      pool.UnderlyingTokenAccount,
			PoolJackpotTokenAccount:         pool.JackpotTokenAccount,
			PoolBonusUnderlyingTokenAccount: pool.BonusUnderlyingTokenAccount,
			LpMint:                          pool.LpMint,
			LpMintMetadata:                  lpMintMetadata,
			BonusMint:                       pool.BonusMint,
			BonusMintMetadata:               bonusMintMetadata,
		},
		&PoolInitializeInstructionArgs{
			PoolAuthority: authority,
			LookupAddress: lookup,
		},
	), nil
}

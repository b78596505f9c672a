package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

var (
	GambaStatePrefix     = []byte("GAMBA_STATE")
	PoolPrefix           = []byte("POOL")
	PoolLpMintPrefix     = []byte("POOL_LP_MINT")
	PoolBonusMintPrefix  = []byte("POOL_BONUS_MINT")
	PoolAtaPrefix        = []byte("POOL_ATA")
	PoolBonusAtaPrefix   = []byte("POOL_BONUS_ATA")
	PoolJackpotPrefix    = []byte("POOL_JACKPOT")
	PlayerPrefix         = []byte("PLAYER")
	GamePrefix           = []byte("GAME")
	PlayerAtaPrefix      = []byte("PLAYER_ATA")
	PlayerBonusAtaPrefix = []byte("PLAYER_BONUS_ATA")
	MetadataPrefix       = []byte("metadata")
)

func GetGambaStateAddress() (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		GambaStatePrefix,
	)
}

type GetPoolAddressArgs struct {
	Mint      ed25519.PublicKey
	Authority ed25519.PublicKey
}

func GetPoolAddress(args *GetPoolAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PoolPrefix,
		args.Mint,
		args.Authority,
	)
}

type GetPoolDerivedAddressArgs struct {
	Pool ed25519.PublicKey
}

func GetPoolLpMintAddress(args *GetPoolDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PoolLpMintPrefix,
		args.Pool,
	)
}

func GetPoolBonusMintAddress(args *GetPoolDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PoolBonusMintPrefix,
		args.Pool,
	)
}

func GetPoolUnderlyingTokenAccountAddress(args *GetPoolDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PoolAtaPrefix,
		args.Pool,
	)
}

func GetPoolBonusUnderlyingTokenAccountAddress(args *GetPoolDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PoolBonusAtaPrefix,
		args.Pool,
	)
}

func GetPoolJackpotTokenAccountAddress(args *GetPoolDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PoolJackpotPrefix,
		args.Pool,
	)
}

type GetUserDerivedAddressArgs struct {
	User ed25519.PublicKey
}

func GetPlayerAddress(args *GetUserDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PlayerPrefix,
		args.User,
	)
}

func GetGameAddress(args *GetUserDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		GamePrefix,
		args.User,
	)
}

type GetPlayerDerivedAddressArgs struct {
	Player ed25519.PublicKey
}

func GetPlayerTokenAccountAddress(args *GetPlayerDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PlayerAtaPrefix,
		args.Player,
	)
}

func GetPlayerBonusTokenAccountAddress(args *GetPlayerDerivedAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		PROGRAM_ID,
		PlayerBonusAtaPrefix,
		args.Player,
	)
}

type GetMetadataAddressArgs struct {
	Mint ed25519.PublicKey
}

// GetMetadataAddress returns the Metaplex metadata account of a mint.
func GetMetadataAddress(args *GetMetadataAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.DeriveAddressAndBump(
		METADATA_PROGRAM_ID,
		MetadataPrefix,
		METADATA_PROGRAM_ID,
		args.Mint,
	)
}

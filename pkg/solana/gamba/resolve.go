package gamba

import (
	"crypto/ed25519"

	"github.com/gamba-labs/gamba-go/pkg/solana"
	"github.com/gamba-labs/gamba-go/pkg/solana/token"
)

// poolAddresses are the accounts derived from a pool address.
type poolAddresses struct {
	Pool                        ed25519.PublicKey
	Mint                        ed25519.PublicKey
	GambaState                  ed25519.PublicKey
	UnderlyingTokenAccount      ed25519.PublicKey
	BonusUnderlyingTokenAccount ed25519.PublicKey
	JackpotTokenAccount         ed25519.PublicKey
	LpMint                      ed25519.PublicKey
	BonusMint                   ed25519.PublicKey
}

// orDefault returns fallback when key is unset. A key that is set must be a
// valid address.
func orDefault(name string, key, fallback ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(key) == 0 {
		return fallback, nil
	}
	if err := solana.RequireKey(name, key); err != nil {
		return nil, err
	}
	return key, nil
}

// resolvePool uses pool when set, otherwise derives it from mint and
// authority. A missing mint means the native mint and a missing authority
// means the public pool authority.
func resolvePool(pool, mint, authority ed25519.PublicKey) (*poolAddresses, error) {
	res := &poolAddresses{Pool: pool}

	var err error
	if res.Mint, err = orDefault("mint", mint, token.NativeMint); err != nil {
		return nil, err
	}
	if authority, err = orDefault("pool authority", authority, PublicPoolAuthority); err != nil {
		return nil, err
	}

	if len(res.Pool) == 0 {
		res.Pool, _, err = GetPoolAddress(&GetPoolAddressArgs{
			Mint:      res.Mint,
			Authority: authority,
		})
		if err != nil {
			return nil, err
		}
	} else if err := solana.RequireKey("pool", res.Pool); err != nil {
		return nil, err
	}

	res.GambaState, _, err = GetGambaStateAddress()
	if err != nil {
		return nil, err
	}

	derived := &GetPoolDerivedAddressArgs{Pool: res.Pool}
	for _, d := range []struct {
		dst    *ed25519.PublicKey
		derive func(*GetPoolDerivedAddressArgs) (ed25519.PublicKey, uint8, error)
	}{
		{&res.UnderlyingTokenAccount, GetPoolUnderlyingTokenAccountAddress},
		{&res.BonusUnderlyingTokenAccount, GetPoolBonusUnderlyingTokenAccountAddress},
		{&res.JackpotTokenAccount, GetPoolJackpotTokenAccountAddress},
		{&res.LpMint, GetPoolLpMintAddress},
		{&res.BonusMint, GetPoolBonusMintAddress},
	} {
		if *d.dst, _, err = d.derive(derived); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// playerAddresses are the accounts derived from a user address.
type playerAddresses struct {
	Player                  ed25519.PublicKey
	Game                    ed25519.PublicKey
	PlayerTokenAccount      ed25519.PublicKey
	PlayerBonusTokenAccount ed25519.PublicKey
}

func resolvePlayer(user ed25519.PublicKey) (*playerAddresses, error) {
	var res playerAddresses
	var err error

	res.Player, _, err = GetPlayerAddress(&GetUserDerivedAddressArgs{User: user})
	if err != nil {
		return nil, err
	}
	res.Game, _, err = GetGameAddress(&GetUserDerivedAddressArgs{User: user})
	if err != nil {
		return nil, err
	}
	res.PlayerTokenAccount, _, err = GetPlayerTokenAccountAddress(&GetPlayerDerivedAddressArgs{Player: res.Player})
	if err != nil {
		return nil, err
	}
	res.PlayerBonusTokenAccount, _, err = GetPlayerBonusTokenAccountAddress(&GetPlayerDerivedAddressArgs{Player: res.Player})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

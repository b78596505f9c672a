package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// FilledKey returns a deterministic address with every byte set to b.
func FilledKey(b byte) ed25519.PublicKey {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	for i := range key {
		key[i] = b
	}
	return key
}

// NewSigner returns a signer over the all zero seed, so signatures are
// reproducible across runs.
func NewSigner(t *testing.T) *solana.KeypairSigner {
	signer, err := solana.NewKeypairSigner(ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize)))
	require.NoError(t, err)
	return signer
}

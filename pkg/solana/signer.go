package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Signer is the capability to sign transaction messages on behalf of a
// single account.
type Signer interface {
	PublicKey() ed25519.PublicKey
	Sign(message []byte) ([]byte, error)
}

// KeypairSigner signs with an in-memory ed25519 private key.
type KeypairSigner struct {
	key ed25519.PrivateKey
}

// NewKeypairSigner returns a Signer over the provided private key.
func NewKeypairSigner(key ed25519.PrivateKey) (*KeypairSigner, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid private key length: %d", len(key))
	}
	return &KeypairSigner{key: key}, nil
}

// NewKeypairSignerFromBase58 parses a base58 encoded 64 byte secret key.
func NewKeypairSignerFromBase58(encoded string) (*KeypairSigner, error) {
	decoded, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base58 secret key")
	}
	return NewKeypairSigner(ed25519.PrivateKey(decoded))
}

func (s *KeypairSigner) PublicKey() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

func (s *KeypairSigner) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(s.key, message), nil
}

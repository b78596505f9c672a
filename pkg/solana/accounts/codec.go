// Package accounts decodes discriminator-prefixed program account data.
package accounts

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

var (
	ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")
	ErrAccountTooSmall       = errors.New("account data too small")
)

// Shape describes how to recognize and decode one account type.
type Shape[T any] struct {
	Name          string
	Discriminator []byte

	// Size is the minimum encoded size, discriminator included.
	Size int

	// Decode receives the full account data, discriminator included.
	Decode func(data []byte) (T, error)
}

// Keyed is a decoded account alongside its address.
type Keyed[T any] struct {
	PublicKey ed25519.PublicKey
	Account   T
}

// ProgramAccountReader is the transport capability FetchAll depends on.
type ProgramAccountReader interface {
	GetProgramAccounts(program ed25519.PublicKey, offset uint, filterValue []byte) ([]solana.KeyedAccount, error)
}

// AccountReader is the transport capability FetchOne depends on.
type AccountReader interface {
	GetAccountInfo(ed25519.PublicKey, solana.Commitment) (solana.AccountInfo, error)
}

var log = logrus.StandardLogger().WithField("type", "solana/accounts")

func DiscriminatorOf[T any](shape Shape[T]) []byte {
	return shape.Discriminator
}

// Decode checks data against shape and decodes it.
func Decode[T any](shape Shape[T], data []byte) (T, error) {
	var zero T

	if !bytes.HasPrefix(data, shape.Discriminator) {
		return zero, errors.Wrap(ErrDiscriminatorMismatch, shape.Name)
	}
	if len(data) < shape.Size {
		return zero, errors.Wrapf(ErrAccountTooSmall, "%s: %d < %d", shape.Name, len(data), shape.Size)
	}

	v, err := shape.Decode(data)
	if err != nil {
		return zero, errors.Wrapf(err, "failed to decode %s", shape.Name)
	}
	return v, nil
}

// DecodeBatch decodes every account it can. An account that fails to
// decode, or whose decoder panics, is excluded without affecting the rest.
func DecodeBatch[T any](shape Shape[T], raw []solana.KeyedAccount) []Keyed[T] {
	res := make([]Keyed[T], 0, len(raw))
	for _, account := range raw {
		v, err := safeDecode(shape, account.Account.Data)
		if err != nil {
			log.WithError(err).
				WithField("account", base58.Encode(account.PublicKey)).
				Debug("excluding undecodable account")
			continue
		}

		res = append(res, Keyed[T]{PublicKey: account.PublicKey, Account: v})
	}
	return res
}

func safeDecode[T any](shape Shape[T], data []byte) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("decoder panic: %s", fmt.Sprint(r))
		}
	}()

	return Decode(shape, data)
}

// FetchAll returns every account of the given shape owned by program, using
// a single program account scan filtered on the discriminator.
func FetchAll[T any](reader ProgramAccountReader, program ed25519.PublicKey, shape Shape[T]) ([]Keyed[T], error) {
	raw, err := reader.GetProgramAccounts(program, 0, DiscriminatorOf(shape))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s accounts", shape.Name)
	}

	return DecodeBatch(shape, raw), nil
}

// FetchOne fetches and decodes the account at address. A missing account is
// reported as a solana.ResolutionError.
func FetchOne[T any](reader AccountReader, address ed25519.PublicKey, shape Shape[T]) (T, error) {
	var zero T

	info, err := reader.GetAccountInfo(address, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return zero, solana.NewResolutionError(fmt.Sprintf("%s account %s not found", shape.Name, base58.Encode(address)), err)
	} else if err != nil {
		return zero, solana.NewResolutionError(fmt.Sprintf("failed to fetch %s account", shape.Name), err)
	}

	return Decode(shape, info.Data)
}

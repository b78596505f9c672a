// Package decoder matches raw instruction data against per-program
// discriminator tables and returns normalized records.
package decoder

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

var (
	ErrAmbiguousDiscriminator = errors.New("ambiguous discriminator")
	ErrEmptyDiscriminator     = errors.New("empty discriminator")
)

// Source identifies where in a transaction an instruction was found.
type Source string

const (
	SourceTopLevel Source = "top-level"
	SourceInner    Source = "inner"
)

// ParseFunc decodes the instruction data, discriminator included, into a
// typed record.
type ParseFunc func(data []byte) (interface{}, error)

// Entry describes a single instruction kind of a program.
type Entry struct {
	Name          string
	Discriminator []byte

	// Accounts names the instruction accounts by position. Accounts past the
	// end of the list are named "remaining_<n>".
	Accounts []string

	Parse ParseFunc
}

// Instruction is a decoded instruction with every value normalized so it
// can be serialized without losing precision.
type Instruction struct {
	Program  string            `json:"program"`
	Name     string            `json:"name"`
	Data     interface{}       `json:"data"`
	Accounts map[string]string `json:"accounts"`

	Source Source `json:"source,omitempty"`
	Index  int    `json:"index"`
}

// Table is an ordered set of entries for a single program.
type Table struct {
	log     *logrus.Entry
	name    string
	program ed25519.PublicKey
	entries []Entry
}

// NewTable returns a table for program, failing when any discriminator is
// empty or is a byte prefix of another registered discriminator.
func NewTable(name string, program ed25519.PublicKey, entries ...Entry) (*Table, error) {
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i].Discriminator, entries[j].Discriminator
			if bytes.HasPrefix(a, b) || bytes.HasPrefix(b, a) {
				return nil, errors.Wrapf(
					ErrAmbiguousDiscriminator,
					"%s: %s (%s) and %s (%s)",
					name,
					entries[i].Name,
					hex.EncodeToString(a),
					entries[j].Name,
					hex.EncodeToString(b),
				)
			}
		}
	}

	return NewOrderedTable(name, program, entries...)
}

// NewOrderedTable returns a table that permits discriminator prefix overlap.
// Entries are matched in registration order and the first match wins.
func NewOrderedTable(name string, program ed25519.PublicKey, entries ...Entry) (*Table, error) {
	if len(program) != ed25519.PublicKeySize {
		return nil, errors.Errorf("%s: invalid program id", name)
	}

	for _, entry := range entries {
		if len(entry.Discriminator) == 0 {
			return nil, errors.Wrapf(ErrEmptyDiscriminator, "%s: %s", name, entry.Name)
		}
		if entry.Parse == nil {
			return nil, errors.Errorf("%s: %s has no parser", name, entry.Name)
		}
	}

	copied := make([]Entry, len(entries))
	copy(copied, entries)

	return &Table{
		log:     logrus.StandardLogger().WithField("type", "solana/decoder"),
		name:    name,
		program: program,
		entries: copied,
	}, nil
}

// MustNewTable is NewTable that panics on an invalid table.
func MustNewTable(name string, program ed25519.PublicKey, entries ...Entry) *Table {
	t, err := NewTable(name, program, entries...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Program() ed25519.PublicKey {
	return t.program
}

// Decode returns the decoded instruction, or nil when program is not the
// table's program, no entry matches, or the matched parser fails.
func (t *Table) Decode(program ed25519.PublicKey, accounts []ed25519.PublicKey, data []byte) (decoded *Instruction) {
	if !bytes.Equal(program, t.program) {
		return nil
	}

	for _, entry := range t.entries {
		if !bytes.HasPrefix(data, entry.Discriminator) {
			continue
		}

		return t.parse(entry, accounts, data)
	}

	return nil
}

// DecodeInstruction is Decode over a built instruction.
func (t *Table) DecodeInstruction(ix solana.Instruction) *Instruction {
	accounts := make([]ed25519.PublicKey, len(ix.Accounts))
	for i, a := range ix.Accounts {
		accounts[i] = a.PublicKey
	}
	return t.Decode(ix.Program, accounts, ix.Data)
}

func (t *Table) parse(entry Entry, accounts []ed25519.PublicKey, data []byte) (decoded *Instruction) {
	log := t.log.WithFields(logrus.Fields{
		"method":      "parse",
		"instruction": entry.Name,
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Debug("parser panicked")
			decoded = nil
		}
	}()

	record, err := entry.Parse(data)
	if err != nil {
		log.WithError(err).Debug("instruction data not decodable")
		return nil
	}

	return &Instruction{
		Program:  base58.Encode(t.program),
		Name:     entry.Name,
		Data:     Normalize(record),
		Accounts: namedAccounts(entry.Accounts, accounts),
	}
}

func namedAccounts(names []string, accounts []ed25519.PublicKey) map[string]string {
	res := make(map[string]string, len(accounts))
	for i, account := range accounts {
		if i < len(names) {
			res[names[i]] = base58.Encode(account)
			continue
		}
		res[fmt.Sprintf("remaining_%d", i-len(names))] = base58.Encode(account)
	}
	return res
}

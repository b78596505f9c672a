package decoder

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

const innerIndexBase = 1000

// Registry dispatches instructions to the table of their program.
type Registry struct {
	log    *logrus.Entry
	tables map[string]*Table
}

// NewRegistry returns a registry over tables. A later table replaces an
// earlier one registered for the same program.
func NewRegistry(tables ...*Table) *Registry {
	r := &Registry{
		log:    logrus.StandardLogger().WithField("type", "solana/decoder/registry"),
		tables: make(map[string]*Table, len(tables)),
	}
	for _, t := range tables {
		r.tables[string(t.program)] = t
	}
	return r
}

// Decode returns the decoded instruction, or nil when no registered table
// can decode it.
func (r *Registry) Decode(program ed25519.PublicKey, accounts []ed25519.PublicKey, data []byte) *Instruction {
	t, ok := r.tables[string(program)]
	if !ok {
		return nil
	}
	return t.Decode(program, accounts, data)
}

// DecodeTransaction decodes the top-level instructions of txn followed by
// every inner instruction group. Inner instructions are indexed by
// invokingIndex*1000 + position within the group, where invokingIndex is the
// top-level instruction that made the call. Undecodable instructions are
// skipped.
func (r *Registry) DecodeTransaction(txn solana.ConfirmedTransaction) []Instruction {
	log := r.log.WithFields(logrus.Fields{
		"method":    "DecodeTransaction",
		"signature": base58.Encode(txn.Signature[:]),
	})

	var res []Instruction
	decode := func(c solana.CompiledInstruction, source Source, index int) {
		program, accounts, err := txn.ResolveInstruction(c)
		if err != nil {
			log.WithError(err).Debug("unresolvable instruction")
			return
		}

		decoded := r.Decode(program, accounts, c.Data)
		if decoded == nil {
			return
		}

		decoded.Source = source
		decoded.Index = index
		res = append(res, *decoded)
	}

	for i, c := range txn.Instructions {
		decode(c, SourceTopLevel, i)
	}

	for _, group := range txn.InnerInstructions {
		for i, c := range group.Instructions {
			decode(c, SourceInner, group.Index*innerIndexBase+i)
		}
	}

	return res
}

package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"sort"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

func (b Blockhash) String() string {
	return base58.Encode(b[:])
}

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy transaction message.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles instructions into an unsigned legacy transaction
// with payer as the fee payer.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	keys := newKeySet(payer)
	for _, i := range instructions {
		keys.add(AccountMeta{PublicKey: i.Program, isProgram: true})
		for _, a := range i.Accounts {
			keys.add(a)
		}
	}

	m := Message{
		Accounts:     make([]ed25519.PublicKey, len(keys.metas)),
		Instructions: make([]CompiledInstruction, len(instructions)),
	}
	position := make(map[string]byte, len(keys.metas))
	for i, meta := range keys.ordered() {
		position[string(meta.PublicKey)] = byte(i)

		m.Accounts[i] = meta.PublicKey
		if len(meta.PublicKey) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}

		switch meta.Role() {
		case RoleWritableSigner:
			m.Header.NumSignatures++
		case RoleReadonlySigner:
			m.Header.NumSignatures++
			m.Header.NumReadonlySigned++
		case RoleReadonly:
			m.Header.NumReadOnly++
		}
	}

	for i, instruction := range instructions {
		compiled := CompiledInstruction{
			ProgramIndex: position[string(instruction.Program)],
			Accounts:     make([]byte, len(instruction.Accounts)),
			Data:         instruction.Data,
		}
		for j, a := range instruction.Accounts {
			compiled.Accounts[j] = position[string(a.PublicKey)]
		}
		m.Instructions[i] = compiled
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// keySet collects the unique accounts of a message. A key referenced more
// than once takes the union of its signer and writable flags.
type keySet struct {
	metas []AccountMeta
	index map[string]int
}

func newKeySet(payer ed25519.PublicKey) *keySet {
	s := &keySet{index: make(map[string]int)}
	s.add(AccountMeta{
		PublicKey:  payer,
		IsSigner:   true,
		IsWritable: true,
		isPayer:    true,
	})
	return s
}

func (s *keySet) add(meta AccountMeta) {
	i, ok := s.index[string(meta.PublicKey)]
	if !ok {
		s.index[string(meta.PublicKey)] = len(s.metas)
		s.metas = append(s.metas, meta)
		return
	}

	existing := &s.metas[i]
	existing.IsSigner = existing.IsSigner || meta.IsSigner
	existing.IsWritable = existing.IsWritable || meta.IsWritable
	existing.isPayer = existing.isPayer || meta.isPayer
}

// ordered returns the accounts in message order.
func (s *keySet) ordered() []AccountMeta {
	res := append([]AccountMeta(nil), s.metas...)
	sort.Sort(SortableAccountMeta(res))
	return res
}

func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

// Sign signs the message with each of the provided signers. Every signer must
// be one of the message's required signers.
func (t *Transaction) Sign(signers ...Signer) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.PublicKey()
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		sig, err := s.Sign(messageBytes)
		if err != nil {
			return errors.Wrapf(err, "failed to sign with %s", base58.Encode(pub))
		}
		if len(sig) != ed25519.SignatureSize {
			return errors.Errorf("invalid signature length from %s: %d", base58.Encode(pub), len(sig))
		}

		copy(t.Signatures[index][:], sig)
	}

	return nil
}

// DecompileInstructions expands the compiled instructions back into
// instructions with resolved account keys and roles.
func (m Message) DecompileInstructions() ([]Instruction, error) {
	instructions := make([]Instruction, len(m.Instructions))
	for i, c := range m.Instructions {
		if int(c.ProgramIndex) >= len(m.Accounts) {
			return nil, errors.Errorf("program index out of range: %d:%d", i, c.ProgramIndex)
		}

		instructions[i] = Instruction{
			Program:  m.Accounts[c.ProgramIndex],
			Data:     c.Data,
			Accounts: make([]AccountMeta, len(c.Accounts)),
		}

		for j, index := range c.Accounts {
			if int(index) >= len(m.Accounts) {
				return nil, errors.Errorf("account index out of range: %d:%d", i, index)
			}

			instructions[i].Accounts[j] = AccountMeta{
				PublicKey:  m.Accounts[index],
				IsSigner:   m.isSigner(int(index)),
				IsWritable: m.isWritable(int(index)),
			}
		}
	}
	return instructions, nil
}

func (m Message) isSigner(index int) bool {
	return index < int(m.Header.NumSignatures)
}

func (m Message) isWritable(index int) bool {
	numSignatures := int(m.Header.NumSignatures)
	if index < numSignatures {
		return index < numSignatures-int(m.Header.NumReadonlySigned)
	}
	return index < len(m.Accounts)-int(m.Header.NumReadOnly)
}

func indexOf(keys []ed25519.PublicKey, key ed25519.PublicKey) int {
	for i, k := range keys {
		if bytes.Equal(k, key) {
			return i
		}
	}
	return -1
}

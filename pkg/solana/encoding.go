package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/solana/shortvec"
)

// Marshal returns the wire encoding of the transaction.
func (t Transaction) Marshal() []byte {
	b := appendLen(nil, len(t.Signatures))
	for _, s := range t.Signatures {
		b = append(b, s[:]...)
	}
	return append(b, t.Message.Marshal()...)
}

// ToBase64 returns the wire encoding of the transaction in base64.
func (t Transaction) ToBase64() string {
	return base64.StdEncoding.EncodeToString(t.Marshal())
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := &wireReader{b: b}

	sigLen, err := r.len()
	if err != nil {
		return errors.Wrap(err, "failed to read signature length")
	}

	t.Signatures = make([]Signature, sigLen)
	for i := range t.Signatures {
		raw, err := r.next(len(t.Signatures[i]))
		if err != nil {
			return errors.Wrapf(err, "failed to read signature at %d", i)
		}
		copy(t.Signatures[i][:], raw)
	}

	return t.Message.Unmarshal(r.rest())
}

// Marshal returns the wire encoding of the legacy message.
func (m Message) Marshal() []byte {
	b := []byte{m.Header.NumSignatures, m.Header.NumReadonlySigned, m.Header.NumReadOnly}

	b = appendLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		b = append(b, a...)
	}

	b = append(b, m.RecentBlockhash[:]...)

	b = appendLen(b, len(m.Instructions))
	for _, c := range m.Instructions {
		b = append(b, c.ProgramIndex)
		b = appendLen(b, len(c.Accounts))
		b = append(b, c.Accounts...)
		b = appendLen(b, len(c.Data))
		b = append(b, c.Data...)
	}

	return b
}

// Unmarshal decodes a legacy message. Versioned messages are rejected.
func (m *Message) Unmarshal(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	if b[0]&0x80 != 0 {
		return errors.New("versioned messages not supported")
	}

	r := &wireReader{b: b}

	header, err := r.next(3)
	if err != nil {
		return errors.Wrap(err, "failed to read header")
	}
	m.Header = Header{
		NumSignatures:     header[0],
		NumReadonlySigned: header[1],
		NumReadOnly:       header[2],
	}

	accountLen, err := r.len()
	if err != nil {
		return errors.Wrap(err, "failed to read account len")
	}
	m.Accounts = make([]ed25519.PublicKey, accountLen)
	for i := range m.Accounts {
		if m.Accounts[i], err = r.next(ed25519.PublicKeySize); err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", i)
		}
	}

	blockhash, err := r.next(len(m.RecentBlockhash))
	if err != nil {
		return errors.Wrap(err, "failed to read recent block hash")
	}
	copy(m.RecentBlockhash[:], blockhash)

	instructionLen, err := r.len()
	if err != nil {
		return errors.Wrap(err, "failed to read instruction len")
	}
	m.Instructions = make([]CompiledInstruction, instructionLen)
	for i := range m.Instructions {
		if m.Instructions[i], err = r.instruction(len(m.Accounts)); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d]", i)
		}
	}

	return nil
}

func appendLen(b []byte, n int) []byte {
	b, _ = shortvec.AppendLen(b, n)
	return b
}

// wireReader consumes a wire encoded buffer front to back. Returned slices
// are copies.
type wireReader struct {
	b   []byte
	off int
}

func (r *wireReader) next(n int) ([]byte, error) {
	if len(r.b)-r.off < n {
		return nil, io.ErrUnexpectedEOF
	}

	out := make([]byte, n)
	copy(out, r.b[r.off:])
	r.off += n
	return out, nil
}

func (r *wireReader) len() (int, error) {
	n, size, err := shortvec.DecodeLen(r.b[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += size
	return n, nil
}

func (r *wireReader) rest() []byte {
	return r.b[r.off:]
}

func (r *wireReader) instruction(numAccounts int) (c CompiledInstruction, err error) {
	programIndex, err := r.next(1)
	if err != nil {
		return c, errors.Wrap(err, "failed to read program index")
	}
	c.ProgramIndex = programIndex[0]
	if int(c.ProgramIndex) >= numAccounts {
		return c, errors.Errorf("program index out of range: %d", c.ProgramIndex)
	}

	accountLen, err := r.len()
	if err != nil {
		return c, errors.Wrap(err, "failed to read account len")
	}
	if c.Accounts, err = r.next(accountLen); err != nil {
		return c, errors.Wrap(err, "failed to read accounts")
	}
	for _, index := range c.Accounts {
		if int(index) >= numAccounts {
			return c, errors.Errorf("account index out of range: %d", index)
		}
	}

	dataLen, err := r.len()
	if err != nil {
		return c, errors.Wrap(err, "failed to read data len")
	}
	if c.Data, err = r.next(dataLen); err != nil {
		return c, errors.Wrap(err, "failed to read data")
	}

	return c, nil
}

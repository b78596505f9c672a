package main

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mr-tron/base58"

	"github.com/gamba-labs/gamba-go/pkg/solana"
)

const shutdownTimeout = 5 * time.Second

func printJson(handle io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

func parseAddress(value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil || len(decoded) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid address: %q", value)
	}
	return decoded, nil
}

func parseSignature(value string) (solana.Signature, error) {
	var sig solana.Signature

	decoded, err := base58.Decode(value)
	if err != nil || len(decoded) != len(sig) {
		return sig, fmt.Errorf("invalid signature: %q", value)
	}

	copy(sig[:], decoded)
	return sig, nil
}

func encodeKey(key ed25519.PublicKey) string {
	return base58.Encode(key)
}

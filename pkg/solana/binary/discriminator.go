package binary

import (
	"crypto/sha256"
)

// DiscriminatorSize is the length of the Anchor instruction and account
// type tags.
const DiscriminatorSize = 8

// InstructionDiscriminator returns the tag for the instruction with the
// provided snake_case name.
func InstructionDiscriminator(name string) []byte {
	return hashDiscriminator("global:" + name)
}

// AccountDiscriminator returns the tag for the account type with the
// provided CamelCase name.
func AccountDiscriminator(name string) []byte {
	return hashDiscriminator("account:" + name)
}

func hashDiscriminator(preimage string) []byte {
	h := sha256.Sum256([]byte(preimage))
	discriminator := make([]byte, DiscriminatorSize)
	copy(discriminator, h[:DiscriminatorSize])
	return discriminator
}

func PutDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:*offset+DiscriminatorSize], v)
	*offset += DiscriminatorSize
}

func GetDiscriminator(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, DiscriminatorSize)
	copy(*dst, src[*offset:])
	*offset += DiscriminatorSize
}

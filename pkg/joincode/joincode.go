package joincode

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Alphabet omits 0/O and 1/I so codes survive being read aloud or
// copied from a screenshot. 32 symbols keeps byte % len unbiased.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const Length = 8

// Generate produces a random 8-character join code from Alphabet.
func Generate() (string, error) {
	b := make([]byte, Length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	var sb strings.Builder
	sb.Grow(Length)
	for _, v := range b {
		sb.WriteByte(Alphabet[int(v)%len(Alphabet)])
	}
	return sb.String(), nil
}

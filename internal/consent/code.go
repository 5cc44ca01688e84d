package consent

import (
	"crypto/rand"
	"fmt"
)

// CodeLength is the length of a parent linkage code.
const CodeLength = 6

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a fresh linkage code: CodeLength independent draws
// from A-Z0-9. Codes only need to resist casual guessing behind a
// rate-limited endpoint, not offline brute force.
func GenerateCode() (string, error) {
	buf := make([]byte, CodeLength)
	_, err := rand.Read(buf)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := make([]byte, CodeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}

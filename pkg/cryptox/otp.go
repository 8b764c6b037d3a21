package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeDigits is the length of generated one-time codes.
const CodeDigits = 6

// codeSpace is the number of possible codes (10^CodeDigits).
var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random numeric one-time code of CodeDigits
// digits. Codes with leading zeros are possible and preserved ("004217").
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate one-time code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeDigits, n.Int64()), nil
}

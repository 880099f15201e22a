package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateToken returns n random bytes as an uppercase hex string. Used for
// session tokens.
func GenerateToken(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// GenerateAccessCode returns a numeric code of the given length. The gate
// keypad only accepts digits.
func GenerateAccessCode(length int) (string, error) {
	const charset = "0123456789"

	code := make([]byte, length)

	if _, err := rand.Read(code); err != nil {
		return "", err
	}

	for i := 0; i < length; i++ {
		code[i] = charset[int(code[i])%len(charset)]
	}

	return string(code), nil
}

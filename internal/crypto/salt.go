package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// DefaultSaltLength - длина соли для новых аккаунтов
	DefaultSaltLength = 12

	saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var alphabetSize = big.NewInt(int64(len(saltAlphabet)))

// GenerateSalt генерирует криптографически случайную соль указанной длины.
// Каждый символ выбирается независимо и равномерно из [a-zA-Z0-9].
func GenerateSalt(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("salt length must be positive, got %d", length)
	}

	salt := make([]byte, length)
	for i := range salt {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate salt: %w", err)
		}
		salt[i] = saltAlphabet[n.Int64()]
	}

	return string(salt), nil
}

// NewSalt генерирует соль длины DefaultSaltLength
func NewSalt() (string, error) {
	return GenerateSalt(DefaultSaltLength)
}

package crypto

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// HashLength - длина hex-представления SHA-512 дайджеста (64 bytes * 2)
const HashLength = sha512.Size * 2

// ComputeHash хеширует password+salt с использованием SHA-512
// Соль может быть пустой, тогда хешируется только пароль.
// Возвращает 128 hex символов в нижнем регистре.
func ComputeHash(password, salt string) string {
	sum := sha512.Sum512([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// VerifyHash проверяет, что password с данной солью дает сохраненный хеш
func VerifyHash(password, salt, expected string) bool {
	computed := ComputeHash(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expected)) == 1
}

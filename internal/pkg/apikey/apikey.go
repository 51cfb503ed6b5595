package apikey

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 digest of an API key. SHA-256 rather
// than bcrypt: keys are high-entropy random strings, not user-chosen
// passwords, and bcrypt's 72-byte input limit does not apply.
func Hash(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Verify compares a plaintext key against a stored hash in constant time.
func Verify(plainKey, storedHash string) bool {
	computed := Hash(plainKey)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

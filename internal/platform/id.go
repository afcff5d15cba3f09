package platform

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID returns a new UUID string for database record identity.
func NewID() string {
	return uuid.New().String()
}

// NewToken returns a random alphanumeric string of the given length, drawn
// from crypto/rand. At 24 characters the result carries over 140 bits of
// entropy.
func NewToken(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = tokenAlphabet[int(b[i])%len(tokenAlphabet)]
	}
	return string(b)
}

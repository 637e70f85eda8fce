package filestore

import "math/rand/v2"

const (
	serialAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	serialLength   = 16
)

// NewSerial returns a random 16-character lowercase alphanumeric id.
// Uniqueness against existing rows is not checked.
func NewSerial() string {
	b := make([]byte, serialLength)
	for i := range b {
		b[i] = serialAlphabet[rand.IntN(len(serialAlphabet))]
	}
	return string(b)
}

package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// HashPIN returns the hex-encoded digest of a plaintext PIN.
// The digest is deliberately deterministic and unsalted: the login query
// matches users on (name, pin_hash), so the same PIN must always hash to
// the same value.
func HashPIN(pin string) string {
	sum := sha3.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

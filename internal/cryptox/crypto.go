// Package cryptox holds the credential-hashing primitives used by the
// local record store and the offline credential vault.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// HashPassword returns the hex-encoded SHA-256 digest of password. This is
// the scheme the backend uses, so hashes written to the local users mirror
// stay comparable with backend-confirmed records.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DeriveVerifier derives an argon2id verifier from (password, salt) for the
// offline credential vault. The parameters follow the argon2 package
// recommendations for interactive logins.
func DeriveVerifier(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifierEqual compares two verifiers in constant time.
func VerifierEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

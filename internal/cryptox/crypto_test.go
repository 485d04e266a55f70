package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_MatchesBackendScheme(t *testing.T) {
	// sha256("password") — the digest the backend stores
	const want = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	assert.Equal(t, want, HashPassword("password"))
}

func TestHashPassword_Deterministic(t *testing.T) {
	assert.Equal(t, HashPassword("s3cret"), HashPassword("s3cret"))
	assert.NotEqual(t, HashPassword("s3cret"), HashPassword("s3cret "))
}

func TestDeriveVerifier_SaltSensitive(t *testing.T) {
	pw := []byte("s3cret")
	v1 := DeriveVerifier(pw, []byte("salt-one........"))
	v2 := DeriveVerifier(pw, []byte("salt-two........"))

	require.Len(t, v1, 32)
	assert.False(t, VerifierEqual(v1, v2))
	assert.True(t, VerifierEqual(v1, DeriveVerifier(pw, []byte("salt-one........"))))
}

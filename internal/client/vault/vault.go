// Package vault implements the offline credential vault: the only place the
// client keeps material that can re-authenticate or re-register a user while
// the backend is unreachable.
//
// Threat model: the vault lives in the on-device database, so anyone with
// filesystem access to the device can read it. Verification uses salted
// argon2id verifiers, but the raw credential is retained alongside them
// because replayed registrations must resubmit the original password to the
// backend. That retention is a deliberate trade-off inherited from the
// offline-login feature; it is confined to this package so the exposure has
// exactly one owner.
package vault

import (
	"context"
	"encoding/json"
	"fmt"

	"barangayconnect/internal/client/repositories/kvstore"
	"barangayconnect/internal/common"
	"barangayconnect/internal/cryptox"
)

const saltSize = 32

// Key builds the agreed "<role>-<contact>" storage key.
func Key(role, contact string) string {
	return fmt.Sprintf("%s-%s", role, contact)
}

type credentialRecord struct {
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
	Raw      string `json:"raw"`
}

// OfflineCredentialVault stores per-user offline credentials in the generic
// key-value namespace.
type OfflineCredentialVault struct {
	kv kvstore.Repository
}

func New(kv kvstore.Repository) *OfflineCredentialVault {
	return &OfflineCredentialVault{kv: kv}
}

// Store derives a fresh salted verifier for password and saves it together
// with the raw credential under "<role>-<contact>".
func (v *OfflineCredentialVault) Store(ctx context.Context, role, contact, password string) error {
	salt := common.GenerateRandByteArray(saltSize)
	rec := credentialRecord{
		Salt:     salt,
		Verifier: cryptox.DeriveVerifier([]byte(password), salt),
		Raw:      password,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}
	return v.kv.Set(ctx, Key(role, contact), data)
}

// Verify checks password against the stored verifier for "<role>-<contact>".
// A missing entry verifies as false without error.
func (v *OfflineCredentialVault) Verify(ctx context.Context, role, contact, password string) (bool, error) {
	rec, err := v.load(ctx, role, contact)
	if err != nil || rec == nil {
		return false, err
	}

	candidate := cryptox.DeriveVerifier([]byte(password), rec.Salt)
	return cryptox.VerifierEqual(rec.Verifier, candidate), nil
}

// RawCredential returns the retained raw credential needed to rebuild a
// replayed registration payload, or common.ErrNotFound when absent.
func (v *OfflineCredentialVault) RawCredential(ctx context.Context, role, contact string) (string, error) {
	rec, err := v.load(ctx, role, contact)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", common.ErrNotFound
	}
	return rec.Raw, nil
}

// Delete wipes the stored credential for "<role>-<contact>".
func (v *OfflineCredentialVault) Delete(ctx context.Context, role, contact string) error {
	return v.kv.Delete(ctx, Key(role, contact))
}

func (v *OfflineCredentialVault) load(ctx context.Context, role, contact string) (*credentialRecord, error) {
	data, err := v.kv.Get(ctx, Key(role, contact))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var rec credentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode credential: %w", err)
	}
	return &rec, nil
}

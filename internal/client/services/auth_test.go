package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangayconnect/internal/client/api"
	"barangayconnect/internal/client/models"
	"barangayconnect/internal/common"
	"barangayconnect/internal/cryptox"
)

func TestRegister_MissingPhotoFailsBeforeAnyNetworkCall(t *testing.T) {
	env := newTestEnv(t)

	input := sampleInput("09171234567")
	input.Photo = ""

	_, err := env.auth().Register(context.Background(), input)

	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Photo", vErr.Field)
	assert.Zero(t, env.backend.totalCalls(), "validation must run before the transport is touched")
}

func TestRegister_InvalidNameRejected(t *testing.T) {
	env := newTestEnv(t)

	input := sampleInput("09171234567")
	input.FirstName = "Maria2"

	_, err := env.auth().Register(context.Background(), input)

	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "First name", vErr.Field)
	assert.Zero(t, env.backend.totalCalls())
}

func TestRegister_OfflineIsRefused(t *testing.T) {
	env := newTestEnv(t)
	env.backend.pingErr = common.ErrUnreachable

	_, err := env.auth().Register(context.Background(), sampleInput("09171234567"))

	require.ErrorIs(t, err, common.ErrUnreachable)
	assert.Zero(t, env.backend.callCount("register"))
}

func TestRegister_MirrorsUserAsSynced(t *testing.T) {
	env := newTestEnv(t)
	env.backend.registerFn = func(p *api.RegistrationPayload) (*api.BackendUser, error) {
		assert.Equal(t, "09171234567", p.Contact, "contact must be normalized before sending")
		assert.Equal(t, "s3cret!", p.Password)
		return &api.BackendUser{ID: 7, FirstName: p.FirstName, Status: models.StatusPending}, nil
	}

	su, err := env.auth().Register(context.Background(), sampleInput("+63 917 123 4567"))
	require.NoError(t, err)
	assert.Equal(t, "09171234567", su.Contact)

	rec, err := env.repos.Users.FindByContact(context.Background(), "09171234567")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Synced)
	require.NotNil(t, rec.BackendID)
	assert.EqualValues(t, 7, *rec.BackendID)
	assert.Equal(t, cryptox.HashPassword("s3cret!"), rec.PasswordHash)

	ok, err := env.vault.Verify(context.Background(), models.RoleResident, "09171234567", "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok, "registration must leave an offline credential behind")
}

func TestLogin_PendingResidentGetsNoSession(t *testing.T) {
	env := newTestEnv(t)
	env.backend.loginFn = func(contact, password string) (*api.LoginResponse, error) {
		return &api.LoginResponse{
			User:        &api.BackendUser{ID: 3, Contact: contact, Role: models.RoleResident, Status: models.StatusPending},
			AccessToken: "tok",
		}, nil
	}

	_, err := env.auth().Login(context.Background(), "09171234567", "pw")

	var authErr *common.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.StatusPending, authErr.Status)
	assert.Nil(t, env.session.Current(), "no session may be established")

	rec, err := env.repos.Users.FindByContact(context.Background(), "09171234567")
	require.NoError(t, err)
	assert.Nil(t, rec, "rejected login must not mirror the user")
}

func TestLogin_EstablishesSessionAndOfflineCopy(t *testing.T) {
	env := newTestEnv(t)
	env.backend.loginFn = func(contact, password string) (*api.LoginResponse, error) {
		return &api.LoginResponse{
			User: &api.BackendUser{
				ID: 11, FirstName: "Ana", LastName: "Reyes",
				Contact: contact, Role: models.RoleSecretary, Status: models.StatusApproved,
			},
			AccessToken: "tok-123",
		}, nil
	}

	su, err := env.auth().Login(context.Background(), "0917-123-4567", "pw")
	require.NoError(t, err)
	assert.EqualValues(t, 11, su.BackendID)
	assert.Equal(t, "tok-123", su.Token)
	assert.False(t, su.Offline)
	assert.Same(t, su, env.session.Current())

	rec, err := env.repos.Users.FindByContact(context.Background(), "09171234567")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Synced)

	token, err := env.repos.KV.Get(context.Background(), kvAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(token))

	ok, err := env.vault.Verify(context.Background(), models.RoleSecretary, "09171234567", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOfflineLogin_MatchesLocalMirror(t *testing.T) {
	env := newTestEnv(t)
	rec := recordFromInput(sampleInput("09171234567"))
	rec.Status = models.StatusApproved
	require.NoError(t, env.repos.Users.Upsert(context.Background(), rec))

	su, err := env.auth().OfflineLogin(context.Background(), "09171234567", "s3cret!")
	require.NoError(t, err)
	assert.True(t, su.Offline)
	assert.Equal(t, "09171234567", su.Contact)

	_, err = env.auth().OfflineLogin(context.Background(), "09171234567", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestOfflineLogin_FallsBackToStaffVault(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.vault.Store(context.Background(), models.RoleCaptain, "09180000001", "capt-pw"))

	su, err := env.auth().OfflineLogin(context.Background(), "09180000001", "capt-pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaptain, su.Role)
	assert.True(t, su.Offline)
}

func TestCheckAutoLogin_StaffMarkerBeatsLatestResident(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.vault.Store(ctx, models.RoleSecretary, "09180000002", "sec-pw"))

	resident := recordFromInput(sampleInput("09171234567"))
	resident.Status = models.StatusApproved
	require.NoError(t, env.repos.Users.Upsert(ctx, resident))

	su, err := env.auth().CheckAutoLogin(ctx)
	require.NoError(t, err)
	require.NotNil(t, su)
	assert.Equal(t, models.RoleSecretary, su.Role, "staff marker must win over the newer resident row")
	assert.Equal(t, "09180000002", su.Contact)
}

func TestCheckAutoLogin_LatestResidentWhenNoMarker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	older := recordFromInput(sampleInput("09171111111"))
	older.Status = models.StatusApproved
	require.NoError(t, env.repos.Users.Upsert(ctx, older))

	newer := recordFromInput(sampleInput("09172222222"))
	newer.Status = models.StatusApproved
	require.NoError(t, env.repos.Users.Upsert(ctx, newer))

	su, err := env.auth().CheckAutoLogin(ctx)
	require.NoError(t, err)
	require.NotNil(t, su)
	assert.Equal(t, "09172222222", su.Contact)
}

func TestVerifyContactChange_UpdatesMirrorAndSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := recordFromInput(sampleInput("09171234567"))
	id := int64(21)
	rec.BackendID = &id
	require.NoError(t, env.repos.Users.Upsert(ctx, rec))
	env.session.Set(&models.SessionUser{BackendID: 21, Contact: "09171234567"})

	err := env.auth().VerifyContactChange(ctx, 21, "+639998887777", "123456")
	require.NoError(t, err)
	assert.Equal(t, 1, env.backend.callCount("verifyContact"))

	updated, err := env.repos.Users.FindByContact(ctx, "09998887777")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "09998887777", env.session.Current().Contact)
}

func TestVerifyContactChange_RequiresOTP(t *testing.T) {
	env := newTestEnv(t)

	err := env.auth().VerifyContactChange(context.Background(), 21, "09998887777", "")

	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, env.backend.totalCalls())
}

func TestLogout_ClearsSessionKeysAndMarker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.vault.Store(ctx, models.RoleSecretary, "09180000002", "sec-pw"))
	require.NoError(t, env.repos.KV.Set(ctx, kvAuthToken, []byte("tok")))
	env.session.Set(&models.SessionUser{Role: models.RoleSecretary, Contact: "09180000002"})

	require.NoError(t, env.auth().Logout(ctx))

	assert.Nil(t, env.session.Current())

	token, err := env.repos.KV.Get(ctx, kvAuthToken)
	require.NoError(t, err)
	assert.Nil(t, token)

	keys, err := env.repos.KV.Keys(ctx, models.RoleSecretary+"-")
	require.NoError(t, err)
	assert.Empty(t, keys, "auto-login marker must be gone")
}

func TestStampTokenClaims_FillsBackendIDFromSubject(t *testing.T) {
	// Unsigned token with sub "42"; the signature is never verified here.
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiI0MiJ9." +
		"c2ln"

	su := &models.SessionUser{}
	stampTokenClaims(su, token)
	assert.EqualValues(t, 42, su.BackendID)

	su = &models.SessionUser{BackendID: 7}
	stampTokenClaims(su, token)
	assert.EqualValues(t, 7, su.BackendID, "an already-known id is never overwritten")
}

func TestUpdateProfile_KeepsLocalCredentialAndSyncState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := recordFromInput(sampleInput("09171234567"))
	id := int64(11)
	rec.BackendID = &id
	rec.Synced = true
	require.NoError(t, env.repos.Users.Upsert(ctx, rec))

	env.session.Set(&models.SessionUser{
		BackendID: 11, Contact: "09171234567",
		Role: models.RoleResident, Status: models.StatusApproved, Token: "tok",
	})

	env.backend.updateFn = func(backendID int64, p *api.RegistrationPayload) (*api.BackendUser, error) {
		assert.EqualValues(t, 11, backendID)
		return &api.BackendUser{
			ID: 11, FirstName: p.FirstName, LastName: p.LastName,
			Contact: "09171234567", Role: models.RoleResident, Status: models.StatusApproved,
		}, nil
	}

	input := sampleInput("09171234567")
	input.FirstName = "Mariana"
	su, err := env.auth().UpdateProfile(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Mariana", su.FirstName)

	updated, err := env.repos.Users.FindByContact(ctx, "09171234567")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Mariana", updated.FirstName)
	assert.Equal(t, rec.PasswordHash, updated.PasswordHash, "a profile edit must not wipe the offline credential hash")
	assert.True(t, updated.Synced, "a pushed profile edit must not re-queue the row for sync")
}

func TestUpdateProfile_WithholdsChangedContact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := recordFromInput(sampleInput("09171234567"))
	id := int64(11)
	rec.BackendID = &id
	rec.Synced = true
	require.NoError(t, env.repos.Users.Upsert(ctx, rec))
	env.session.Set(&models.SessionUser{
		BackendID: 11, Contact: "09171234567",
		Role: models.RoleResident, Status: models.StatusApproved, Token: "tok",
	})

	var sentContact string
	env.backend.updateFn = func(backendID int64, p *api.RegistrationPayload) (*api.BackendUser, error) {
		sentContact = p.Contact
		return &api.BackendUser{ID: 11, FirstName: "Maria", Status: models.StatusApproved, Role: models.RoleResident}, nil
	}

	input := sampleInput("09998887777")
	_, err := env.auth().UpdateProfile(ctx, input)
	require.NoError(t, err)

	assert.Empty(t, sentContact, "a changed contact rides the OTP side flow, never the profile payload")

	local, err := env.repos.Users.FindByContact(ctx, "09171234567")
	require.NoError(t, err)
	require.NotNil(t, local, "the local contact stays put until the OTP confirms the change")
}

func TestSendResetOTP_NormalizesContact(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.auth().SendResetOTP(context.Background(), "+63 917 123 4567"))
	assert.Equal(t, 1, env.backend.callCount("forgotPassword"))

	err := env.auth().SendResetOTP(context.Background(), "12345")
	var vErr *common.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

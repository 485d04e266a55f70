// Package services contains the application services of the BarangayConnect
// client: authentication and registration, background reconciliation of
// offline-created records, and the document-request and notification flows.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"barangayconnect/internal/client/api"
	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/session"
	"barangayconnect/internal/client/store"
	"barangayconnect/internal/client/vault"
	"barangayconnect/internal/common"
	"barangayconnect/internal/contactx"
	"barangayconnect/internal/cryptox"
	"barangayconnect/internal/logging"
)

// ErrNoSession is returned by operations that require an authenticated user
// when no session is live.
var ErrNoSession = errors.New("no active session")

// Keys under which the auth service stores session leftovers in the KV
// namespace. Staff auto-login markers use the vault's "<role>-<contact>"
// convention instead.
const (
	kvAuthToken = "authToken"
	kvUserID    = "userId"
	kvRole      = "role"
	kvContact   = "contact"
)

var nameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z' -]*$`)

// authBackend is the slice of the API client the auth service talks to.
type authBackend interface {
	Ping(ctx context.Context) error
	RegisterUser(ctx context.Context, payload *api.RegistrationPayload) (*api.BackendUser, error)
	Login(ctx context.Context, contact, password string) (*api.LoginResponse, error)
	UpdateUser(ctx context.Context, backendID int64, payload *api.RegistrationPayload, token string) (*api.BackendUser, error)
	VerifyContact(ctx context.Context, backendID int64, otp string) error
	ForgotPassword(ctx context.Context, contact string) error
}

// RegistrationInput is the raw form data collected from the user. The
// password stays inside this service and the vault; everything persisted
// locally carries only its hash.
type RegistrationInput struct {
	FirstName    string
	MiddleName   string
	LastName     string
	DOB          string
	Gender       string
	CivilStatus  string
	Contact      string
	Purok        string
	Barangay     string
	City         string
	Province     string
	PostalCode   string
	PlaceOfBirth string
	Password     string
	Photo        string
	Role         string
}

// AuthService defines the authentication operations exposed to the CLI.
//
// Contract:
//   - Register: validate, require connectivity, create on the backend,
//     mirror locally as synced.
//   - Login: authenticate online, enforce the resident approval gate,
//     establish the session, persist the offline copy.
//   - OfflineLogin: verify against the local mirror and the credential
//     vault when the backend is unreachable.
//   - CheckAutoLogin: restore a session on startup, staff markers first.
//
// All methods honor context cancellation.
type AuthService interface {
	Register(ctx context.Context, input *RegistrationInput) (*models.SessionUser, error)
	Login(ctx context.Context, contact, password string) (*models.SessionUser, error)
	OfflineLogin(ctx context.Context, contact, password string) (*models.SessionUser, error)
	CheckAutoLogin(ctx context.Context) (*models.SessionUser, error)
	UpdateProfile(ctx context.Context, input *RegistrationInput) (*models.SessionUser, error)
	VerifyContactChange(ctx context.Context, backendID int64, newContact, otp string) error
	SendResetOTP(ctx context.Context, contact string) error
	Logout(ctx context.Context) error
}

type authService struct {
	api     authBackend
	repos   *store.Repositories
	vault   *vault.OfflineCredentialVault
	session *session.Manager
	log     logging.Logger
}

// NewAuthService wires the auth orchestrator.
func NewAuthService(backend authBackend, repos *store.Repositories, v *vault.OfflineCredentialVault, sm *session.Manager, log logging.Logger) AuthService {
	return &authService{api: backend, repos: repos, vault: v, session: sm, log: log}
}

func validateName(field, value string, required bool) error {
	if value == "" {
		if required {
			return &common.ValidationError{Field: field, Reason: "is required"}
		}
		return nil
	}
	if !nameRe.MatchString(value) {
		return &common.ValidationError{Field: field, Reason: "may only contain letters, spaces, hyphens and apostrophes"}
	}
	return nil
}

func (a *authService) validateRegistration(input *RegistrationInput) error {
	if err := validateName("First name", input.FirstName, true); err != nil {
		return err
	}
	if err := validateName("Middle name", input.MiddleName, false); err != nil {
		return err
	}
	if err := validateName("Last name", input.LastName, true); err != nil {
		return err
	}
	if input.Password == "" {
		return &common.ValidationError{Field: "Password", Reason: "is required"}
	}
	if input.Photo == "" {
		return &common.ValidationError{Field: "Photo", Reason: "is required"}
	}
	return nil
}

// Register creates the account on the backend and mirrors it locally as a
// synced row. Registration is an online-only operation: validation runs
// first, then a reachability probe, so malformed input never touches the
// network.
func (a *authService) Register(ctx context.Context, input *RegistrationInput) (*models.SessionUser, error) {
	if err := a.validateRegistration(input); err != nil {
		return nil, err
	}

	contact, err := contactx.Normalize(input.Contact)
	if err != nil {
		return nil, err
	}
	input.Contact = contact

	if input.Role == "" {
		input.Role = models.RoleResident
	}

	if err := a.api.Ping(ctx); err != nil {
		return nil, fmt.Errorf("registration requires a connection: %w", common.ErrUnreachable)
	}

	user, err := a.api.RegisterUser(ctx, payloadFromInput(input, true))
	if err != nil {
		return nil, err
	}

	rec := recordFromInput(input)
	rec.Synced = true
	if user.ID != 0 {
		id := user.ID
		rec.BackendID = &id
	}
	if user.Status != "" {
		rec.Status = user.Status
	}

	if err := a.repos.Users.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to mirror registered user: %w", err)
	}
	if err := a.vault.Store(ctx, rec.Role, rec.Contact, input.Password); err != nil {
		return nil, fmt.Errorf("failed to store offline credential: %w", err)
	}

	a.log.Info(ctx, "user registered", "contact", rec.Contact, "role", rec.Role)
	return models.FromRecord(rec), nil
}

// Login authenticates against the backend and establishes the session.
// Residents whose account is not yet approved are rejected without a session.
// On success the user is mirrored locally so the next offline launch can
// still authenticate.
func (a *authService) Login(ctx context.Context, contact, password string) (*models.SessionUser, error) {
	contact, err := contactx.Normalize(contact)
	if err != nil {
		return nil, err
	}

	resp, err := a.api.Login(ctx, contact, password)
	if err != nil {
		return nil, err
	}

	user := resp.User
	if user.Role == models.RoleResident && user.Status != models.StatusApproved {
		return nil, &common.AuthorizationError{Role: user.Role, Status: user.Status}
	}

	su := sessionFromBackend(user)
	su.Token = resp.AccessToken
	stampTokenClaims(su, resp.AccessToken)

	rec := recordFromBackend(user)
	rec.PasswordHash = cryptox.HashPassword(password)
	rec.Synced = true
	if err := a.repos.Users.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to mirror user: %w", err)
	}
	if err := a.vault.Store(ctx, user.Role, rec.Contact, password); err != nil {
		return nil, fmt.Errorf("failed to store offline credential: %w", err)
	}
	if err := a.saveSessionKeys(ctx, su); err != nil {
		return nil, err
	}

	a.session.Set(su)
	a.log.Info(ctx, "user logged in", "contact", rec.Contact, "role", user.Role)
	return su, nil
}

// OfflineLogin authenticates against the local mirror and, failing that, the
// staff credential vault. It never touches the network; the caller decides
// when the backend is unreachable.
func (a *authService) OfflineLogin(ctx context.Context, contact, password string) (*models.SessionUser, error) {
	contact, err := contactx.Normalize(contact)
	if err != nil {
		return nil, err
	}

	rec, err := a.repos.Users.FindByCredentials(ctx, contact, cryptox.HashPassword(password))
	if err != nil {
		return nil, err
	}
	if rec != nil {
		if rec.Role == models.RoleResident && rec.Status != models.StatusApproved {
			return nil, &common.AuthorizationError{Role: rec.Role, Status: rec.Status}
		}
		su := models.FromRecord(rec)
		su.Offline = true
		a.session.Set(su)
		return su, nil
	}

	for _, role := range []string{models.RoleSecretary, models.RoleCaptain} {
		ok, err := a.vault.Verify(ctx, role, contact, password)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		su := &models.SessionUser{Contact: contact, Role: role, Status: models.StatusApproved, Offline: true}
		if rec, err := a.repos.Users.FindByContact(ctx, contact); err == nil && rec != nil {
			su = models.FromRecord(rec)
			su.Role = role
			su.Offline = true
		}
		a.session.Set(su)
		return su, nil
	}

	return nil, common.ErrInvalidCredentials
}

// CheckAutoLogin restores a session on startup. Staff markers in the vault
// take priority over the latest resident row, so a secretary or captain who
// logged in on this device is never shadowed by a later resident signup.
func (a *authService) CheckAutoLogin(ctx context.Context) (*models.SessionUser, error) {
	for _, role := range []string{models.RoleSecretary, models.RoleCaptain} {
		keys, err := a.repos.KV.Keys(ctx, role+"-")
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			continue
		}

		contact := strings.TrimPrefix(keys[0], role+"-")
		su := &models.SessionUser{Contact: contact, Role: role, Status: models.StatusApproved, Offline: true}
		if rec, err := a.repos.Users.FindByContact(ctx, contact); err == nil && rec != nil {
			su = models.FromRecord(rec)
			su.Role = role
			su.Offline = true
		}
		a.session.Set(su)
		return su, nil
	}

	rec, err := a.repos.Users.Latest(ctx)
	if err != nil || rec == nil {
		return nil, err
	}
	if rec.Role == models.RoleResident && rec.Status != models.StatusApproved {
		return nil, nil
	}

	su := models.FromRecord(rec)
	su.Offline = true
	a.session.Set(su)
	return su, nil
}

// UpdateProfile pushes profile edits for the current session user. A changed
// contact is withheld from the payload: the backend stages it as a pending
// update and confirms it through the OTP side flow (VerifyContactChange).
func (a *authService) UpdateProfile(ctx context.Context, input *RegistrationInput) (*models.SessionUser, error) {
	cur := a.session.Current()
	if cur == nil {
		return nil, ErrNoSession
	}

	if err := validateName("First name", input.FirstName, true); err != nil {
		return nil, err
	}
	if err := validateName("Last name", input.LastName, true); err != nil {
		return nil, err
	}

	contact, err := contactx.Normalize(input.Contact)
	if err != nil {
		return nil, err
	}
	contactChanged := contact != cur.Contact

	payload := payloadFromInput(input, false)
	if contactChanged {
		payload.Contact = ""
	} else {
		payload.Contact = contact
	}
	payload.Role = cur.Role

	user, err := a.api.UpdateUser(ctx, cur.BackendID, payload, cur.Token)
	if err != nil {
		return nil, err
	}

	rec := recordFromBackend(user)
	rec.Contact = cur.Contact
	rec.Synced = true
	if rec.Role == "" {
		rec.Role = cur.Role
	}
	// Carry over the local-only fields the backend response cannot know.
	if existing, err := a.repos.Users.FindByContact(ctx, cur.Contact); err == nil && existing != nil {
		rec.ID = existing.ID
		rec.PasswordHash = existing.PasswordHash
		if rec.BackendID == nil {
			rec.BackendID = existing.BackendID
		}
	}
	if err := a.repos.Users.UpdateProfile(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update local profile: %w", err)
	}

	su := sessionFromBackend(user)
	su.BackendID = cur.BackendID
	su.Contact = cur.Contact
	su.Token = cur.Token
	su.Offline = cur.Offline
	if su.Role == "" {
		su.Role = cur.Role
	}
	a.session.Set(su)

	if contactChanged {
		a.log.Info(ctx, "contact change staged, awaiting OTP confirmation", "new_contact", contact)
	}
	return su, nil
}

// VerifyContactChange confirms a staged contact change with the OTP sent to
// the new number, then rewrites the local mirror and the live session.
func (a *authService) VerifyContactChange(ctx context.Context, backendID int64, newContact, otp string) error {
	contact, err := contactx.Normalize(newContact)
	if err != nil {
		return err
	}
	if otp == "" {
		return &common.ValidationError{Field: "OTP", Reason: "is required"}
	}

	if err := a.api.VerifyContact(ctx, backendID, otp); err != nil {
		return err
	}
	if err := a.repos.Users.UpdateContact(ctx, backendID, contact); err != nil {
		return fmt.Errorf("failed to update local contact: %w", err)
	}

	if cur := a.session.Current(); cur != nil && cur.BackendID == backendID {
		next := *cur
		next.Contact = contact
		a.session.Set(&next)
	}
	return nil
}

// SendResetOTP asks the backend to dispatch a password-reset OTP.
func (a *authService) SendResetOTP(ctx context.Context, contact string) error {
	contact, err := contactx.Normalize(contact)
	if err != nil {
		return err
	}
	return a.api.ForgotPassword(ctx, contact)
}

// Logout drops the session, the token keys, and the auto-login marker for
// the departing user's role.
func (a *authService) Logout(ctx context.Context) error {
	cur := a.session.Current()
	a.session.Clear()

	for _, key := range []string{kvAuthToken, kvUserID, kvRole, kvContact} {
		if err := a.repos.KV.Delete(ctx, key); err != nil {
			return err
		}
	}
	if cur != nil {
		if err := a.vault.Delete(ctx, cur.Role, cur.Contact); err != nil {
			return err
		}
	}
	return nil
}

func (a *authService) saveSessionKeys(ctx context.Context, su *models.SessionUser) error {
	pairs := map[string]string{
		kvAuthToken: su.Token,
		kvUserID:    strconv.FormatInt(su.BackendID, 10),
		kvRole:      su.Role,
		kvContact:   su.Contact,
	}
	for key, value := range pairs {
		if err := a.repos.KV.Set(ctx, key, []byte(value)); err != nil {
			return fmt.Errorf("failed to save session key %s: %w", key, err)
		}
	}
	return nil
}

// stampTokenClaims peeks at the access token's claims without verifying the
// signature (the server owns verification) to fill the backend id when the
// login payload omitted it.
func stampTokenClaims(su *models.SessionUser, token string) {
	if token == "" || su.BackendID != 0 {
		return
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			su.BackendID = id
		}
	}
}

package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"barangayconnect/internal/client/api"
	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/session"
	"barangayconnect/internal/client/store"
	"barangayconnect/internal/client/vault"
	"barangayconnect/internal/logging"
)

// fakeBackend is an in-memory stand-in for the API client. Behaviour is
// injected per test via the *Fn fields; every call is counted.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	pingErr    error
	registerFn func(payload *api.RegistrationPayload) (*api.BackendUser, error)
	loginFn    func(contact, password string) (*api.LoginResponse, error)
	updateFn   func(backendID int64, payload *api.RegistrationPayload) (*api.BackendUser, error)
	verifyErr  error
	forgotErr  error
	requestsFn func(contact string, status models.RequestStatus) ([]models.DocumentRequest, error)
	addFn      func(req *models.DocumentRequest) (*models.DocumentRequest, error)
	statusErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}}
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackend) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	f.record("ping")
	return f.pingErr
}

func (f *fakeBackend) RegisterUser(ctx context.Context, payload *api.RegistrationPayload) (*api.BackendUser, error) {
	f.record("register")
	if f.registerFn == nil {
		return &api.BackendUser{ID: 1}, nil
	}
	return f.registerFn(payload)
}

func (f *fakeBackend) Login(ctx context.Context, contact, password string) (*api.LoginResponse, error) {
	f.record("login")
	return f.loginFn(contact, password)
}

func (f *fakeBackend) UpdateUser(ctx context.Context, backendID int64, payload *api.RegistrationPayload, token string) (*api.BackendUser, error) {
	f.record("update")
	return f.updateFn(backendID, payload)
}

func (f *fakeBackend) VerifyContact(ctx context.Context, backendID int64, otp string) error {
	f.record("verifyContact")
	return f.verifyErr
}

func (f *fakeBackend) ForgotPassword(ctx context.Context, contact string) error {
	f.record("forgotPassword")
	return f.forgotErr
}

func (f *fakeBackend) ListRequests(ctx context.Context, contact string, status models.RequestStatus) ([]models.DocumentRequest, error) {
	f.record("listRequests")
	if f.requestsFn == nil {
		return nil, nil
	}
	return f.requestsFn(contact, status)
}

func (f *fakeBackend) AddRequest(ctx context.Context, req *models.DocumentRequest) (*models.DocumentRequest, error) {
	f.record("addRequest")
	if f.addFn == nil {
		return req, nil
	}
	return f.addFn(req)
}

func (f *fakeBackend) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus, action, notes string) error {
	f.record("updateRequestStatus")
	return f.statusErr
}

func (f *fakeBackend) DeleteRequest(ctx context.Context, id int64) error {
	f.record("deleteRequest")
	return nil
}

func (f *fakeBackend) ListNotifications(ctx context.Context, userID int64, role, token string) ([]models.Notification, error) {
	f.record("listNotifications")
	return nil, nil
}

func (f *fakeBackend) MarkNotificationRead(ctx context.Context, id int64, token string) error {
	f.record("markNotificationRead")
	return nil
}

func (f *fakeBackend) DeleteNotification(ctx context.Context, id int64, token string) error {
	f.record("deleteNotification")
	return nil
}

// testEnv bundles the wired dependencies over a freshly migrated database.
type testEnv struct {
	backend *fakeBackend
	repos   *store.Repositories
	vault   *vault.OfflineCredentialVault
	session *session.Manager
	log     logging.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, repos, err := store.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &testEnv{
		backend: newFakeBackend(),
		repos:   repos,
		vault:   vault.New(repos.KV),
		session: session.NewManager(),
		log:     logging.NewTextLogger(io.Discard, slog.LevelError),
	}
}

func (e *testEnv) auth() AuthService {
	return NewAuthService(e.backend, e.repos, e.vault, e.session, e.log)
}

func (e *testEnv) sync() *SyncEngine {
	return NewSyncEngine(e.backend, e.repos.Users, e.vault, e.log)
}

func sampleInput(contact string) *RegistrationInput {
	return &RegistrationInput{
		FirstName:   "Maria",
		MiddleName:  "Reyes",
		LastName:    "Dela Cruz",
		DOB:         "1992-08-20",
		Gender:      "Female",
		CivilStatus: "Married",
		Contact:     contact,
		Purok:       "Purok 5",
		Barangay:    "San Isidro",
		City:        "Davao",
		Province:    "Davao del Sur",
		PostalCode:  "8000",
		Password:    "s3cret!",
		Photo:       "base64photo",
		Role:        models.RoleResident,
	}
}

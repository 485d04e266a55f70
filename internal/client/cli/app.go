// Package cli implements the interactive BarangayConnect client: a REPL over
// the auth, sync, document-request, and notification services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"barangayconnect/internal/client/api"
	"barangayconnect/internal/client/config"
	"barangayconnect/internal/client/services"
	"barangayconnect/internal/client/session"
	"barangayconnect/internal/client/store"
	"barangayconnect/internal/client/transport"
	"barangayconnect/internal/client/vault"
	"barangayconnect/internal/logging"
)

// App wires the services behind the REPL and owns the process-wide resources
// (database handle, transport, session slot).
type App struct {
	config  *config.Config
	db      *sql.DB
	api     *api.Client
	session *session.Manager
	log     logging.Logger

	auth   services.AuthService
	sync   *services.SyncEngine
	docs   *services.DocumentService
	notifs *services.NotificationService

	reader *bufio.Reader
}

// NewApp builds the full dependency graph from config: database + migrations,
// transport selection (native bridge when configured, web otherwise), the
// typed API client, and the services.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	db, repos, err := store.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sm := session.NewManager()
	tokenFn := func() string {
		if u := sm.Current(); u != nil {
			return u.Token
		}
		return ""
	}

	selector, err := transport.Detect(cfg.BridgeAddr, cfg.RequestTimeout, tokenFn, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set up transport: %w", err)
	}
	if selector.Native() {
		logger.Info(ctx, "native bridge transport selected", "addr", cfg.BridgeAddr)
	}

	apiClient := api.New(cfg.APIBaseURL, selector)
	v := vault.New(repos.KV)

	return &App{
		config:  cfg,
		db:      db,
		api:     apiClient,
		session: sm,
		log:     logger,
		auth:    services.NewAuthService(apiClient, repos, v, sm, logger),
		sync:    services.NewSyncEngine(apiClient, repos.Users, v, logger),
		docs:    services.NewDocumentService(apiClient, sm),
		notifs:  services.NewNotificationService(apiClient, sm),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any saved session, starts the reachability watcher, and
// enters the REPL. It blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if su, err := a.auth.CheckAutoLogin(ctx); err == nil && su != nil {
		fmt.Printf("Welcome back, %s!\n", displayName(su))
	}

	a.sync.StartWatcher(ctx, a.config.PingInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the database and transport resources.
func (a *App) Close() {
	if err := a.api.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close transport", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) isStaff() bool {
	u := a.session.Current()
	if u == nil {
		return false
	}
	return u.Role == "secretary" || u.Role == "captain"
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.Current(); u != nil {
		s = displayName(u) + " "
	}
	if a.sync.Online() {
		s += "online"
	} else {
		s += "offline"
	}
	return fmt.Sprintf("(%s)", s)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"barangayconnect/internal/client/api"
	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/repositories/users"
	"barangayconnect/internal/client/vault"
	"barangayconnect/internal/logging"
)

// syncBackend is the slice of the API client the sync engine talks to.
type syncBackend interface {
	Ping(ctx context.Context) error
	RegisterUser(ctx context.Context, payload *api.RegistrationPayload) (*api.BackendUser, error)
}

// SyncEngine replays locally-created user rows to the backend. Rows are
// independent: each replay runs on its own goroutine, a failed row stays
// unsynced and is retried on the next pass, and siblings are unaffected.
type SyncEngine struct {
	api    syncBackend
	users  users.Repository
	vault  *vault.OfflineCredentialVault
	log    logging.Logger
	online atomic.Bool
}

// NewSyncEngine wires the reconciliation engine.
func NewSyncEngine(backend syncBackend, repo users.Repository, v *vault.OfflineCredentialVault, log logging.Logger) *SyncEngine {
	return &SyncEngine{api: backend, users: repo, vault: v, log: log}
}

// Online reports the last probed reachability state.
func (s *SyncEngine) Online() bool {
	return s.online.Load()
}

// Run performs one reconciliation pass over every unsynced row. Per-row
// failures are logged and swallowed; the returned error covers only the
// initial scan.
func (s *SyncEngine) Run(ctx context.Context) error {
	rows, err := s.users.GetUnsynced(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan unsynced rows: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	s.log.Info(ctx, "sync pass started", "rows", len(rows))

	var wg sync.WaitGroup
	for i := range rows {
		row := rows[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.replay(ctx, &row); err != nil {
				s.log.Error(ctx, "row sync failed", "contact", row.Contact, "error", err)
			}
		}()
	}
	wg.Wait()
	return nil
}

// replay resubmits one row as a registration. The backend treats the contact
// as the natural key, so replaying an already-known row is a no-op on its
// side. The row is marked synced only when the response identifies the user.
func (s *SyncEngine) replay(ctx context.Context, r *models.UserRecord) error {
	raw, err := s.vault.RawCredential(ctx, r.Role, r.Contact)
	if err != nil {
		return fmt.Errorf("no replay credential: %w", err)
	}

	user, err := s.api.RegisterUser(ctx, payloadFromRecord(r, raw))
	if err != nil {
		return err
	}
	if !user.Identified() {
		return fmt.Errorf("response did not identify the user")
	}

	return s.users.MarkSynced(ctx, r.Contact, user.ID)
}

// StartWatcher launches the reachability watcher on its own goroutine. Every
// interval it probes /ping (with a short exponential backoff so one dropped
// packet does not flap the state) and, on an offline-to-online transition,
// kicks off a sync pass. The goroutine exits when ctx is cancelled.
func (s *SyncEngine) StartWatcher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			online := s.probe(ctx)
			wasOnline := s.online.Swap(online)

			if online && !wasOnline {
				s.log.Info(ctx, "backend reachable, starting sync pass")
				if err := s.Run(ctx); err != nil {
					s.log.Error(ctx, "sync pass failed", "error", err)
				}
			}
		}
	}()
}

func (s *SyncEngine) probe(ctx context.Context) bool {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.api.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	return err == nil
}

package users

import (
	"context"

	"barangayconnect/internal/client/models"
)

// Repository describes the local users mirror. Implementations are backed by
// the on-device SQLite database; mutations are immediately durable.
type Repository interface {
	// Upsert inserts the record or, when a row with the same contact exists,
	// overwrites all fields except the local identity. The synced flag is
	// written exactly as passed by the caller.
	Upsert(ctx context.Context, r *models.UserRecord) error

	// GetAll lists every mirrored row.
	GetAll(ctx context.Context) ([]models.UserRecord, error)

	// GetByStatus lists rows with the given account status.
	GetByStatus(ctx context.Context, status string) ([]models.UserRecord, error)

	// FindByContact returns the row for the given contact, or (nil, nil)
	// when absent.
	FindByContact(ctx context.Context, contact string) (*models.UserRecord, error)

	// FindByCredentials returns the row matching contact and password hash,
	// or (nil, nil) when no row matches.
	FindByCredentials(ctx context.Context, contact, passwordHash string) (*models.UserRecord, error)

	// GetUnsynced lists rows still pending outbound reconciliation.
	GetUnsynced(ctx context.Context) ([]models.UserRecord, error)

	// MarkSynced flags the row as backend-confirmed and stamps its backend id.
	MarkSynced(ctx context.Context, contact string, backendID int64) error

	// UpdateProfile overwrites the non-contact profile fields of the row
	// identified by backend id (or local id as a fallback).
	UpdateProfile(ctx context.Context, r *models.UserRecord) error

	// UpdateContact rewrites the contact of the row with the given backend id.
	UpdateContact(ctx context.Context, backendID int64, newContact string) error

	// Latest returns the most recently inserted row, or (nil, nil) when the
	// mirror is empty.
	Latest(ctx context.Context) (*models.UserRecord, error)

	// Clear removes every row.
	Clear(ctx context.Context) error
}

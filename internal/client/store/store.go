// Package store bootstraps the local database: it opens the SQLite file,
// applies the embedded versioned migrations, and wires the repositories.
// The database is opened once per process lifetime.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/mattn/go-sqlite3"

	"barangayconnect/internal/client/migrations"
	"barangayconnect/internal/client/repositories/kvstore"
	"barangayconnect/internal/client/repositories/users"
)

// Repositories bundles the data-access layers sharing one database handle.
type Repositories struct {
	Users users.Repository
	KV    kvstore.Repository
}

// RunMigrations applies the embedded goose migrations in order. Safe to run
// on every startup; applied versions are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the database at dsn, migrates it, and
// returns the handle plus wired repositories.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, *Repositories, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Users: users.NewSQLiteRepository(db),
		KV:    kvstore.NewSQLiteRepository(db),
	}
	return db, repos, nil
}

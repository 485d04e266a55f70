package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"barangayconnect/internal/client/models"
	"barangayconnect/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// selectColumns normalizes legacy NULLs to documented defaults: empty string
// for text columns, 'Pending' for status. Older rows can predate the
// pending_updates and place_of_birth columns.
const selectColumns = `
	id, backend_id,
	COALESCE(first_name, ''), COALESCE(middle_name, ''), COALESCE(last_name, ''),
	COALESCE(dob, ''), COALESCE(gender, ''), COALESCE(civil_status, ''),
	COALESCE(contact, ''), COALESCE(purok, ''), COALESCE(barangay, ''),
	COALESCE(city, ''), COALESCE(province, ''), COALESCE(postal_code, ''),
	COALESCE(place_of_birth, ''), COALESCE(password, ''), COALESCE(photo, ''),
	COALESCE(role, ''), COALESCE(status, 'Pending'), synced,
	COALESCE(pending_updates, '')`

func scanRecord(row interface{ Scan(...any) error }) (*models.UserRecord, error) {
	var r models.UserRecord
	var backendID sql.NullInt64
	var synced int

	err := row.Scan(&r.ID, &backendID,
		&r.FirstName, &r.MiddleName, &r.LastName,
		&r.DOB, &r.Gender, &r.CivilStatus,
		&r.Contact, &r.Purok, &r.Barangay,
		&r.City, &r.Province, &r.PostalCode,
		&r.PlaceOfBirth, &r.PasswordHash, &r.Photo,
		&r.Role, &r.Status, &synced,
		&r.PendingUpdates)
	if err != nil {
		return nil, err
	}

	if backendID.Valid {
		r.BackendID = &backendID.Int64
	}
	r.Synced = synced == 1
	return &r, nil
}

func (repo *SQLiteRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.UserRecord, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.UserRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert inserts or overwrites a mirror row keyed on the unique contact.
func (repo *SQLiteRepository) Upsert(ctx context.Context, r *models.UserRecord) error {
	query := `
	INSERT INTO users (
		backend_id, first_name, middle_name, last_name, dob, gender, civil_status,
		contact, purok, barangay, city, province, postal_code, place_of_birth,
		password, photo, role, status, synced, pending_updates
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(contact) DO UPDATE SET
		backend_id = excluded.backend_id,
		first_name = excluded.first_name,
		middle_name = excluded.middle_name,
		last_name = excluded.last_name,
		dob = excluded.dob,
		gender = excluded.gender,
		civil_status = excluded.civil_status,
		purok = excluded.purok,
		barangay = excluded.barangay,
		city = excluded.city,
		province = excluded.province,
		postal_code = excluded.postal_code,
		place_of_birth = excluded.place_of_birth,
		password = excluded.password,
		photo = excluded.photo,
		role = excluded.role,
		status = excluded.status,
		synced = excluded.synced,
		pending_updates = excluded.pending_updates`

	var backendID any
	if r.BackendID != nil {
		backendID = *r.BackendID
	}
	synced := 0
	if r.Synced {
		synced = 1
	}

	_, err := repo.db.ExecContext(ctx, query,
		backendID, r.FirstName, r.MiddleName, r.LastName, r.DOB, r.Gender, r.CivilStatus,
		r.Contact, r.Purok, r.Barangay, r.City, r.Province, r.PostalCode, r.PlaceOfBirth,
		r.PasswordHash, r.Photo, r.Role, r.Status, synced, r.PendingUpdates)
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", r.Contact, err)
	}
	return nil
}

func (repo *SQLiteRepository) GetAll(ctx context.Context) ([]models.UserRecord, error) {
	return repo.queryRecords(ctx, `SELECT `+selectColumns+` FROM users`)
}

func (repo *SQLiteRepository) GetByStatus(ctx context.Context, status string) ([]models.UserRecord, error) {
	return repo.queryRecords(ctx, `SELECT `+selectColumns+` FROM users WHERE status = ?`, status)
}

func (repo *SQLiteRepository) FindByContact(ctx context.Context, contact string) (*models.UserRecord, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM users WHERE contact = ?`, contact)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by contact: %w", err)
	}
	return r, nil
}

func (repo *SQLiteRepository) FindByCredentials(ctx context.Context, contact, passwordHash string) (*models.UserRecord, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM users WHERE contact = ? AND password = ?`, contact, passwordHash)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by credentials: %w", err)
	}
	return r, nil
}

func (repo *SQLiteRepository) GetUnsynced(ctx context.Context) ([]models.UserRecord, error) {
	return repo.queryRecords(ctx, `SELECT `+selectColumns+` FROM users WHERE synced = 0`)
}

func (repo *SQLiteRepository) MarkSynced(ctx context.Context, contact string, backendID int64) error {
	var id any
	if backendID != 0 {
		id = backendID
	}
	_, err := repo.db.ExecContext(ctx,
		`UPDATE users SET synced = 1, backend_id = ? WHERE contact = ?`, id, contact)
	if err != nil {
		return fmt.Errorf("failed to mark user %s synced: %w", contact, err)
	}
	return nil
}

// UpdateProfile leaves contact untouched; contact changes go through the OTP
// verification flow and UpdateContact.
func (repo *SQLiteRepository) UpdateProfile(ctx context.Context, r *models.UserRecord) error {
	var id int64
	if r.BackendID != nil {
		id = *r.BackendID
	} else {
		id = r.ID
	}
	synced := 0
	if r.Synced {
		synced = 1
	}
	_, err := repo.db.ExecContext(ctx, `
		UPDATE users SET
			first_name = ?, middle_name = ?, last_name = ?, dob = ?, gender = ?,
			civil_status = ?, purok = ?, barangay = ?, city = ?, province = ?,
			postal_code = ?, place_of_birth = ?, password = ?, photo = ?, synced = ?
		WHERE backend_id = ? OR id = ?`,
		r.FirstName, r.MiddleName, r.LastName, r.DOB, r.Gender,
		r.CivilStatus, r.Purok, r.Barangay, r.City, r.Province,
		r.PostalCode, r.PlaceOfBirth, r.PasswordHash, r.Photo, synced,
		id, id)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}

func (repo *SQLiteRepository) UpdateContact(ctx context.Context, backendID int64, newContact string) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE users SET contact = ? WHERE backend_id = ?`, newContact, backendID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}

func (repo *SQLiteRepository) Latest(ctx context.Context) (*models.UserRecord, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM users ORDER BY id DESC LIMIT 1`)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest user: %w", err)
	}
	return r, nil
}

func (repo *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

// Package models defines the client-side domain types: the local user mirror,
// the in-memory session projection, and the remote-owned request/notification
// shapes that pages cache transiently.
package models

// User roles understood by the client. The backend sends them lower-cased.
const (
	RoleResident  = "resident"
	RoleSecretary = "secretary"
	RoleCaptain   = "captain"
)

// Account statuses assigned by the backend.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// UserRecord is a row of the local users mirror. BackendID is nil until the
// backend confirms the record; Synced distinguishes locally-pending rows
// (false) from last-known-agreement with the backend (true).
//
// Contact is unique within the store and is the natural reconciliation key
// between local and remote records.
type UserRecord struct {
	ID           int64
	BackendID    *int64
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
	// PasswordHash is the hex SHA-256 digest of the credential. The raw
	// credential itself lives in the offline vault, never in this record.
	PasswordHash   string
	Photo          string
	Role           string
	Status         string
	Synced         bool
	PendingUpdates string
}

// SessionUser is the in-memory projection of a UserRecord plus the
// backend-issued fields. Exactly one SessionUser is live per process.
type SessionUser struct {
	BackendID    int64
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
	Photo        string
	Role         string
	Status       string
	Token        string
	Offline      bool
}

// FromRecord builds a session projection from a local mirror row.
func FromRecord(r *UserRecord) *SessionUser {
	u := &SessionUser{
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		DOB:          r.DOB,
		Gender:       r.Gender,
		CivilStatus:  r.CivilStatus,
		Contact:      r.Contact,
		Purok:        r.Purok,
		Barangay:     r.Barangay,
		City:         r.City,
		Province:     r.Province,
		PostalCode:   r.PostalCode,
		PlaceOfBirth: r.PlaceOfBirth,
		Photo:        r.Photo,
		Role:         r.Role,
		Status:       r.Status,
	}
	if r.BackendID != nil {
		u.BackendID = *r.BackendID
	}
	return u
}

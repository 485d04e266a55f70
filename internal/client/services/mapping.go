package services

import (
	"barangayconnect/internal/client/api"
	"barangayconnect/internal/client/models"
	"barangayconnect/internal/cryptox"
)

// payloadFromInput builds the sanitized outbound body. The password rides
// along only when withPassword is set (creation and replay, never profile
// edits).
func payloadFromInput(input *RegistrationInput, withPassword bool) *api.RegistrationPayload {
	p := &api.RegistrationPayload{
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		LastName:     input.LastName,
		DOB:          input.DOB,
		Gender:       input.Gender,
		CivilStatus:  input.CivilStatus,
		Contact:      input.Contact,
		Purok:        input.Purok,
		Barangay:     input.Barangay,
		City:         input.City,
		Province:     input.Province,
		PostalCode:   input.PostalCode,
		PlaceOfBirth: input.PlaceOfBirth,
		Role:         input.Role,
		Photo:        input.Photo,
	}
	if withPassword {
		p.Password = input.Password
	}
	return p
}

// payloadFromRecord rebuilds the registration body for a replayed row. The
// raw credential comes from the vault; the row itself only carries the hash.
func payloadFromRecord(r *models.UserRecord, rawPassword string) *api.RegistrationPayload {
	return &api.RegistrationPayload{
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
		Role:         r.Role,
		Password:     rawPassword,
		Photo:        r.Photo,
	}
}

func recordFromInput(input *RegistrationInput) *models.UserRecord {
	return &models.UserRecord{
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		LastName:     input.LastName,
		DOB:          input.DOB,
		Gender:       input.Gender,
		CivilStatus:  input.CivilStatus,
		Contact:      input.Contact,
		Purok:        input.Purok,
		Barangay:     input.Barangay,
		City:         input.City,
		Province:     input.Province,
		PostalCode:   input.PostalCode,
		PlaceOfBirth: input.PlaceOfBirth,
		PasswordHash: cryptox.HashPassword(input.Password),
		Photo:        input.Photo,
		Role:         input.Role,
		Status:       models.StatusPending,
	}
}

func recordFromBackend(u *api.BackendUser) *models.UserRecord {
	rec := &models.UserRecord{
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		DOB:          u.DOB,
		Gender:       u.Gender,
		CivilStatus:  u.CivilStatus,
		Contact:      u.Contact,
		Purok:        u.Purok,
		Barangay:     u.Barangay,
		City:         u.City,
		Province:     u.Province,
		PostalCode:   u.PostalCode,
		PlaceOfBirth: u.PlaceOfBirth,
		Photo:        u.Photo,
		Role:         u.Role,
		Status:       u.Status,
	}
	if u.ID != 0 {
		id := u.ID
		rec.BackendID = &id
	}
	return rec
}

func sessionFromBackend(u *api.BackendUser) *models.SessionUser {
	return &models.SessionUser{
		BackendID:    u.ID,
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		DOB:          u.DOB,
		Gender:       u.Gender,
		CivilStatus:  u.CivilStatus,
		Contact:      u.Contact,
		Purok:        u.Purok,
		Barangay:     u.Barangay,
		City:         u.City,
		Province:     u.Province,
		PostalCode:   u.PostalCode,
		PlaceOfBirth: u.PlaceOfBirth,
		Photo:        u.Photo,
		Role:         u.Role,
		Status:       u.Status,
	}
}

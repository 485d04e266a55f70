package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/services"
	"barangayconnect/internal/common"
)

func displayName(u *models.SessionUser) string {
	if u.FirstName == "" {
		return u.Contact
	}
	return u.FirstName + " " + u.LastName
}

// readPhoto loads the photo file named by the user and returns it
// base64-encoded, the way the backend expects it inside the JSON payload.
func readPhoto(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Register collects the registration form and creates the account. The
// service refuses to register while the backend is unreachable.
func (a *App) Register(ctx context.Context) error {
	input := &services.RegistrationInput{Role: models.RoleResident}

	fields := []struct {
		prompt string
		dest   *string
	}{
		{"First name", &input.FirstName},
		{"Middle name (optional)", &input.MiddleName},
		{"Last name", &input.LastName},
		{"Date of birth (YYYY-MM-DD)", &input.DOB},
		{"Gender", &input.Gender},
		{"Civil status", &input.CivilStatus},
		{"Place of birth", &input.PlaceOfBirth},
		{"Contact number", &input.Contact},
		{"Purok", &input.Purok},
		{"Barangay", &input.Barangay},
		{"City", &input.City},
		{"Province", &input.Province},
		{"Postal code", &input.PostalCode},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dest = v
	}

	photoPath, err := GetSimpleText(a.reader, "Photo file (1x1 picture)", os.Stdout)
	if err != nil {
		return err
	}
	if input.Photo, err = readPhoto(photoPath); err != nil {
		return err
	}

	if input.Password, err = GetPassword(os.Stdout, "Choose a password"); err != nil {
		return err
	}

	su, err := a.auth.Register(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s. Your account is pending barangay approval.\n", displayName(su))
	return nil
}

// Login authenticates online, falling back to the local mirror and the staff
// credential vault when the backend is unreachable.
func (a *App) Login(ctx context.Context) error {
	contact, err := GetSimpleText(a.reader, "Contact number", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout, "Password")
	if err != nil {
		return err
	}

	su, err := a.auth.Login(ctx, contact, password)
	if errors.Is(err, common.ErrUnreachable) {
		printlnFn("Backend unreachable, trying offline login...")
		su, err = a.auth.OfflineLogin(ctx, contact, password)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", displayName(su), su.Role)
	return nil
}

// ForgotPassword asks the backend to send a reset OTP to the given number.
func (a *App) ForgotPassword(ctx context.Context) error {
	contact, err := GetSimpleText(a.reader, "Contact number", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.auth.SendResetOTP(ctx, contact); err != nil {
		return err
	}
	printlnFn("If the number is registered, an OTP is on its way.")
	return nil
}

// VerifyContact confirms a staged contact change with the OTP sent to the
// new number.
func (a *App) VerifyContact(ctx context.Context) error {
	cur := a.session.Current()
	if cur == nil {
		return services.ErrNoSession
	}

	newContact, err := GetSimpleText(a.reader, "New contact number", os.Stdout)
	if err != nil {
		return err
	}
	otp, err := GetSimpleText(a.reader, "OTP", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.VerifyContactChange(ctx, cur.BackendID, newContact, otp); err != nil {
		return err
	}
	printlnFn("Contact number updated.")
	return nil
}

// Profile prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.Current()
	if u == nil {
		return services.ErrNoSession
	}

	fmt.Printf("%s %s %s\n", u.FirstName, u.MiddleName, u.LastName)
	fmt.Printf("  Role: %s  Status: %s\n", u.Role, u.Status)
	fmt.Printf("  Born: %s in %s\n", u.DOB, u.PlaceOfBirth)
	fmt.Printf("  Contact: %s\n", u.Contact)
	fmt.Printf("  Address: %s, %s, %s, %s %s\n", u.Purok, u.Barangay, u.City, u.Province, u.PostalCode)
	return nil
}

// EditProfile collects profile edits, pre-filled with the current values. A
// changed contact number triggers the OTP flow ('verify' command).
func (a *App) EditProfile(ctx context.Context) error {
	u := a.session.Current()
	if u == nil {
		return services.ErrNoSession
	}

	input := &services.RegistrationInput{Role: u.Role, Photo: u.Photo}

	fields := []struct {
		prompt  string
		current string
		dest    *string
	}{
		{"First name", u.FirstName, &input.FirstName},
		{"Middle name", u.MiddleName, &input.MiddleName},
		{"Last name", u.LastName, &input.LastName},
		{"Date of birth", u.DOB, &input.DOB},
		{"Gender", u.Gender, &input.Gender},
		{"Civil status", u.CivilStatus, &input.CivilStatus},
		{"Place of birth", u.PlaceOfBirth, &input.PlaceOfBirth},
		{"Contact number", u.Contact, &input.Contact},
		{"Purok", u.Purok, &input.Purok},
		{"Barangay", u.Barangay, &input.Barangay},
		{"City", u.City, &input.City},
		{"Province", u.Province, &input.Province},
		{"Postal code", u.PostalCode, &input.PostalCode},
	}
	for _, f := range fields {
		v, err := GetOptionalText(a.reader, f.prompt, f.current, os.Stdout)
		if err != nil {
			return err
		}
		*f.dest = v
	}

	if _, err := a.auth.UpdateProfile(ctx, input); err != nil {
		return err
	}

	printlnFn("Profile updated.")
	if input.Contact != u.Contact {
		printlnFn("An OTP was sent to the new number; run 'verify' to confirm it.")
	}
	return nil
}

// Sync runs a reconciliation pass on demand.
func (a *App) Sync(ctx context.Context) error {
	return a.sync.Run(ctx)
}

// Logout drops the session and the auto-login marker.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

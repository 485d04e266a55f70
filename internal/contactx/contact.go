// Package contactx normalizes Philippine mobile contact numbers to the
// canonical local form used as the reconciliation key between local and
// remote user records.
package contactx

import (
	"strings"

	"barangayconnect/internal/common"
)

func invalid(reason string) error {
	return &common.ValidationError{Field: "Contact number", Reason: reason}
}

// Normalize rewrites raw to the canonical "09XXXXXXXXX" form.
//
// Accepted spellings of the same number:
//
//	09171234567
//	+639171234567
//	639171234567
//
// Spaces and dashes are stripped before validation. Anything that does not
// reduce to 11 digits starting with "09" is rejected.
func Normalize(raw string) (string, error) {
	contact := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))

	if len(contact) < 10 || len(contact) > 13 {
		return "", invalid("has an invalid length")
	}

	switch {
	case strings.HasPrefix(contact, "+63"):
		contact = "0" + contact[3:]
	case strings.HasPrefix(contact, "63"):
		contact = "0" + contact[2:]
	case strings.HasPrefix(contact, "0"):
		// already local form
	default:
		return "", invalid("has an invalid format")
	}

	if len(contact) != 11 || !strings.HasPrefix(contact, "09") {
		return "", invalid("has an invalid format")
	}
	for _, r := range contact {
		if r < '0' || r > '9' {
			return "", invalid("must contain digits only")
		}
	}

	return contact, nil
}

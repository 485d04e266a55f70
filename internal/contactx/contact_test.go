package contactx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangayconnect/internal/common"
)

func TestNormalize_CanonicalForms(t *testing.T) {
	// all spellings of the same subscriber number must converge
	for _, raw := range []string{
		"09171234567",
		"+639171234567",
		"639171234567",
		"0917 123 4567",
		"0917-123-4567",
	} {
		got, err := Normalize(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, "09171234567", got, "input %q", raw)
	}
}

func TestNormalize_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"too short", "0917123"},
		{"too long", "+6391712345678901"},
		{"bad prefix", "19171234567"},
		{"not mobile", "02812345678"},
		{"letters", "0917abc4567"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			require.Error(t, err)

			var verr *common.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "Contact number", verr.Field)
		})
	}
}

//go:build unit

package form_test

import (
	"testing"
	"time"

	"reimburse-api/internal/domain/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAttributes() form.Attributes {
	return form.Attributes{
		ClientID:  "4411",
		PolicyID:  "900210",
		ServiceID: 1,
		Name:      "Ana Perez",
		DNI:       "12345678",
		Email:     "a@b.com",
	}
}

func TestNewForm(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid attributes", func(t *testing.T) {
		f, err := form.NewForm(validAttributes(), nil, now, 24*time.Hour)
		require.NoError(t, err)

		assert.Equal(t, form.StatusPending, f.Status())
		assert.False(t, f.IsSubmitted())
		assert.NotEmpty(t, f.Token())
		assert.Equal(t, now.Add(24*time.Hour), f.ExpiresAt())
		assert.False(t, f.IsExpired(now))
		assert.True(t, f.IsExpired(now.Add(25*time.Hour)))
	})

	t.Run("attribute validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*form.Attributes)
			errIs  error
		}{
			{"missing client id", func(a *form.Attributes) { a.ClientID = "" }, form.ErrMissingClientID},
			{"missing policy id", func(a *form.Attributes) { a.PolicyID = "" }, form.ErrMissingPolicyID},
			{"missing name", func(a *form.Attributes) { a.Name = "" }, form.ErrMissingName},
			{"missing dni", func(a *form.Attributes) { a.DNI = "" }, form.ErrMissingDNI},
			{"empty email", func(a *form.Attributes) { a.Email = "" }, form.ErrInvalidEmail},
			{"malformed email", func(a *form.Attributes) { a.Email = "not-an-email" }, form.ErrInvalidEmail},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				attrs := validAttributes()
				tc.mutate(&attrs)
				_, err := form.NewForm(attrs, nil, now, 24*time.Hour)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestNewToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tok := form.NewToken()
		assert.GreaterOrEqual(t, len(tok), 43) // 32 bytes base64url
		_, dup := seen[tok]
		assert.False(t, dup)
		seen[tok] = struct{}{}
	}
}

package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratehub/internal/common"
)

func TestName_Boundaries(t *testing.T) {
	assert.Error(t, Name(strings.Repeat("a", 19)))
	assert.NoError(t, Name(strings.Repeat("a", 20)))
	assert.NoError(t, Name(strings.Repeat("a", 60)))
	assert.Error(t, Name(strings.Repeat("a", 61)))
	assert.Error(t, Name(""))
}

func TestAddress_Boundaries(t *testing.T) {
	assert.NoError(t, Address(""))
	assert.NoError(t, Address(strings.Repeat("a", 400)))
	assert.Error(t, Address(strings.Repeat("a", 401)))
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid with uppercase and special", "Passw0rd!", true},
		{"no uppercase, no special", "password1", false},
		{"uppercase and special, all caps", "PASSWORD!", true},
		{"uppercase but no special", "Password1", false},
		{"special but no uppercase", "password!", false},
		{"too short", "Pass!", false},
		{"too long", "Password!Password!", false},
		{"length 8 exactly", "Passwo!d", true},
		{"length 16 exactly", "Password!Passw0r", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("user@example.com"))
	assert.NoError(t, Email("a.b+c@sub.domain.org"))
	assert.Error(t, Email("userexample.com"))   // no @
	assert.Error(t, Email("user@example"))      // no dot in domain
	assert.Error(t, Email("user@@example.com")) // two @
	assert.Error(t, Email("us er@example.com")) // whitespace
	assert.Error(t, Email("@example.com"))      // empty local part
	assert.Error(t, Email(""))
}

func TestRole(t *testing.T) {
	known := []string{"NORMAL_USER", "STORE_OWNER", "SYSTEM_ADMIN"}
	assert.NoError(t, Role("NORMAL_USER", known))
	assert.NoError(t, Role("SYSTEM_ADMIN", known))
	assert.Error(t, Role("SUPER_ADMIN", known))
	assert.Error(t, Role("normal_user", known))
	assert.Error(t, Role("", known))
}

func TestNewUser_FirstViolationWins(t *testing.T) {
	known := []string{"NORMAL_USER", "STORE_OWNER", "SYSTEM_ADMIN"}
	longName := strings.Repeat("a", 25)

	// Presence comes before everything else.
	err := NewUser("", "bad-email", "weak", "", "", known)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "request", fieldErr.Field)

	// Name is reported before the (also invalid) password.
	err = NewUser("short", "user@example.com", "weak", "somewhere", "NORMAL_USER", known)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "name", fieldErr.Field)

	// Password before email.
	err = NewUser(longName, "bad-email", "weak", "somewhere", "NORMAL_USER", known)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "password", fieldErr.Field)

	// Email before role.
	err = NewUser(longName, "bad-email", "Passw0rd!", "somewhere", "NOT_A_ROLE", known)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "email", fieldErr.Field)

	// Role last.
	err = NewUser(longName, "user@example.com", "Passw0rd!", "somewhere", "NOT_A_ROLE", known)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "role", fieldErr.Field)

	assert.NoError(t, NewUser(longName, "user@example.com", "Passw0rd!", "somewhere", "NORMAL_USER", known))
}

func TestFieldError_MapsToValidation(t *testing.T) {
	err := Name("short")
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Equal(t, 400, common.HTTPStatusFromError(err))
}

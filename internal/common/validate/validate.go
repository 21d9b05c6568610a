// Package validate holds the pure field validators applied before any account
// mutation. Each validator returns the first violation it finds; the chained
// NewUser check runs them in the order the clients expect error messages in.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"ratehub/internal/common"
)

const (
	NameMinLen    = 20
	NameMaxLen    = 60
	AddressMaxLen = 400
	PasswordMin   = 8
	PasswordMax   = 16

	specialChars = `!@#$%^&*(),.?":{}|<>`
)

// local-part @ domain . tld, no whitespace anywhere
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError names the offending field and the reason. It unwraps to
// common.ErrValidation so the HTTP layer maps every violation to 400.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return common.ErrValidation
}

func fieldErr(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

func Name(s string) error {
	n := utf8.RuneCountInString(s)
	if n < NameMinLen {
		return fieldErr("name", fmt.Sprintf("must be at least %d characters", NameMinLen))
	}
	if n > NameMaxLen {
		return fieldErr("name", fmt.Sprintf("must be at most %d characters", NameMaxLen))
	}
	return nil
}

func Address(s string) error {
	if utf8.RuneCountInString(s) > AddressMaxLen {
		return fieldErr("address", fmt.Sprintf("must not exceed %d characters", AddressMaxLen))
	}
	return nil
}

func Password(s string) error {
	n := utf8.RuneCountInString(s)
	if n < PasswordMin || n > PasswordMax {
		return fieldErr("password", fmt.Sprintf("must be between %d and %d characters", PasswordMin, PasswordMax))
	}
	hasUpper := false
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return fieldErr("password", "must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(s, specialChars) {
		return fieldErr("password", "must contain at least one special character")
	}
	return nil
}

func Email(s string) error {
	if !emailPattern.MatchString(s) {
		return fieldErr("email", "invalid email format")
	}
	return nil
}

func Role(s string, known []string) error {
	for _, r := range known {
		if s == r {
			return nil
		}
	}
	return fieldErr("role", "invalid role")
}

// NewUser runs the full chain for account creation: presence, name, address,
// password, email, role. First violation wins; nothing is aggregated.
func NewUser(name, email, password, address, role string, knownRoles []string) error {
	if name == "" || email == "" || password == "" || address == "" || role == "" {
		return fieldErr("request", "all fields are required")
	}
	if err := Name(name); err != nil {
		return err
	}
	if err := Address(address); err != nil {
		return err
	}
	if err := Password(password); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Role(role, knownRoles)
}

// Package credentials checks login credentials against a backing set.
package credentials

import "strings"

// Validator reports whether a username/password pair is valid.
// Implementations must fail closed on blank input.
type Validator interface {
	Validate(username, password string) bool
}

// StaticValidator validates against a fixed in-memory credential table.
// It stands in for a real identity provider behind the Validator interface.
type StaticValidator struct {
	credentials map[string]string
}

// NewStaticValidator creates a validator over the given username->password
// table. The map is copied so later mutation by the caller has no effect.
func NewStaticValidator(credentials map[string]string) *StaticValidator {
	table := make(map[string]string, len(credentials))
	for user, pass := range credentials {
		table[user] = pass
	}
	return &StaticValidator{credentials: table}
}

// NewDefaultValidator returns a validator seeded with the built-in demo accounts.
func NewDefaultValidator() *StaticValidator {
	return NewStaticValidator(map[string]string{
		"admin": "admin#pass#",
		"user1": "password123",
		"user2": "secret@2024",
	})
}

// Validate reports whether the pair matches the credential table.
// Blank or whitespace-only username or password is always invalid.
// Password comparison is exact and case-sensitive.
func (v *StaticValidator) Validate(username, password string) bool {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return false
	}

	expected, ok := v.credentials[username]
	return ok && password == expected
}

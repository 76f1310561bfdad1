package entity

import (
	"time"

	"github.com/danielmsk/accord/internal/pkg/valueobject"
)

// Account is the stored representation of a credentialed account.
type Account struct {
	ID            string
	Username      string
	PasswordHash  string
	TOTPSecretEnc []byte
	FirstName     valueobject.Optional[string]
	LastName      valueobject.Optional[string]
	EnrollmentRef string
	CreatedAt     time.Time
}

// HasTOTPSecret reports whether a second factor is enrolled.
func (a Account) HasTOTPSecret() bool {
	return len(a.TOTPSecretEnc) > 0
}

// NewAccount carries the fields needed to insert an account. The store
// assigns the ID.
type NewAccount struct {
	Username      string
	PasswordHash  string
	TOTPSecretEnc []byte
	FirstName     valueobject.Optional[string]
	LastName      valueobject.Optional[string]
	CreatedAt     time.Time
}

// Profile is the public projection of an account.
type Profile struct {
	ID        string
	Username  string
	FirstName valueobject.Optional[string]
	LastName  valueobject.Optional[string]
}

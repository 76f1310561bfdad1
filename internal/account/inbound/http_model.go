package inbound

import (
	"net/http"
	"time"

	"github.com/danielmsk/accord/internal/pkg/valueobject"
)

type SignupRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type SignupResponse struct {
	ID            string                       `json:"id"`
	Username      string                       `json:"username"`
	FirstName     valueobject.Optional[string] `json:"first_name"`
	LastName      valueobject.Optional[string] `json:"last_name"`
	EnrollmentRef string                       `json:"enrollment_ref,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
}

func (SignupResponse) Message() string {
	return "Account created. Scan the enrollment QR with an authenticator app."
}

func (SignupResponse) StatusCode() int {
	return http.StatusCreated
}

type VerifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code"`
}

type VerifyResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (VerifyResponse) Message() string {
	return "Credentials verified"
}

type ProfileRequest struct {
	ID string `json:"id"`
}

type ProfileResponse struct {
	ID        string                       `json:"id"`
	Username  string                       `json:"username"`
	FirstName valueobject.Optional[string] `json:"first_name"`
	LastName  valueobject.Optional[string] `json:"last_name"`
}

package mfa

// Purpose identifies the MFA encryption purpose.
type Purpose string

const (
	// PurposeTOTPSecret scopes encryption to TOTP shared secrets.
	PurposeTOTPSecret Purpose = "totp_secret"
)

// Scope binds encryption to account-specific identifiers.
// This is used as AAD (Additional Authenticated Data) in AES-GCM.
type Scope struct {
	// Username is the immutable account identifier for scoping.
	Username string
	// Purpose is the encryption purpose.
	Purpose Purpose
}

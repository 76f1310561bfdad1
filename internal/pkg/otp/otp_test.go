package otp

import (
	"strings"
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"
)

func TestTOTPGenerate(t *testing.T) {

	t.Run("ReturnsSecretAndProvisioningURI", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Accord", 30, 1, libOTP.DigitsSix)

		// Act
		secret, uri, err := o.Generate("alice")

		// Assert
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if secret == "" {
			t.Fatalf("expected a non-empty secret")
		}
		if !strings.HasPrefix(uri, "otpauth://totp/") {
			t.Fatalf("expected an otpauth uri, got %q", uri)
		}
		if !strings.Contains(uri, "Accord") {
			t.Fatalf("expected issuer in uri, got %q", uri)
		}
	})
}

func TestTOTPValidate(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	newSecret := func(t *testing.T, o *TOTP) string {
		t.Helper()
		secret, _, err := o.Generate("alice")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return secret
	}

	t.Run("AcceptsCurrentCode", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Accord", 30, 1, libOTP.DigitsSix)
		secret := newSecret(t, o)
		code, err := o.GenerateCode(secret, now)
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}

		// Act & Assert
		if !o.Validate(code, secret, now) {
			t.Fatalf("expected current code to validate")
		}
	})

	t.Run("AcceptsAdjacentPeriodWithinSkew", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Accord", 30, 1, libOTP.DigitsSix)
		secret := newSecret(t, o)

		previous, err := o.GenerateCode(secret, now.Add(-30*time.Second))
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		next, err := o.GenerateCode(secret, now.Add(30*time.Second))
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}

		// Act & Assert
		if !o.Validate(previous, secret, now) {
			t.Fatalf("expected previous period code to validate")
		}
		if !o.Validate(next, secret, now) {
			t.Fatalf("expected next period code to validate")
		}
	})

	t.Run("RejectsCodeOutsideSkew", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Accord", 30, 1, libOTP.DigitsSix)
		secret := newSecret(t, o)
		stale, err := o.GenerateCode(secret, now.Add(-5*time.Minute))
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}

		// Act & Assert
		if o.Validate(stale, secret, now) {
			t.Fatalf("expected stale code to be rejected")
		}
	})

	t.Run("RejectsMalformedCode", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Accord", 30, 1, libOTP.DigitsSix)
		secret := newSecret(t, o)

		// Act & Assert
		if o.Validate("abcdef", secret, now) {
			t.Fatalf("expected non-numeric code to be rejected")
		}
		if o.Validate("", secret, now) {
			t.Fatalf("expected empty code to be rejected")
		}
	})
}

package hash

import (
	"strings"
	"testing"
)

func TestBcrypt(t *testing.T) {

	t.Run("VerifyMatchesOwnHash", func(t *testing.T) {

		// Arrange
		h := NewBcrypt(4, "pepper")

		// Act
		hashed, err := h.Hash("s3cret-password")

		// Assert
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if !h.Verify(string(hashed), "s3cret-password") {
			t.Fatalf("expected verify to succeed for the original password")
		}
	})

	t.Run("VerifyRejectsWrongPassword", func(t *testing.T) {

		// Arrange
		h := NewBcrypt(4, "pepper")
		hashed, err := h.Hash("s3cret-password")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Act & Assert
		if h.Verify(string(hashed), "wrong-password") {
			t.Fatalf("expected verify to fail for a wrong password")
		}
	})

	t.Run("VerifyRejectsWrongPepper", func(t *testing.T) {

		// Arrange
		hashed, err := NewBcrypt(4, "pepper").Hash("s3cret-password")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Act & Assert
		if NewBcrypt(4, "other").Verify(string(hashed), "s3cret-password") {
			t.Fatalf("expected verify to fail with a different pepper")
		}
	})

	t.Run("VerifyRejectsMalformedHash", func(t *testing.T) {

		// Arrange
		h := NewBcrypt(4, "pepper")

		// Act & Assert
		if h.Verify("not-a-bcrypt-hash", "s3cret-password") {
			t.Fatalf("expected verify to fail for a malformed hash")
		}
	})
}

func TestArgon2id(t *testing.T) {

	t.Run("HashIsSelfDescribing", func(t *testing.T) {

		// Arrange
		h := NewArgon2id("pepper")

		// Act
		hashed, err := h.Hash("s3cret-password")

		// Assert
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if !strings.HasPrefix(string(hashed), "$argon2id$") {
			t.Fatalf("expected hash prefix $argon2id$, got %q", hashed)
		}
	})

	t.Run("VerifyMatchesOwnHash", func(t *testing.T) {

		// Arrange
		h := NewArgon2id("pepper")
		hashed, err := h.Hash("s3cret-password")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Act & Assert
		if !h.Verify(string(hashed), "s3cret-password") {
			t.Fatalf("expected verify to succeed for the original password")
		}
	})

	t.Run("VerifyRejectsWrongPassword", func(t *testing.T) {

		// Arrange
		h := NewArgon2id("pepper")
		hashed, err := h.Hash("s3cret-password")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Act & Assert
		if h.Verify(string(hashed), "wrong-password") {
			t.Fatalf("expected verify to fail for a wrong password")
		}
	})

	t.Run("VerifyRejectsMalformedHash", func(t *testing.T) {

		// Arrange
		h := NewArgon2id("pepper")

		// Act & Assert
		if h.Verify("$argon2id$garbage", "s3cret-password") {
			t.Fatalf("expected verify to fail for a malformed hash")
		}
	})

	t.Run("HashesAreSalted", func(t *testing.T) {

		// Arrange
		h := NewArgon2id("pepper")

		// Act
		first, err := h.Hash("s3cret-password")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		second, err := h.Hash("s3cret-password")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Assert
		if string(first) == string(second) {
			t.Fatalf("expected distinct hashes for the same password")
		}
	})
}

package mfa

import (
	"bytes"
	"testing"
)

func testEncryptor() *AESGCMEncryptor {
	key := bytes.Repeat([]byte{0x42}, 32)
	return NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: key})
}

func TestAESGCMEncryptor(t *testing.T) {
	scope := Scope{Username: "alice", Purpose: PurposeTOTPSecret}

	t.Run("RoundTrip", func(t *testing.T) {

		// Arrange
		e := testEncryptor()

		// Act
		ciphertext, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		plaintext, err := e.Decrypt(ciphertext, scope)

		// Assert
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if string(plaintext) != "JBSWY3DPEHPK3PXP" {
			t.Fatalf("expected original plaintext, got %q", plaintext)
		}
	})

	t.Run("CiphertextDiffersFromPlaintext", func(t *testing.T) {

		// Arrange
		e := testEncryptor()

		// Act
		ciphertext, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)

		// Assert
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if bytes.Contains(ciphertext, []byte("JBSWY3DPEHPK3PXP")) {
			t.Fatalf("expected ciphertext to not contain the plaintext")
		}
	})

	t.Run("DecryptFailsForOtherAccount", func(t *testing.T) {

		// Arrange
		e := testEncryptor()
		ciphertext, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}

		// Act
		_, err = e.Decrypt(ciphertext, Scope{Username: "mallory", Purpose: PurposeTOTPSecret})

		// Assert
		if err == nil {
			t.Fatalf("expected decrypt to fail for a different account scope")
		}
	})

	t.Run("DecryptFailsForOtherPurpose", func(t *testing.T) {

		// Arrange
		e := testEncryptor()
		ciphertext, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}

		// Act
		_, err = e.Decrypt(ciphertext, Scope{Username: "alice", Purpose: Purpose("other")})

		// Assert
		if err == nil {
			t.Fatalf("expected decrypt to fail for a different purpose scope")
		}
	})

	t.Run("DecryptFailsOnTamperedCiphertext", func(t *testing.T) {

		// Arrange
		e := testEncryptor()
		ciphertext, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		ciphertext[len(ciphertext)-1] ^= 0xFF

		// Act
		_, err = e.Decrypt(ciphertext, scope)

		// Assert
		if err == nil {
			t.Fatalf("expected decrypt to fail for tampered ciphertext")
		}
	})

	t.Run("DecryptFailsOnTruncatedCiphertext", func(t *testing.T) {

		// Arrange
		e := testEncryptor()

		// Act
		_, err := e.Decrypt([]byte{0x01, 0x02}, scope)

		// Assert
		if err == nil {
			t.Fatalf("expected decrypt to fail for truncated ciphertext")
		}
	})
}

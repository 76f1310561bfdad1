package validator

import "testing"

func TestV10ValidatorPassword(t *testing.T) {
	type input struct {
		Password string `validate:"required,password"`
	}

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	t.Run("AcceptsValidPassword", func(t *testing.T) {
		if err := v.Validate(input{Password: "s3cret-password"}); err != nil {
			t.Fatalf("expected valid password, got %v", err)
		}
	})

	t.Run("AcceptsShortPassword", func(t *testing.T) {
		if err := v.Validate(input{Password: "P@ss1"}); err != nil {
			t.Fatalf("expected short password to pass, got %v", err)
		}
	})

	t.Run("RejectsEmpty", func(t *testing.T) {
		if err := v.Validate(input{}); err == nil {
			t.Fatalf("expected empty password to be rejected")
		}
	})

	t.Run("RejectsTooLong", func(t *testing.T) {
		long := make([]byte, 73)
		for i := range long {
			long[i] = 'a'
		}
		if err := v.Validate(input{Password: string(long)}); err == nil {
			t.Fatalf("expected 73 character password to be rejected")
		}
	})
}

func TestV10ValidatorAlphaspace(t *testing.T) {
	type input struct {
		Name string `validate:"omitempty,alphaspace"`
	}

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	t.Run("AcceptsLettersAndSpaces", func(t *testing.T) {
		if err := v.Validate(input{Name: "Mary Jane"}); err != nil {
			t.Fatalf("expected letters and spaces to pass, got %v", err)
		}
	})

	t.Run("AcceptsUnicodeLetters", func(t *testing.T) {
		if err := v.Validate(input{Name: "José Müller"}); err != nil {
			t.Fatalf("expected unicode letters to pass, got %v", err)
		}
	})

	t.Run("AcceptsEmpty", func(t *testing.T) {
		if err := v.Validate(input{}); err != nil {
			t.Fatalf("expected empty optional field to pass, got %v", err)
		}
	})

	t.Run("RejectsDigits", func(t *testing.T) {
		if err := v.Validate(input{Name: "Mary 2"}); err == nil {
			t.Fatalf("expected digits to be rejected")
		}
	})

	t.Run("RejectsPunctuation", func(t *testing.T) {
		if err := v.Validate(input{Name: "O'Hara"}); err == nil {
			t.Fatalf("expected punctuation to be rejected")
		}
	})
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/mfa"
)

type AuthenticateInput struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required"`
	TOTPCode string `validate:"required,len=6,numeric"`
}

type AuthenticateOutput struct {
	ID       string
	Username string
}

func (s *Usecase) Authenticate(ctx context.Context, in AuthenticateInput) (*AuthenticateOutput, error) {
	ctx, span := s.startSpan(ctx, "Authenticate")
	defer span.End()

	in.Username = strings.TrimSpace(strings.ToLower(in.Username))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	account, err := s.repoStore.GetAccountByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get account by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Password first. The TOTP code is never consulted for a wrong password.
	if !s.hasherFor(account.PasswordHash).Verify(account.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password verification failed", "username", in.Username)
		return nil, goerror.NewBusiness("Invalid password", goerror.CodeUnauthorized)
	}

	if account.HasTOTPSecret() {
		secret, err := s.mfaEncryptor.Decrypt(account.TOTPSecretEnc, mfa.Scope{
			Username: account.Username,
			Purpose:  mfa.PurposeTOTPSecret,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to decrypt totp secret", "account_id", account.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		if !s.totp.Validate(in.TOTPCode, string(secret), s.clock.Now()) {
			slog.WarnContext(ctx, "totp verification failed", "username", in.Username)
			return nil, goerror.NewBusiness("Invalid TOTP code", goerror.CodeUnauthorized)
		}
	} else {
		// Accounts are always created with a secret; tolerate its absence
		// rather than locking the account out.
		slog.WarnContext(ctx, "account has no totp secret, second factor skipped", "account_id", account.ID)
	}

	return &AuthenticateOutput{
		ID:       account.ID,
		Username: account.Username,
	}, nil
}

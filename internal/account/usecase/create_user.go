package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/danielmsk/accord/internal/account/entity"
	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/mfa"
	"github.com/danielmsk/accord/internal/pkg/valueobject"
)

type CreateUserInput struct {
	Username  string `validate:"required,min=3,max=64"`
	Password  string `validate:"required,password"`
	FirstName string `validate:"omitempty,max=100,alphaspace"`
	LastName  string `validate:"omitempty,max=100,alphaspace"`

	FirstNameSet bool
	LastNameSet  bool
}

type CreateUserOutput struct {
	ID            string
	Username      string
	FirstName     valueobject.Optional[string]
	LastName      valueobject.Optional[string]
	EnrollmentRef string
	CreatedAt     time.Time
}

func (s *Usecase) CreateUser(ctx context.Context, in CreateUserInput) (*CreateUserOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer span.End()

	in.Username = strings.TrimSpace(strings.ToLower(in.Username))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// Fast path only; the store's unique index is the real guarantee.
	if _, err := s.repoStore.GetAccountByUsername(ctx, in.Username); err == nil {
		return nil, goerror.NewBusiness("Username already registered", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.createHasher().Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	secret, uri, err := s.totp.Generate(in.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "error", err)
		return nil, goerror.NewServer(err)
	}

	secretEnc, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{
		Username: in.Username,
		Purpose:  mfa.PurposeTOTPSecret,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "error", err)
		return nil, goerror.NewServer(err)
	}

	newAccount := entity.NewAccount{
		Username:      in.Username,
		PasswordHash:  string(hashedPassword),
		TOTPSecretEnc: secretEnc,
		CreatedAt:     s.clock.Now(),
	}
	if in.FirstNameSet {
		newAccount.FirstName = valueobject.Some(in.FirstName)
	}
	if in.LastNameSet {
		newAccount.LastName = valueobject.Some(in.LastName)
	}

	id, err := s.repoStore.CreateAccount(ctx, newAccount)
	if err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Username already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create account", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	// The account exists from here on; enrollment extras are best effort.
	enrollmentRef := s.renderEnrollment(ctx, id, in.Username, uri)

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishAccountCreated(ctx, AccountCreatedEvent{
			EventID:   s.uid.Generate(),
			AccountID: id,
			Username:  newAccount.Username,
			CreatedAt: newAccount.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish account created", "account_id", id, "error", err)
		}
		return nil
	})

	return &CreateUserOutput{
		ID:            id,
		Username:      newAccount.Username,
		FirstName:     newAccount.FirstName,
		LastName:      newAccount.LastName,
		EnrollmentRef: enrollmentRef,
		CreatedAt:     newAccount.CreatedAt,
	}, nil
}

// renderEnrollment renders and stores the provisioning QR artifact. Failure
// never fails the signup; the account simply has no enrollment reference.
func (s *Usecase) renderEnrollment(ctx context.Context, id, username, uri string) string {
	ref, err := s.repoArtifact.RenderEnrollment(ctx, id, uri)
	if err != nil {
		slog.WarnContext(ctx, "failed to render enrollment artifact", "account_id", id, "username", username, "error", err)
		return ""
	}

	if err := s.repoStore.SetEnrollmentRef(ctx, id, ref); err != nil {
		slog.WarnContext(ctx, "failed to record enrollment artifact ref", "account_id", id, "error", err)
		return ""
	}

	return ref
}

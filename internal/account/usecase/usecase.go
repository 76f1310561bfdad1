package usecase

import (
	"context"
	"strings"

	"github.com/danielmsk/accord/internal/account/entity"
	"github.com/danielmsk/accord/internal/pkg/cache"
	"github.com/danielmsk/accord/internal/pkg/clock"
	"github.com/danielmsk/accord/internal/pkg/config"
	"github.com/danielmsk/accord/internal/pkg/goroutine"
	"github.com/danielmsk/accord/internal/pkg/hash"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/mfa"
	"github.com/danielmsk/accord/internal/pkg/otp"
	"github.com/danielmsk/accord/internal/pkg/uid"
	"github.com/danielmsk/accord/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type AccountCreatedEvent struct {
	EventID   int64
	AccountID string
	Username  string
	CreatedAt string
}

type repoStore interface {
	CreateAccount(ctx context.Context, in entity.NewAccount) (string, error)
	GetAccountByUsername(ctx context.Context, username string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id string) (*entity.Account, error)
	SetEnrollmentRef(ctx context.Context, id, ref string) error
}

type repoArtifact interface {
	// RenderEnrollment renders the provisioning URI as a QR image, uploads
	// it, and returns the object reference.
	RenderEnrollment(ctx context.Context, accountID, uri string) (string, error)
}

type repoMessaging interface {
	PublishAccountCreated(ctx context.Context, msg AccountCreatedEvent) error
}

type Usecase struct {
	repoStore     repoStore
	repoArtifact  repoArtifact
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	cache         cache.Cache
	bcrypt        hash.Hash
	argon2id      hash.Hash
	mfaEncryptor  mfa.Encryptor
	uid           uid.NumberID
	totp          otp.OTP
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoStore     repoStore
	RepoArtifact  repoArtifact
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Cache         cache.Cache
	Bcrypt        hash.Hash
	Argon2ID      hash.Hash
	MFAEncryptor  mfa.Encryptor
	UID           uid.NumberID
	Totp          otp.OTP
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore:     dep.RepoStore,
		repoArtifact:  dep.RepoArtifact,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		cache:         dep.Cache,
		bcrypt:        dep.Bcrypt,
		argon2id:      dep.Argon2ID,
		mfaEncryptor:  dep.MFAEncryptor,
		uid:           dep.UID,
		totp:          dep.Totp,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

// hasherFor picks the hash implementation a stored hash was produced with.
// Hash strings are self-describing, so verification works regardless of the
// algorithm configured for new accounts.
func (s *Usecase) hasherFor(stored string) hash.Hash {
	if strings.HasPrefix(stored, "$argon2id$") {
		return s.argon2id
	}
	return s.bcrypt
}

// createHasher returns the hash implementation configured for new accounts.
func (s *Usecase) createHasher() hash.Hash {
	if s.cfg.GetString("modules.account.password_algorithm") == "argon2id" {
		return s.argon2id
	}
	return s.bcrypt
}

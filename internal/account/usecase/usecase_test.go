package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/danielmsk/accord/internal/account/entity"
	"github.com/danielmsk/accord/internal/pkg/cache"
	"github.com/danielmsk/accord/internal/pkg/config"
	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/goroutine"
	"github.com/danielmsk/accord/internal/pkg/hash"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/mfa"
	"github.com/danielmsk/accord/internal/pkg/otp"
	"github.com/danielmsk/accord/internal/pkg/uid"
	"github.com/danielmsk/accord/internal/pkg/validator"
	libOTP "github.com/pquerna/otp"
)

const testConfigYAML = `
modules:
  account:
    password_algorithm: bcrypt
    profile_cache_ttl_minutes: 5
`

type fakeStore struct {
	mu         sync.Mutex
	byUsername map[string]*entity.Account
	nextID     int

	createErr        error
	getByUsernameErr error
	getByIDErr       error
	setRefErr        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byUsername: make(map[string]*entity.Account)}
}

func (f *fakeStore) CreateAccount(_ context.Context, in entity.NewAccount) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return "", f.createErr
	}
	if _, ok := f.byUsername[in.Username]; ok {
		return "", goerror.ErrConflict
	}

	f.nextID++
	id := "acc-" + strconv.Itoa(f.nextID)
	f.byUsername[in.Username] = &entity.Account{
		ID:            id,
		Username:      in.Username,
		PasswordHash:  in.PasswordHash,
		TOTPSecretEnc: in.TOTPSecretEnc,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		CreatedAt:     in.CreatedAt,
	}

	return id, nil
}

func (f *fakeStore) GetAccountByUsername(_ context.Context, username string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByUsernameErr != nil {
		return nil, f.getByUsernameErr
	}
	account, ok := f.byUsername[username]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	copied := *account

	return &copied, nil
}

func (f *fakeStore) GetAccountByID(_ context.Context, id string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	for _, account := range f.byUsername {
		if account.ID == id {
			copied := *account

			return &copied, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (f *fakeStore) SetEnrollmentRef(_ context.Context, id, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setRefErr != nil {
		return f.setRefErr
	}
	for _, account := range f.byUsername {
		if account.ID == id {
			account.EnrollmentRef = ref

			return nil
		}
	}

	return goerror.ErrNotFound
}

type fakeArtifact struct {
	mu    sync.Mutex
	calls int
	ref   string
	err   error
}

func (f *fakeArtifact) RenderEnrollment(_ context.Context, accountID, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.ref != "" {
		return f.ref, nil
	}

	return "accounts/" + accountID + "/enrollment.png", nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []AccountCreatedEvent
	err    error
}

func (f *fakeMessaging) PublishAccountCreated(_ context.Context, msg AccountCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, msg)

	return nil
}

func (f *fakeMessaging) published() []AccountCreatedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]AccountCreatedEvent(nil), f.events...)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	val, ok := f.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}

	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value

	return nil
}

func (f *fakeCache) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, key)

	return nil
}

func (f *fakeCache) Close() error { return nil }

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type testDeps struct {
	store     *fakeStore
	artifact  *fakeArtifact
	messaging *fakeMessaging
	cache     *fakeCache
	goroutine *goroutine.Manager
	clock     *fakeClock
	bcrypt    hash.Hash
	argon2id  hash.Hash
	mfaEnc    mfa.Encryptor
	totp      otp.OTP
}

func newTestUsecase(t *testing.T) (*Usecase, *testDeps) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	snow, err := uid.NewSnowflake()
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	deps := &testDeps{
		store:     newFakeStore(),
		artifact:  &fakeArtifact{},
		messaging: &fakeMessaging{},
		cache:     newFakeCache(),
		goroutine: goroutine.NewManager(8),
		clock:     &fakeClock{now: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)},
		bcrypt:    hash.NewBcrypt(4, "pepper"),
		argon2id:  hash.NewArgon2id("pepper"),
		mfaEnc:    mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: key}),
		totp:      otp.NewTOTP("Accord", 30, 1, libOTP.DigitsSix),
	}

	uc := New(Dependency{
		RepoStore:     deps.store,
		RepoArtifact:  deps.artifact,
		RepoMessaging: deps.messaging,
		Validator:     v,
		Config:        cfg,
		Cache:         deps.cache,
		Bcrypt:        deps.bcrypt,
		Argon2ID:      deps.argon2id,
		MFAEncryptor:  deps.mfaEnc,
		UID:           snow,
		Totp:          deps.totp,
		Clock:         deps.clock,
		Instrument:    instrument.NewNoop(),
		Goroutine:     deps.goroutine,
	})

	return uc, deps
}

// seedAccount registers an account through CreateUser and returns its output
// together with the plaintext TOTP secret needed to compute valid codes.
func seedAccount(t *testing.T, uc *Usecase, deps *testDeps, username, password string) (*CreateUserOutput, string) {
	t.Helper()

	out, err := uc.CreateUser(context.Background(), CreateUserInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	account, err := deps.store.GetAccountByUsername(context.Background(), out.Username)
	if err != nil {
		t.Fatalf("get seeded account: %v", err)
	}

	secret, err := deps.mfaEnc.Decrypt(account.TOTPSecretEnc, mfa.Scope{
		Username: account.Username,
		Purpose:  mfa.PurposeTOTPSecret,
	})
	if err != nil {
		t.Fatalf("decrypt seeded secret: %v", err)
	}

	return out, string(secret)
}

func asError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a structured error, got %T: %v", err, err)
	}

	return gerr
}

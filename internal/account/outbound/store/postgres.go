package store

import (
	"context"
	"errors"

	"github.com/danielmsk/accord/internal/account/entity"
	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/uid"
	"github.com/danielmsk/accord/internal/pkg/valueobject"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Postgres is the pgx-backed account store. The unique index on username is
// the authoritative duplicate guard.
type Postgres struct {
	conn *pgxpool.Pool
	oid  uid.StringID
	ins  instrument.Instrumentation
}

func NewPostgres(conn *pgxpool.Pool, oid uid.StringID, ins instrument.Instrumentation) *Postgres {
	return &Postgres{conn: conn, oid: oid, ins: ins}
}

func (s *Postgres) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *Postgres) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.outbound.store").Start(ctx, name)
}

func (s *Postgres) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Postgres) CreateAccount(ctx context.Context, in entity.NewAccount) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	id := s.oid.Generate()
	_, err = s.conn.Exec(ctx, `
		INSERT INTO accounts (id, username, password_hash, totp_secret, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id,
		in.Username,
		in.PasswordHash,
		in.TOTPSecretEnc,
		optionalToPtr(in.FirstName),
		optionalToPtr(in.LastName),
		in.CreatedAt,
	)
	if err != nil {
		return "", s.mapError(err)
	}

	return id, nil
}

func (s *Postgres) GetAccountByUsername(ctx context.Context, username string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByUsername")
	defer func() { s.endSpan(span, err) }()

	return s.getAccount(ctx, `
		SELECT id, username, password_hash, totp_secret, first_name, last_name, enrollment_ref, created_at
		FROM accounts WHERE username = $1`, username)
}

func (s *Postgres) GetAccountByID(ctx context.Context, id string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	return s.getAccount(ctx, `
		SELECT id, username, password_hash, totp_secret, first_name, last_name, enrollment_ref, created_at
		FROM accounts WHERE id = $1`, id)
}

func (s *Postgres) SetEnrollmentRef(ctx context.Context, id, ref string) (err error) {
	ctx, span := s.startSpan(ctx, "SetEnrollmentRef")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `UPDATE accounts SET enrollment_ref = $2 WHERE id = $1`, id, ref)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *Postgres) getAccount(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var (
		account       entity.Account
		firstName     *string
		lastName      *string
		enrollmentRef *string
	)

	err := s.conn.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.TOTPSecretEnc,
		&firstName,
		&lastName,
		&enrollmentRef,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	account.FirstName = ptrToOptional(firstName)
	account.LastName = ptrToOptional(lastName)
	if enrollmentRef != nil {
		account.EnrollmentRef = *enrollmentRef
	}

	return &account, nil
}

func optionalToPtr(o valueobject.Optional[string]) *string {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

func ptrToOptional(p *string) valueobject.Optional[string] {
	if p == nil {
		return valueobject.None[string]()
	}
	return valueobject.Some(*p)
}

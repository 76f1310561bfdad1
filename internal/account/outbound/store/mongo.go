package store

import (
	"context"
	"errors"
	"time"

	"github.com/danielmsk/accord/internal/account/entity"
	"github.com/danielmsk/accord/internal/pkg/goerror"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Mongo is the document-backed account store. The ID is the inserted
// document's ObjectID in hex form.
type Mongo struct {
	coll *mongo.Collection
	ins  instrument.Instrumentation
}

func NewMongo(coll *mongo.Collection, ins instrument.Instrumentation) *Mongo {
	return &Mongo{coll: coll, ins: ins}
}

type accountDocument struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Username      string        `bson:"username"`
	PasswordHash  string        `bson:"password_hash"`
	TOTPSecretEnc []byte        `bson:"totp_secret"`
	FirstName     *string       `bson:"first_name,omitempty"`
	LastName      *string       `bson:"last_name,omitempty"`
	EnrollmentRef string        `bson:"enrollment_ref,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
}

func (s *Mongo) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return goerror.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return goerror.ErrConflict
	}

	return err
}

func (s *Mongo) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.outbound.store").Start(ctx, name)
}

func (s *Mongo) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Mongo) CreateAccount(ctx context.Context, in entity.NewAccount) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	doc := accountDocument{
		ID:            bson.NewObjectID(),
		Username:      in.Username,
		PasswordHash:  in.PasswordHash,
		TOTPSecretEnc: in.TOTPSecretEnc,
		FirstName:     optionalToPtr(in.FirstName),
		LastName:      optionalToPtr(in.LastName),
		CreatedAt:     in.CreatedAt,
	}

	if _, err = s.coll.InsertOne(ctx, doc); err != nil {
		return "", s.mapError(err)
	}

	return doc.ID.Hex(), nil
}

func (s *Mongo) GetAccountByUsername(ctx context.Context, username string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByUsername")
	defer func() { s.endSpan(span, err) }()

	return s.getAccount(ctx, bson.M{"username": username})
}

func (s *Mongo) GetAccountByID(ctx context.Context, id string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// Not a possible document ID, so the account cannot exist.
		return nil, goerror.ErrNotFound
	}

	return s.getAccount(ctx, bson.M{"_id": oid})
}

func (s *Mongo) SetEnrollmentRef(ctx context.Context, id, ref string) (err error) {
	ctx, span := s.startSpan(ctx, "SetEnrollmentRef")
	defer func() { s.endSpan(span, err) }()

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return goerror.ErrNotFound
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"enrollment_ref": ref}})
	if err != nil {
		return s.mapError(err)
	}
	if result.MatchedCount == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *Mongo) getAccount(ctx context.Context, filter bson.M) (*entity.Account, error) {
	var doc accountDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}

	return &entity.Account{
		ID:            doc.ID.Hex(),
		Username:      doc.Username,
		PasswordHash:  doc.PasswordHash,
		TOTPSecretEnc: doc.TOTPSecretEnc,
		FirstName:     ptrToOptional(doc.FirstName),
		LastName:      ptrToOptional(doc.LastName),
		EnrollmentRef: doc.EnrollmentRef,
		CreatedAt:     doc.CreatedAt,
	}, nil
}

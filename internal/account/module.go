package account

import (
	"errors"

	"github.com/danielmsk/accord/internal/account/inbound"
	"github.com/danielmsk/accord/internal/account/outbound/artifact"
	"github.com/danielmsk/accord/internal/account/outbound/mq"
	"github.com/danielmsk/accord/internal/account/outbound/store"
	"github.com/danielmsk/accord/internal/account/usecase"
	"github.com/danielmsk/accord/internal/pkg/cache"
	"github.com/danielmsk/accord/internal/pkg/clock"
	"github.com/danielmsk/accord/internal/pkg/config"
	"github.com/danielmsk/accord/internal/pkg/goroutine"
	"github.com/danielmsk/accord/internal/pkg/hash"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/messaging"
	"github.com/danielmsk/accord/internal/pkg/mfa"
	"github.com/danielmsk/accord/internal/pkg/otp"
	"github.com/danielmsk/accord/internal/pkg/router"
	"github.com/danielmsk/accord/internal/pkg/storage"
	"github.com/danielmsk/accord/internal/pkg/uid"
	"github.com/danielmsk/accord/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrStoreConnRequired indicates no store connection matches the configured driver.
var ErrStoreConnRequired = errors.New("account: store connection for the configured database driver is required")

type Dependency struct {
	// Exactly one of PGConn / MongoColl must match database.driver.
	PGConn    *pgxpool.Pool
	MongoColl *mongo.Collection

	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Cache        cache.Cache                `validate:"required"`
	Messaging    messaging.Messaging        `validate:"required"`
	Storage      storage.Storage            `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	OID          uid.StringID               `validate:"required"`
	Bcrypt       hash.Hash                  `validate:"required"`
	Argon2ID     hash.Hash                  `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		RepoArtifact:  artifact.NewRenderer(dep.Storage, dep.Config, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Validator:     dep.Validator,
		Config:        dep.Config,
		Cache:         dep.Cache,
		Bcrypt:        dep.Bcrypt,
		Argon2ID:      dep.Argon2ID,
		MFAEncryptor:  dep.MFAEncryptor,
		UID:           dep.UID,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	}

	switch dep.Config.GetString("database.driver") {
	case "mongo":
		if dep.MongoColl == nil {
			return ErrStoreConnRequired
		}
		ucDep.RepoStore = store.NewMongo(dep.MongoColl, dep.Instrument)
	default:
		if dep.PGConn == nil {
			return ErrStoreConnRequired
		}
		ucDep.RepoStore = store.NewPostgres(dep.PGConn, dep.OID, dep.Instrument)
	}

	inbound.RegisterHTTPEndpoint(dep.Router, usecase.New(ucDep))

	return nil
}

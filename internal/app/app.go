package app

import (
	"context"
	"net/http"

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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine    *goroutine.Manager
	validator    validator.Validator
	clock        clock.Clocker
	argon2id     hash.Hash
	bcrypt       hash.Hash
	uid          uid.NumberID
	oid          uid.StringID
	uuid         uid.StringID
	totp         otp.OTP
	mfaEncryptor mfa.Encryptor

	// resources
	pgConn      *pgxpool.Pool
	mongoClient *mongo.Client
	mongoColl   *mongo.Collection
	cache       cache.Cache
	messaging   messaging.Messaging
	storage     storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

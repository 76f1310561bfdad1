package app

import (
	"log/slog"
	"os"

	"github.com/danielmsk/accord/internal/account"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			PGConn:       a.pgConn,
			MongoColl:    a.mongoColl,
			Goroutine:    a.goroutine,
			Router:       a.router,
			Cache:        a.cache,
			Messaging:    a.messaging,
			Storage:      a.storage,
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			OID:          a.oid,
			Bcrypt:       a.bcrypt,
			Argon2ID:     a.argon2id,
			MFAEncryptor: a.mfaEncryptor,
			Clock:        a.clock,
			Totp:         a.totp,
			Validator:    a.validator,
		}); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}
}

package app

import (
	"log/slog"
	"os"

	"github.com/bagaskoro/passless/internal/auth"
	"github.com/bagaskoro/passless/internal/delivery"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Cooldown:   a.cooldown,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Token:      a.token,
			HMAC:       a.hmac,
			OTP:        a.otp,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.delivery.enabled") {
		if err := delivery.New(delivery.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
		}); err != nil {
			slog.Error("failed to init module delivery", "error", err)
			os.Exit(1)
		}
	}
}

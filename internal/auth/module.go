package auth

import (
	"context"
	"time"

	"github.com/bagaskoro/passless/internal/auth/inbound"
	"github.com/bagaskoro/passless/internal/auth/outbound/db"
	"github.com/bagaskoro/passless/internal/auth/outbound/mq"
	"github.com/bagaskoro/passless/internal/auth/usecase"
	"github.com/bagaskoro/passless/internal/pkg/clock"
	"github.com/bagaskoro/passless/internal/pkg/config"
	"github.com/bagaskoro/passless/internal/pkg/cooldown"
	"github.com/bagaskoro/passless/internal/pkg/goroutine"
	"github.com/bagaskoro/passless/internal/pkg/hash"
	"github.com/bagaskoro/passless/internal/pkg/instrument"
	"github.com/bagaskoro/passless/internal/pkg/jwt"
	"github.com/bagaskoro/passless/internal/pkg/messaging"
	"github.com/bagaskoro/passless/internal/pkg/otpcode"
	"github.com/bagaskoro/passless/internal/pkg/router"
	"github.com/bagaskoro/passless/internal/pkg/uid"
	"github.com/bagaskoro/passless/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	Ctx        context.Context
	DBConn     *pgxpool.Pool               `validate:"required"`
	Goroutine  *goroutine.Manager          `validate:"required"`
	Router     *router.Router              `validate:"required"`
	Cooldown   cooldown.Gate               `validate:"required"`
	Messaging  messaging.Messaging         `validate:"required"`
	Config     config.Config               `validate:"required"`
	Instrument instrument.Instrumentation  `validate:"required"`
	UID        uid.NumberID                `validate:"required"`
	Token      uid.StringID                `validate:"required"`
	HMAC       hash.Hash                   `validate:"required"`
	OTP        otpcode.Generator           `validate:"required"`
	Clock      clock.Clocker               `validate:"required"`
	Validator  validator.Validator         `validate:"required"`
	JWT        jwt.JWT                     `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Cooldown:      dep.Cooldown,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		OTP:           dep.OTP,
		UID:           dep.UID,
		Token:         dep.Token,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		schedulePurge(dep.Ctx, dep.Config, dep.Goroutine, uc)
	}

	return nil
}

func schedulePurge(ctx context.Context, cfg config.Config, grm *goroutine.Manager, uc *usecase.Usecase) {
	interval := cfg.GetMinute("modules.auth.purge_interval_minutes")
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	grm.Go(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				_ = uc.PurgeExpired(ctx) // already logged inside
			}
		}
	})
}

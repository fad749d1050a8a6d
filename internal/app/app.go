package app

import (
	"context"
	"net/http"

	"github.com/bagaskoro/passless/internal/pkg/clock"
	"github.com/bagaskoro/passless/internal/pkg/config"
	"github.com/bagaskoro/passless/internal/pkg/cooldown"
	"github.com/bagaskoro/passless/internal/pkg/goroutine"
	"github.com/bagaskoro/passless/internal/pkg/hash"
	"github.com/bagaskoro/passless/internal/pkg/instrument"
	"github.com/bagaskoro/passless/internal/pkg/jwt"
	"github.com/bagaskoro/passless/internal/pkg/mail"
	"github.com/bagaskoro/passless/internal/pkg/messaging"
	"github.com/bagaskoro/passless/internal/pkg/otpcode"
	"github.com/bagaskoro/passless/internal/pkg/router"
	"github.com/bagaskoro/passless/internal/pkg/uid"
	"github.com/bagaskoro/passless/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	token     uid.StringID
	otp       otpcode.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	cooldown  cooldown.Gate
	mail      mail.Mail
	messaging messaging.Messaging

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
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

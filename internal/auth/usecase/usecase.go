package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/clock"
	"github.com/bagaskoro/passless/internal/pkg/config"
	"github.com/bagaskoro/passless/internal/pkg/cooldown"
	"github.com/bagaskoro/passless/internal/pkg/hash"
	"github.com/bagaskoro/passless/internal/pkg/instrument"
	"github.com/bagaskoro/passless/internal/pkg/jwt"
	"github.com/bagaskoro/passless/internal/pkg/otpcode"
	"github.com/bagaskoro/passless/internal/pkg/uid"
	"github.com/bagaskoro/passless/internal/pkg/validator"
)

type OTPIssuedEvent struct {
	AccountID int64
	Email     string
	FullName  string
	Code      string
	Reason    string
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	CreateAccount(ctx context.Context, acc entity.NewAccount) error

	PutChallenge(ctx context.Context, ch entity.Challenge) error
	GetChallenge(ctx context.Context, accountID int64) (*entity.Challenge, error)
	SpendChallengeAttempt(ctx context.Context, accountID int64, secretHash string, now time.Time) (int16, error)
	DeleteDeadChallenges(ctx context.Context, now time.Time) (int64, error)

	ConsumeChallengeNewSession(ctx context.Context, data entity.ConsumeChallengeSession) (bool, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*entity.AccountSession, error)
	RevokeSession(ctx context.Context, tokenHash string) error
	DeleteDeadSessions(ctx context.Context, now time.Time) (int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	cooldown      cooldown.Gate
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	otp           otpcode.Generator
	uid           uid.NumberID
	token         uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Cooldown      cooldown.Gate
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	OTP           otpcode.Generator
	UID           uid.NumberID
	Token         uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		cooldown:      dep.Cooldown,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		otp:           dep.OTP,
		uid:           dep.UID,
		token:         dep.Token,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/config"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
	"github.com/bagaskoro/passless/internal/pkg/hash"
	"github.com/bagaskoro/passless/internal/pkg/instrument"
	"github.com/bagaskoro/passless/internal/pkg/jwt"
	"github.com/bagaskoro/passless/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
modules:
  auth:
    challenge_ttl_minutes: 5
    max_attempts: 3
    session_ttl_hours: 720
    resend_cooldown_seconds: 60
`

var testJWTSecret = []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeOTP struct {
	codes []string
	idx   int
}

func (f *fakeOTP) Generate() (string, error) {
	if f.idx >= len(f.codes) {
		return f.codes[len(f.codes)-1], nil
	}
	code := f.codes[f.idx]
	f.idx++
	return code, nil
}

type seqNumberID struct{ n atomic.Int64 }

func (s *seqNumberID) Generate() int64 { return s.n.Add(1) }

type seqStringID struct {
	prefix string
	n      atomic.Int64
}

func (s *seqStringID) Generate() string {
	return s.prefix + strconv.FormatInt(s.n.Add(1), 10)
}

type fakeGate struct {
	allow     bool
	remaining time.Duration
	err       error
	keys      []string
}

func (g *fakeGate) Acquire(_ context.Context, key string, _ time.Duration) (bool, time.Duration, error) {
	g.keys = append(g.keys, key)
	return g.allow, g.remaining, g.err
}

func (g *fakeGate) Release(context.Context, string) error { return nil }

type fakeMessaging struct {
	mu     sync.Mutex
	events []OTPIssuedEvent
	err    error
}

func (m *fakeMessaging) PublishOTPIssued(_ context.Context, ev OTPIssuedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *fakeMessaging) last(t *testing.T) OTPIssuedEvent {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.events)
	return m.events[len(m.events)-1]
}

// fakeRepoDB mirrors the row guards of the real queries so concurrency
// behavior can be exercised in-memory.
type fakeRepoDB struct {
	mu         sync.Mutex
	accounts   map[int64]*entity.Account
	byEmail    map[string]int64
	challenges map[int64]*entity.Challenge
	sessions   map[string]*entity.Session

	errGetAccount error
	errPut        error
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		accounts:   map[int64]*entity.Account{},
		byEmail:    map[string]int64{},
		challenges: map[int64]*entity.Challenge{},
		sessions:   map[string]*entity.Session{},
	}
}

func (f *fakeRepoDB) seedAccount(acc entity.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := acc
	f.accounts[acc.ID] = &cp
	f.byEmail[acc.Email] = acc.ID
}

func (f *fakeRepoDB) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errGetAccount != nil {
		return nil, f.errGetAccount
	}
	id, ok := f.byEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *f.accounts[id]
	return &cp, nil
}

func (f *fakeRepoDB) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errGetAccount != nil {
		return nil, f.errGetAccount
	}
	acc, ok := f.accounts[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeRepoDB) CreateAccount(_ context.Context, data entity.NewAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[data.Email]; ok {
		return goerror.ErrConflict
	}
	f.accounts[data.ID] = &entity.Account{
		ID:       data.ID,
		Email:    data.Email,
		FullName: data.FullName,
		Status:   data.Status,
	}
	f.byEmail[data.Email] = data.ID
	return nil
}

func (f *fakeRepoDB) PutChallenge(_ context.Context, ch entity.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errPut != nil {
		return f.errPut
	}
	cp := ch
	f.challenges[ch.AccountID] = &cp
	return nil
}

func (f *fakeRepoDB) GetChallenge(_ context.Context, accountID int64) (*entity.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.challenges[accountID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *ch
	return &cp, nil
}

func (f *fakeRepoDB) SpendChallengeAttempt(_ context.Context, accountID int64, secretHash string, now time.Time) (int16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.challenges[accountID]
	if !ok || ch.SecretHash != secretHash || ch.Consumed || ch.AttemptsRemaining <= 0 || !now.Before(ch.ExpiresAt) {
		return 0, goerror.ErrNotFound
	}
	ch.AttemptsRemaining--
	return ch.AttemptsRemaining, nil
}

func (f *fakeRepoDB) DeleteDeadChallenges(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, ch := range f.challenges {
		if ch.Consumed || !now.Before(ch.ExpiresAt) {
			delete(f.challenges, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepoDB) ConsumeChallengeNewSession(_ context.Context, data entity.ConsumeChallengeSession) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.challenges[data.AccountID]
	if !ok || ch.SecretHash != data.SecretHash || ch.Consumed || ch.AttemptsRemaining <= 0 || !data.Now.Before(ch.ExpiresAt) {
		return false, nil
	}
	ch.Consumed = true
	f.sessions[data.Session.TokenHash] = &entity.Session{
		ID:        data.Session.ID,
		AccountID: data.Session.AccountID,
		TokenHash: data.Session.TokenHash,
		ExpiresAt: data.Session.ExpiresAt,
		CreatedAt: data.Now,
	}
	return true, nil
}

func (f *fakeRepoDB) GetSessionByTokenHash(_ context.Context, tokenHash string) (*entity.AccountSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, ok := f.sessions[tokenHash]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	acc, ok := f.accounts[sess.AccountID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &entity.AccountSession{
		SessionID:        sess.ID,
		SessionExpiresAt: sess.ExpiresAt,
		SessionRevoked:   sess.Revoked,
		AccountID:        acc.ID,
		AccountEmail:     acc.Email,
		AccountFullName:  acc.FullName,
		AccountStatus:    acc.Status,
	}, nil
}

func (f *fakeRepoDB) RevokeSession(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, ok := f.sessions[tokenHash]
	if !ok || sess.Revoked {
		return goerror.ErrNotFound
	}
	sess.Revoked = true
	return nil
}

func (f *fakeRepoDB) DeleteDeadSessions(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for h, sess := range f.sessions {
		if sess.Revoked || !now.Before(sess.ExpiresAt) {
			delete(f.sessions, h)
			n++
		}
	}
	return n, nil
}

type fixture struct {
	uc    *Usecase
	db    *fakeRepoDB
	msg   *fakeMessaging
	gate  *fakeGate
	clock *fakeClock
	otp   *fakeOTP
	hmac  hash.Hash
	jwt   jwt.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := &fakeClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
	hmac := hash.NewHMACSHA256("unit-test-hmac-secret")

	tokenJWT, err := jwt.NewHS512(jwt.Config{
		Secret:    testJWTSecret,
		Issuer:    "passless-test",
		Audiences: []string{"passless"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      &seqStringID{prefix: "jti-"},
	})
	require.NoError(t, err)

	f := &fixture{
		db:    newFakeRepoDB(),
		msg:   &fakeMessaging{},
		gate:  &fakeGate{allow: true},
		clock: clk,
		otp:   &fakeOTP{codes: []string{"123456"}},
		hmac:  hmac,
		jwt:   tokenJWT,
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.msg,
		Cooldown:      f.gate,
		Validator:     v10,
		Config:        cfg,
		HMAC:          hmac,
		OTP:           f.otp,
		UID:           &seqNumberID{},
		Token:         &seqStringID{prefix: "tok-"},
		Clock:         clk,
		JWT:           tokenJWT,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func requireBusinessCode(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()
	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, code, ge.Code())
	return ge
}

func requireReason(t *testing.T, err error, reason entity.VerifyReason) {
	t.Helper()
	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, reason.String(), ge.Fields()["reason"])
}

var errBoom = errors.New("boom")

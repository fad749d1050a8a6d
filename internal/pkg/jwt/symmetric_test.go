package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

type stubID struct{}

func (stubID) Generate() string { return "jti-1" }

func newSymmetric(t *testing.T, clk *stubClock) *Symmetric {
	t.Helper()
	s, err := NewHS512(Config{
		Secret:    testSecret,
		Issuer:    "passless-test",
		Audiences: []string{"passless"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      stubID{},
	})
	require.NoError(t, err)
	return s
}

func TestSymmetric_RoundTrip(t *testing.T) {
	// a fixed date keeps the test independent of when the suite runs;
	// both issuance and verification follow the injected clock
	s := newSymmetric(t, &stubClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)})

	token, err := s.Generate(42, "ada@example.com")
	require.NoError(t, err)

	clm, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), clm.AccountID)
	assert.Equal(t, "ada@example.com", clm.AccountEmail)
	assert.Equal(t, "42", clm.Subject)
	assert.Equal(t, "passless-test", clm.Issuer)
}

func TestSymmetric_Expired(t *testing.T) {
	clk := &stubClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
	s := newSymmetric(t, clk)

	token, err := s.Generate(42, "ada@example.com")
	require.NoError(t, err)

	clk.now = clk.now.Add(16 * time.Minute)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetric_TamperedToken(t *testing.T) {
	s := newSymmetric(t, &stubClock{now: time.Now()})

	token, err := s.Generate(42, "ada@example.com")
	require.NoError(t, err)

	_, err = s.Verify(token + "x")
	assert.Error(t, err)
}

func TestSymmetric_WrongKey(t *testing.T) {
	s := newSymmetric(t, &stubClock{now: time.Now()})
	token, err := s.Generate(42, "ada@example.com")
	require.NoError(t, err)

	other, err := NewHS512(Config{
		Secret:    []byte("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
		Issuer:    "passless-test",
		Audiences: []string{"passless"},
		TTL:       15 * time.Minute,
		Clock:     &stubClock{now: time.Now()},
		UUID:      stubID{},
	})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestNewHS512_ShortKey(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too-short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

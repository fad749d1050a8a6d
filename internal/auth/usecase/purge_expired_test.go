package usecase

import (
	"testing"
	"time"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpired(t *testing.T) {
	f := newFixture(t)

	// consumed challenge plus session from a full login
	loginFor(t, f, 42, "ada@example.com")

	// live challenge for another account
	f.db.seedAccount(entity.Account{ID: 7, Email: "bob@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "bob@example.com")

	require.NoError(t, f.uc.PurgeExpired(t.Context()))

	_, err := f.db.GetChallenge(t.Context(), 42)
	assert.Error(t, err, "consumed challenge is purged")
	_, err = f.db.GetChallenge(t.Context(), 7)
	assert.NoError(t, err, "live challenge survives")

	// after the session TTL elapses the session goes too
	f.clock.Advance(720*time.Hour + time.Minute)
	require.NoError(t, f.uc.PurgeExpired(t.Context()))
	assert.Empty(t, f.db.sessions)
}

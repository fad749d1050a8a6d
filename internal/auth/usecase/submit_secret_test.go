package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueFor(t *testing.T, f *fixture, email string) int64 {
	t.Helper()
	out, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
		Mode:  entity.IdentityModeSignIn,
		Email: email,
	})
	require.NoError(t, err)
	return out.AccountID
}

func TestSubmitSecret_Success(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", FullName: "Ada Lovelace", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	out, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	require.NoError(t, err)
	require.NotEmpty(t, out.SessionToken)
	require.NotEmpty(t, out.AccessToken)

	clm, err := f.jwt.Verify(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), clm.AccountID)
	assert.Equal(t, "ada@example.com", clm.AccountEmail)

	tokenHash, err := f.hmac.Hash(out.SessionToken)
	require.NoError(t, err)
	sess, err := f.db.GetSessionByTokenHash(t.Context(), string(tokenHash))
	require.NoError(t, err)
	assert.Equal(t, int64(42), sess.AccountID)
	assert.Equal(t, f.clock.Now().Add(720*time.Hour), sess.SessionExpiresAt)
}

func TestSubmitSecret_ConsumedChallengeNeverReplays(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	_, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	require.NoError(t, err)

	_, err = f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	requireBusinessCode(t, err, goerror.CodeUnauthorized)
	requireReason(t, err, entity.VerifyReasonNoActiveChallenge)
}

func TestSubmitSecret_NoChallenge(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})

	_, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	requireBusinessCode(t, err, goerror.CodeUnauthorized)
	requireReason(t, err, entity.VerifyReasonNoActiveChallenge)
}

func TestSubmitSecret_ExpiredChargesNoAttempt(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	f.clock.Advance(5*time.Minute + time.Second)

	_, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	requireBusinessCode(t, err, goerror.CodeGone)
	requireReason(t, err, entity.VerifyReasonExpired)

	ch, err := f.db.GetChallenge(t.Context(), 42)
	require.NoError(t, err)
	assert.Equal(t, int16(3), ch.AttemptsRemaining, "expiry must not spend an attempt")
}

func TestSubmitSecret_MismatchDecrements(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	_, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "654321"})
	requireBusinessCode(t, err, goerror.CodeUnauthorized)
	requireReason(t, err, entity.VerifyReasonMismatch)

	ch, err := f.db.GetChallenge(t.Context(), 42)
	require.NoError(t, err)
	assert.Equal(t, int16(2), ch.AttemptsRemaining)
}

func TestSubmitSecret_AttemptsExhausted(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	for range 3 {
		_, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "654321"})
		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	}

	// even the correct code is refused once attempts hit zero
	_, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	requireReason(t, err, entity.VerifyReasonAttemptsExhausted)
}

func TestSubmitSecret_ParallelSingleWinner(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	const n = 8
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
		}()
	}
	wg.Wait()

	var wins int
	for _, err := range results {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one verify may consume the challenge")
}

func TestSubmitSecret_ParallelWrongSecretExhausts(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	// as many racers as max_attempts; every attempt must land exactly once
	const n = 3
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "654321"})
		}()
	}
	wg.Wait()

	for _, err := range results {
		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	}

	ch, err := f.db.GetChallenge(t.Context(), 42)
	require.NoError(t, err)
	assert.Equal(t, int16(0), ch.AttemptsRemaining)

	_, err = f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	requireReason(t, err, entity.VerifyReasonAttemptsExhausted)
}

func TestSubmitSecret_AccountLoadFailureKeepsChallenge(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})
	issueFor(t, f, "ada@example.com")

	// a fault after the code matched must not burn the single-use challenge
	f.db.errGetAccount = errBoom
	_, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	require.Error(t, err)

	ch, cherr := f.db.GetChallenge(t.Context(), 42)
	require.NoError(t, cherr)
	assert.False(t, ch.Consumed)

	f.db.errGetAccount = nil
	out, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: 42, Secret: "123456"})
	require.NoError(t, err)
	require.NotEmpty(t, out.SessionToken)
}

func TestSubmitSecret_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   SubmitSecretInput
	}{
		{"missing account", SubmitSecretInput{Secret: "123456"}},
		{"missing secret", SubmitSecretInput{AccountID: 42}},
		{"short secret", SubmitSecretInput{AccountID: 42, Secret: "123"}},
		{"alpha secret", SubmitSecretInput{AccountID: 42, Secret: "abcdef"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.SubmitSecret(t.Context(), tc.in)
			requireBusinessCode(t, err, goerror.CodeInvalidInput)
		})
	}
}

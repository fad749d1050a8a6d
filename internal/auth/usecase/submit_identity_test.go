package usecase

import (
	"testing"
	"time"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitIdentity_SignUpCreatesAccount(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
		Mode:     entity.IdentityModeSignUp,
		Email:    "  Ada.Lovelace@Example.COM ",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	require.NotZero(t, out.AccountID)
	assert.Equal(t, entity.DeliveryStatusQueued, out.Delivery)

	acc, err := f.db.GetAccountByEmail(t.Context(), "ada.lovelace@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", acc.FullName)
	assert.Equal(t, entity.AccountStatusActive, acc.Status)

	ch, err := f.db.GetChallenge(t.Context(), out.AccountID)
	require.NoError(t, err)
	assert.True(t, f.hmac.Verify(ch.SecretHash, "123456"))
	assert.Equal(t, int16(3), ch.AttemptsRemaining)
	assert.False(t, ch.Consumed)
	assert.Equal(t, f.clock.Now().Add(5*time.Minute), ch.ExpiresAt)

	ev := f.msg.last(t)
	assert.Equal(t, out.AccountID, ev.AccountID)
	assert.Equal(t, "123456", ev.Code)
	assert.Equal(t, "sign_up", ev.Reason)
}

func TestSubmitIdentity_SignInProvisionsUnknownEmail(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
		Mode:  entity.IdentityModeSignIn,
		Email: "nobody@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, out.AccountID)

	acc, err := f.db.GetAccountByEmail(t.Context(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, acc.FullName, "the sign_in variant carries no full name")
	assert.Equal(t, entity.AccountStatusActive, acc.Status)

	_, err = f.db.GetChallenge(t.Context(), out.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "sign_in", f.msg.last(t).Reason)
}

func TestSubmitIdentity_SignInIgnoresFullName(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
		Mode:     entity.IdentityModeSignIn,
		Email:    "nobody@example.com",
		FullName: "Sneaky Writer",
	})
	require.NoError(t, err)

	acc, err := f.db.GetAccountByID(t.Context(), out.AccountID)
	require.NoError(t, err)
	assert.Empty(t, acc.FullName)
}

func TestSubmitIdentity_SignInExisting(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", FullName: "Ada Lovelace", Status: entity.AccountStatusActive})

	out, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
		Mode:  entity.IdentityModeSignIn,
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.AccountID)
	assert.Equal(t, "sign_in", f.msg.last(t).Reason)
}

func TestSubmitIdentity_SignUpExistingWins(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", FullName: "Ada Lovelace", Status: entity.AccountStatusActive})

	out, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
		Mode:     entity.IdentityModeSignUp,
		Email:    "ada@example.com",
		FullName: "Somebody Else",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.AccountID)

	acc, err := f.db.GetAccountByID(t.Context(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", acc.FullName)
}

func TestSubmitIdentity_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   SubmitIdentityInput
	}{
		{"missing mode", SubmitIdentityInput{Email: "ada@example.com"}},
		{"bad email", SubmitIdentityInput{Mode: entity.IdentityModeSignIn, Email: "not-an-email"}},
		{"sign up without full name", SubmitIdentityInput{Mode: entity.IdentityModeSignUp, Email: "ada@example.com"}},
		{"full name with digits", SubmitIdentityInput{Mode: entity.IdentityModeSignUp, Email: "ada@example.com", FullName: "Ada L0velace"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.SubmitIdentity(t.Context(), tc.in)
			requireBusinessCode(t, err, goerror.CodeInvalidInput)
		})
	}
}

func TestSubmitIdentity_StatusBlocked(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 1, Email: "banned@example.com", Status: entity.AccountStatusBanned})
	f.db.seedAccount(entity.Account{ID: 2, Email: "inactive@example.com", Status: entity.AccountStatusInactive})

	for _, email := range []string{"banned@example.com", "inactive@example.com"} {
		_, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
			Mode:  entity.IdentityModeSignIn,
			Email: email,
		})
		requireBusinessCode(t, err, goerror.CodeForbidden)
	}
}

func TestSubmitIdentity_PublishFailureStillIssues(t *testing.T) {
	f := newFixture(t)
	f.msg.err = errBoom
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", Status: entity.AccountStatusActive})

	out, err := f.uc.SubmitIdentity(t.Context(), SubmitIdentityInput{
		Mode:  entity.IdentityModeSignIn,
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusFailed, out.Delivery)

	_, err = f.db.GetChallenge(t.Context(), 42)
	require.NoError(t, err, "challenge must survive a failed publish")
}

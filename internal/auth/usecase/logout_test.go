package usecase

import (
	"context"
	"testing"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
	"github.com/bagaskoro/passless/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginFor(t *testing.T, f *fixture, accountID int64, email string) *SubmitSecretOutput {
	t.Helper()
	f.db.seedAccount(entity.Account{ID: accountID, Email: email, Status: entity.AccountStatusActive})
	issueFor(t, f, email)
	out, err := f.uc.SubmitSecret(t.Context(), SubmitSecretInput{AccountID: accountID, Secret: "123456"})
	require.NoError(t, err)
	return out
}

func authCtx(t *testing.T, accountID int64, email string) context.Context {
	t.Helper()
	return jwt.SetAuth(t.Context(), jwt.Claims{AccountID: accountID, AccountEmail: email})
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newFixture(t)
	sess := loginFor(t, f, 42, "ada@example.com")
	ctx := authCtx(t, 42, "ada@example.com")

	_, err := f.uc.Logout(ctx, LogoutInput{SessionToken: sess.SessionToken})
	require.NoError(t, err)

	tokenHash, err := f.hmac.Hash(sess.SessionToken)
	require.NoError(t, err)
	stored, err := f.db.GetSessionByTokenHash(t.Context(), string(tokenHash))
	require.NoError(t, err)
	assert.True(t, stored.SessionRevoked)

	// revoking again reports not found
	_, err = f.uc.Logout(ctx, LogoutInput{SessionToken: sess.SessionToken})
	requireBusinessCode(t, err, goerror.CodeNotFound)
}

func TestLogout_WrongOwner(t *testing.T) {
	f := newFixture(t)
	sess := loginFor(t, f, 42, "ada@example.com")

	_, err := f.uc.Logout(authCtx(t, 7, "mallory@example.com"), LogoutInput{SessionToken: sess.SessionToken})
	requireBusinessCode(t, err, goerror.CodeForbidden)
}

func TestLogout_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Logout(authCtx(t, 42, "ada@example.com"), LogoutInput{SessionToken: "tok-unknown"})
	requireBusinessCode(t, err, goerror.CodeNotFound)
}

func TestLogout_MissingAuth(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Logout(t.Context(), LogoutInput{SessionToken: "tok-something"})
	requireBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestSessionInfo(t *testing.T) {
	f := newFixture(t)
	f.db.seedAccount(entity.Account{ID: 42, Email: "ada@example.com", FullName: "Ada Lovelace", Status: entity.AccountStatusActive})

	out, err := f.uc.SessionInfo(authCtx(t, 42, "ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.AccountID)
	assert.Equal(t, "ada@example.com", out.Email)
	assert.Equal(t, "Ada Lovelace", out.FullName)
	assert.Equal(t, entity.AccountStatusActive, out.Status)
}

func TestSessionInfo_MissingAuth(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SessionInfo(t.Context())
	requireBusinessCode(t, err, goerror.CodeUnauthorized)
}

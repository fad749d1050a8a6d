package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bagaskoro/passless/internal/auth/entity"
)

const queryConsumeChallenge = `
UPDATE challenges
SET consumed = true
WHERE account_id = $1
  AND secret_hash = $2
  AND NOT consumed
  AND attempts_remaining > 0
  AND expires_at > $3`

const queryCreateSession = `
INSERT INTO sessions (id, account_id, token_hash, expires_at, revoked)
VALUES ($1, $2, $3, $4, false)`

// ConsumeChallengeNewSession marks the challenge consumed and inserts the
// session in one transaction. It returns false without error when the
// guarded consume matches zero rows, meaning a concurrent call already
// consumed, exhausted, or replaced the challenge.
func (s *DB) ConsumeChallengeNewSession(ctx context.Context, data entity.ConsumeChallengeSession) (ok bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallengeNewSession")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx, queryConsumeChallenge, data.AccountID, data.SecretHash, data.Now)
	if err != nil {
		return false, s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, queryCreateSession,
		data.Session.ID,
		data.Session.AccountID,
		data.Session.TokenHash,
		data.Session.ExpiresAt,
	); err != nil {
		return false, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, s.mapError(err)
	}

	return true, nil
}

const queryGetSessionByTokenHash = `
SELECT s.id, s.expires_at, s.revoked, a.id, a.email, a.full_name, a.status
FROM sessions s
JOIN accounts a ON a.id = s.account_id
WHERE s.token_hash = $1`

func (s *DB) GetSessionByTokenHash(ctx context.Context, tokenHash string) (_ *entity.AccountSession, err error) {
	ctx, span := s.startSpan(ctx, "GetSessionByTokenHash")
	defer func() { s.endSpan(span, err) }()

	var as entity.AccountSession
	err = s.conn.QueryRow(ctx, queryGetSessionByTokenHash, tokenHash).Scan(
		&as.SessionID,
		&as.SessionExpiresAt,
		&as.SessionRevoked,
		&as.AccountID,
		&as.AccountEmail,
		&as.AccountFullName,
		&as.AccountStatus,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &as, nil
}

const queryRevokeSession = `
UPDATE sessions
SET revoked = true
WHERE token_hash = $1 AND NOT revoked`

func (s *DB) RevokeSession(ctx context.Context, tokenHash string) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeSession")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryRevokeSession, tokenHash)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

const queryDeleteDeadSessions = `
DELETE FROM sessions
WHERE revoked OR expires_at <= $1`

func (s *DB) DeleteDeadSessions(ctx context.Context, now time.Time) (count int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteDeadSessions")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryDeleteDeadSessions, now)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

package db

import (
	"context"
	"time"

	"github.com/bagaskoro/passless/internal/auth/entity"
)

const queryPutChallenge = `
INSERT INTO challenges (account_id, secret_hash, issued_at, expires_at, attempts_remaining, consumed)
VALUES ($1, $2, $3, $4, $5, false)
ON CONFLICT (account_id) DO UPDATE SET
	secret_hash        = EXCLUDED.secret_hash,
	issued_at          = EXCLUDED.issued_at,
	expires_at         = EXCLUDED.expires_at,
	attempts_remaining = EXCLUDED.attempts_remaining,
	consumed           = false`

// PutChallenge stores a fresh challenge for the account, superseding any
// prior one immediately.
func (s *DB) PutChallenge(ctx context.Context, ch entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "PutChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryPutChallenge,
		ch.AccountID,
		ch.SecretHash,
		ch.IssuedAt,
		ch.ExpiresAt,
		ch.AttemptsRemaining,
	)
	return s.mapError(err)
}

const queryGetChallenge = `
SELECT account_id, secret_hash, issued_at, expires_at, attempts_remaining, consumed
FROM challenges
WHERE account_id = $1`

func (s *DB) GetChallenge(ctx context.Context, accountID int64) (_ *entity.Challenge, err error) {
	ctx, span := s.startSpan(ctx, "GetChallenge")
	defer func() { s.endSpan(span, err) }()

	var ch entity.Challenge
	err = s.conn.QueryRow(ctx, queryGetChallenge, accountID).Scan(
		&ch.AccountID,
		&ch.SecretHash,
		&ch.IssuedAt,
		&ch.ExpiresAt,
		&ch.AttemptsRemaining,
		&ch.Consumed,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &ch, nil
}

const querySpendChallengeAttempt = `
UPDATE challenges
SET attempts_remaining = attempts_remaining - 1
WHERE account_id = $1
  AND secret_hash = $2
  AND NOT consumed
  AND attempts_remaining > 0
  AND expires_at > $3
RETURNING attempts_remaining`

// SpendChallengeAttempt charges one attempt against the challenge identified
// by account and current secret hash. The guards make the decrement a
// compare-and-swap: a concurrent verify that consumed, exhausted, or replaced
// the challenge first leaves zero rows, surfaced as goerror.ErrNotFound so
// the caller re-reads and reclassifies.
func (s *DB) SpendChallengeAttempt(ctx context.Context, accountID int64, secretHash string, now time.Time) (remaining int16, err error) {
	ctx, span := s.startSpan(ctx, "SpendChallengeAttempt")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.QueryRow(ctx, querySpendChallengeAttempt, accountID, secretHash, now).Scan(&remaining)
	if err != nil {
		return 0, s.mapError(err)
	}

	return remaining, nil
}

const queryDeleteDeadChallenges = `
DELETE FROM challenges
WHERE consumed OR expires_at <= $1`

// DeleteDeadChallenges removes consumed and expired rows. Hygiene only; the
// verify path never depends on it.
func (s *DB) DeleteDeadChallenges(ctx context.Context, now time.Time) (count int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteDeadChallenges")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryDeleteDeadChallenges, now)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

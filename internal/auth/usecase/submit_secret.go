package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
)

type SubmitSecretInput struct {
	AccountID int64  `validate:"required"`
	Secret    string `validate:"required,otpcode"`
}

type SubmitSecretOutput struct {
	SessionToken string
	AccessToken  string
}

// SubmitSecret verifies the submitted OTP against the account's active
// challenge and, on success, consumes the challenge and mints a session.
//
// Failures are classified, in order: no active challenge (including an
// already consumed one), expired, attempts exhausted, mismatch. Expiry
// never charges an attempt; a consumed challenge never verifies again.
func (s *Usecase) SubmitSecret(ctx context.Context, in SubmitSecretInput) (*SubmitSecretOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitSecret")
	defer span.End()

	in.Secret = strings.TrimSpace(in.Secret)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// The guarded updates race against concurrent verifies on the same
	// row; losing one means the row changed under us, so re-read and
	// classify against the new state.
	for range 2 {
		ch, verr := s.loadUsableChallenge(ctx, in.AccountID)
		if verr != nil {
			return nil, verr
		}

		if !s.hmac.Verify(ch.SecretHash, in.Secret) {
			remaining, err := s.repoDB.SpendChallengeAttempt(ctx, in.AccountID, ch.SecretHash, s.clock.Now())
			if errors.Is(err, goerror.ErrNotFound) {
				continue
			}
			if err != nil {
				slog.ErrorContext(ctx, "failed to repo spend challenge attempt", "account_id", in.AccountID, "error", err)
				return nil, goerror.NewServer(err)
			}

			slog.WarnContext(ctx, "otp code mismatch", "account_id", in.AccountID, "attempts_remaining", remaining)
			return nil, goerror.NewBusinessReason("code does not match", goerror.CodeUnauthorized, entity.VerifyReasonMismatch.String())
		}

		out, ok, err := s.consumeAndMintSession(ctx, in.AccountID, ch.SecretHash)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		return out, nil
	}

	return nil, goerror.NewBusinessReason("no active challenge for this account", goerror.CodeUnauthorized, entity.VerifyReasonNoActiveChallenge.String())
}

func (s *Usecase) loadUsableChallenge(ctx context.Context, accountID int64) (*entity.Challenge, error) {
	ch, err := s.repoDB.GetChallenge(ctx, accountID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusinessReason("no active challenge for this account", goerror.CodeUnauthorized, entity.VerifyReasonNoActiveChallenge.String())
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get challenge", "account_id", accountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if ch.Consumed {
		return nil, goerror.NewBusinessReason("no active challenge for this account", goerror.CodeUnauthorized, entity.VerifyReasonNoActiveChallenge.String())
	}
	if !s.clock.Now().Before(ch.ExpiresAt) {
		return nil, goerror.NewBusinessReason("code has expired, request a new one", goerror.CodeGone, entity.VerifyReasonExpired.String())
	}
	if ch.AttemptsRemaining <= 0 {
		return nil, goerror.NewBusinessReason("too many wrong attempts, request a new code", goerror.CodeUnauthorized, entity.VerifyReasonAttemptsExhausted.String())
	}

	return ch, nil
}

// consumeAndMintSession does every fallible step before the consume commits,
// so a burned challenge always corresponds to tokens the client received.
func (s *Usecase) consumeAndMintSession(ctx context.Context, accountID int64, secretHash string) (*SubmitSecretOutput, bool, error) {
	acc, err := s.repoDB.GetAccountByID(ctx, accountID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", accountID, "error", err)
		return nil, false, goerror.NewServer(err)
	}

	sessionToken := s.token.Generate()
	tokenHash, err := s.hmac.Hash(sessionToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash session token", "account_id", accountID, "error", err)
		return nil, false, goerror.NewServer(err)
	}

	accessToken, err := s.jwt.Generate(acc.ID, acc.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "account_id", accountID, "error", err)
		return nil, false, goerror.NewServer(err)
	}

	now := s.clock.Now()
	ok, err := s.repoDB.ConsumeChallengeNewSession(ctx, entity.ConsumeChallengeSession{
		AccountID:  accountID,
		SecretHash: secretHash,
		Now:        now,
		Session: entity.NewSession{
			ID:        s.uid.Generate(),
			AccountID: accountID,
			TokenHash: string(tokenHash),
			ExpiresAt: now.Add(s.cfg.GetHour("modules.auth.session_ttl_hours")),
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume challenge", "account_id", accountID, "error", err)
		return nil, false, goerror.NewServer(err)
	}
	if !ok {
		return nil, false, nil
	}

	return &SubmitSecretOutput{
		SessionToken: sessionToken,
		AccessToken:  accessToken,
	}, true, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bagaskoro/passless/internal/pkg/goerror"
	"github.com/bagaskoro/passless/internal/pkg/jwt"
)

type LogoutInput struct {
	SessionToken string `validate:"required"`
}

type LogoutOutput struct {
	Message string
}

// Logout revokes the caller's session. The token must belong to the
// authenticated account; revoking is idempotent from the client's view
// but an already revoked or unknown token reports not found.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) (*LogoutOutput, error) {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	in.SessionToken = strings.TrimSpace(in.SessionToken)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("missing authentication", goerror.CodeUnauthorized)
	}

	tokenHash, err := s.hmac.Hash(in.SessionToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash session token", "error", err)
		return nil, goerror.NewServer(err)
	}

	sess, err := s.repoDB.GetSessionByTokenHash(ctx, string(tokenHash))
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Session not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get session by token hash", "error", err)
		return nil, goerror.NewServer(err)
	}

	if sess.AccountID != claims.AccountID {
		return nil, goerror.NewBusiness("session does not belong to this account", goerror.CodeForbidden)
	}

	if err := s.repoDB.RevokeSession(ctx, string(tokenHash)); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Session not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo revoke session", "account_id", sess.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LogoutOutput{Message: "Logout successful"}, nil
}

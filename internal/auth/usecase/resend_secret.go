package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
)

type ResendSecretInput struct {
	AccountID int64 `validate:"required"`
}

type ResendSecretOutput struct {
	Delivery entity.DeliveryStatus
}

// ResendSecret issues a fresh challenge for the account, replacing
// whatever challenge state exists. The new code invalidates the old one.
// Requests inside the cooldown window are rejected without touching the
// active challenge.
func (s *Usecase) ResendSecret(ctx context.Context, in ResendSecretInput) (*ResendSecretOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendSecret")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.getAccountByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureAccountAllowed(ctx, acc); err != nil {
		return nil, err
	}

	key := "auth:resend:" + strconv.FormatInt(acc.ID, 10)
	ok, remaining, err := s.cooldown.Acquire(ctx, key, s.cfg.GetSecond("modules.auth.resend_cooldown_seconds"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire resend cooldown", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "resend rejected by cooldown", "account_id", acc.ID, "retry_after", remaining)
		return nil, goerror.NewBusiness("please wait before requesting another code", goerror.CodeTooManyRequest)
	}

	delivery, err := s.issueChallenge(ctx, acc, "resend")
	if err != nil {
		return nil, err
	}

	return &ResendSecretOutput{Delivery: delivery}, nil
}

func (s *Usecase) getAccountByID(ctx context.Context, id int64) (*entity.Account, error) {
	acc, err := s.repoDB.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return acc, nil
}

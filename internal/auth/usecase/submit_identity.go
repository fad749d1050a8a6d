package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
)

type SubmitIdentityInput struct {
	Mode     entity.IdentityMode `validate:"required,oneof=sign_in sign_up"`
	Email    string              `validate:"required,email"`
	FullName string              `validate:"omitempty,min=5,max=100,alphaspace"`
}

type SubmitIdentityOutput struct {
	AccountID int64
	Delivery  entity.DeliveryStatus
}

// SubmitIdentity resolves or creates the account for the submitted email and
// issues a fresh OTP challenge for it. The delivery handoff is best effort:
// a publish failure is reported in the output, never rolled back.
func (s *Usecase) SubmitIdentity(ctx context.Context, in SubmitIdentityInput) (*SubmitIdentityOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitIdentity")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Mode == entity.IdentityModeSignUp && in.FullName == "" {
		return nil, goerror.NewInvalidInput(nil, "full_name", "full_name is required for sign up")
	}

	acc, err := s.resolveOrCreateAccount(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.ensureAccountAllowed(ctx, acc); err != nil {
		return nil, err
	}

	delivery, err := s.issueChallenge(ctx, acc, string(in.Mode))
	if err != nil {
		return nil, err
	}

	return &SubmitIdentityOutput{
		AccountID: acc.ID,
		Delivery:  delivery,
	}, nil
}

func (s *Usecase) resolveOrCreateAccount(ctx context.Context, in SubmitIdentityInput) (*entity.Account, error) {
	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err == nil {
		// existing identity wins; a sign_up full name never overwrites it
		return acc, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// identity is keyed by email only, so an unknown sign_in still
	// provisions an account; the sign_in variant carries no full name
	fullName := in.FullName
	if in.Mode == entity.IdentityModeSignIn {
		fullName = ""
	}

	newAcc := entity.NewAccount{
		ID:       s.uid.Generate(),
		Email:    in.Email,
		FullName: fullName,
		Status:   entity.AccountStatusActive,
	}

	err = s.repoDB.CreateAccount(ctx, newAcc)
	if errors.Is(err, goerror.ErrConflict) {
		// lost the insert race, the other writer's account is the identity
		acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
		if err != nil {
			slog.ErrorContext(ctx, "failed to re-resolve account after conflict", "email", in.Email, "error", err)
			return nil, goerror.NewServer(err)
		}
		return acc, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create account", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.Account{
		ID:       newAcc.ID,
		Email:    newAcc.Email,
		FullName: newAcc.FullName,
		Status:   newAcc.Status,
	}, nil
}

func (s *Usecase) ensureAccountAllowed(ctx context.Context, acc *entity.Account) error {
	switch acc.Status.Ensure() {
	case entity.AccountStatusActive:
		return nil

	case entity.AccountStatusBanned:
		slog.WarnContext(ctx, "account is banned", "account_id", acc.ID)
		return goerror.NewBusiness("account is banned", goerror.CodeForbidden)

	case entity.AccountStatusInactive:
		slog.WarnContext(ctx, "account is deactivated", "account_id", acc.ID)
		return goerror.NewBusiness("account is deactivated", goerror.CodeForbidden)

	default:
		slog.WarnContext(ctx, "account status is unrecognized", "account_id", acc.ID)
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)
	}
}

// issueChallenge rotates the account's challenge: fresh secret, fresh TTL,
// attempts reset. It is the single re-issuance path shared by submit and
// resend, so the prior secret is always invalidated.
func (s *Usecase) issueChallenge(ctx context.Context, acc *entity.Account, reason string) (entity.DeliveryStatus, error) {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "account_id", acc.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "account_id", acc.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	now := s.clock.Now()
	challenge := entity.Challenge{
		AccountID:         acc.ID,
		SecretHash:        string(codeHash),
		IssuedAt:          now,
		ExpiresAt:         now.Add(s.cfg.GetMinute("modules.auth.challenge_ttl_minutes")),
		AttemptsRemaining: s.cfg.GetInt16("modules.auth.max_attempts"),
	}

	if err := s.repoDB.PutChallenge(ctx, challenge); err != nil {
		slog.ErrorContext(ctx, "failed to repo put challenge", "account_id", acc.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		AccountID: acc.ID,
		Email:     acc.Email,
		FullName:  acc.FullName,
		Code:      code,
		Reason:    reason,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "account_id", acc.ID, "error", err)
		return entity.DeliveryStatusFailed, nil
	}

	return entity.DeliveryStatusQueued, nil
}

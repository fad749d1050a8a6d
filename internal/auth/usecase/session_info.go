package usecase

import (
	"context"
	"time"

	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/pkg/goerror"
	"github.com/bagaskoro/passless/internal/pkg/jwt"
)

type SessionInfoOutput struct {
	AccountID int64
	Email     string
	FullName  string
	Status    entity.AccountStatus
	CreatedAt time.Time
}

// SessionInfo returns the profile of the authenticated account.
func (s *Usecase) SessionInfo(ctx context.Context) (*SessionInfoOutput, error) {
	ctx, span := s.startSpan(ctx, "SessionInfo")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("missing authentication", goerror.CodeUnauthorized)
	}

	acc, err := s.getAccountByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}

	return &SessionInfoOutput{
		AccountID: acc.ID,
		Email:     acc.Email,
		FullName:  acc.FullName,
		Status:    acc.Status,
		CreatedAt: acc.CreatedAt,
	}, nil
}

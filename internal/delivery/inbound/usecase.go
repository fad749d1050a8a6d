package inbound

import (
	"context"

	"github.com/bagaskoro/passless/internal/delivery/usecase"
)

type uc interface {
	SendSecret(ctx context.Context, in usecase.SendSecretInput) error
}

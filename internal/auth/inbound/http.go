package inbound

import (
	"context"

	"github.com/bagaskoro/passless/internal/auth/usecase"
	"github.com/bagaskoro/passless/internal/pkg/router"
)

type uc interface {
	SubmitIdentity(ctx context.Context, in usecase.SubmitIdentityInput) (*usecase.SubmitIdentityOutput, error)
	SubmitSecret(ctx context.Context, in usecase.SubmitSecretInput) (*usecase.SubmitSecretOutput, error)
	ResendSecret(ctx context.Context, in usecase.ResendSecretInput) (*usecase.ResendSecretOutput, error)

	Logout(ctx context.Context, in usecase.LogoutInput) (*usecase.LogoutOutput, error)
	SessionInfo(ctx context.Context) (*usecase.SessionInfoOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Two phase login
	r.POST("/api/v1/auth/identity", end.SubmitIdentity)
	r.POST("/api/v1/auth/verify", end.SubmitSecret)
	r.POST("/api/v1/auth/resend", end.ResendSecret)

	// Session (need authenticated)
	r.POST("/api/v1/auth/logout", end.Logout)
	r.GET("/api/v1/auth/session", end.SessionInfo)
}

package inbound

import (
	"github.com/bagaskoro/passless/internal/auth/entity"
	"github.com/bagaskoro/passless/internal/auth/usecase"
	"github.com/bagaskoro/passless/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the passwordless login workflows.
type HTTPEndpoint struct {
	uc uc
}

// SubmitIdentity starts a login or registration and emails a one-time code.
func (h *HTTPEndpoint) SubmitIdentity(r *router.Request) (any, error) {
	var req SubmitIdentityRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitIdentity(r.Context(), usecase.SubmitIdentityInput{
		Mode:     entity.IdentityModeFromString(req.Mode),
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	return SubmitIdentityResponse{
		AccountID: resp.AccountID,
		Delivery:  resp.Delivery.String(),
	}, nil
}

// SubmitSecret verifies a one-time code and issues a session.
func (h *HTTPEndpoint) SubmitSecret(r *router.Request) (any, error) {
	var req SubmitSecretRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitSecret(r.Context(), usecase.SubmitSecretInput{
		AccountID: req.AccountID,
		Secret:    req.Code,
	})
	if err != nil {
		return nil, err
	}

	return SubmitSecretResponse{
		SessionToken: resp.SessionToken,
		AccessToken:  resp.AccessToken,
	}, nil
}

// ResendSecret re-issues the one-time code for a pending login.
func (h *HTTPEndpoint) ResendSecret(r *router.Request) (any, error) {
	var req ResendSecretRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ResendSecret(r.Context(), usecase.ResendSecretInput{
		AccountID: req.AccountID,
	})
	if err != nil {
		return nil, err
	}

	return ResendSecretResponse{Delivery: resp.Delivery.String()}, nil
}

// Logout revokes the caller's session token.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	var req LogoutRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if _, err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		SessionToken: req.SessionToken,
	}); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// SessionInfo returns the authenticated account's profile.
func (h *HTTPEndpoint) SessionInfo(r *router.Request) (any, error) {
	resp, err := h.uc.SessionInfo(r.Context())
	if err != nil {
		return nil, err
	}

	return SessionInfoResponse{
		AccountID: resp.AccountID,
		Email:     resp.Email,
		FullName:  resp.FullName,
		Status:    resp.Status.String(),
		CreatedAt: resp.CreatedAt,
	}, nil
}

package inbound

import "time"

type SubmitIdentityRequest struct {
	Mode     string `json:"mode"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

type SubmitIdentityResponse struct {
	AccountID int64  `json:"account_id,string"`
	Delivery  string `json:"delivery"`
}

func (SubmitIdentityResponse) Message() string {
	return "We have sent a one-time code to your email."
}

type SubmitSecretRequest struct {
	AccountID int64  `json:"account_id,string"`
	Code      string `json:"code"`
}

type SubmitSecretResponse struct {
	SessionToken string `json:"session_token"`
	AccessToken  string `json:"access_token"`
}

type ResendSecretRequest struct {
	AccountID int64 `json:"account_id,string"`
}

type ResendSecretResponse struct {
	Delivery string `json:"delivery"`
}

func (ResendSecretResponse) Message() string {
	return "We have sent a new one-time code to your email."
}

type LogoutRequest struct {
	SessionToken string `json:"session_token"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logout successful"
}

type SessionInfoResponse struct {
	AccountID int64     `json:"account_id,string"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

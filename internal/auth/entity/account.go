package entity

import "time"

type Account struct {
	ID        int64
	Email     string
	FullName  string
	Status    AccountStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewAccount struct {
	ID       int64
	Email    string
	FullName string
	Status   AccountStatus
}

// Challenge is the single outstanding OTP record for an account.
//
// There is at most one row per account; re-issuing overwrites it. The
// challenge is usable iff !Consumed, now < ExpiresAt and
// AttemptsRemaining > 0.
type Challenge struct {
	AccountID         int64
	SecretHash        string
	IssuedAt          time.Time
	ExpiresAt         time.Time
	AttemptsRemaining int16
	Consumed          bool
}

type Session struct {
	ID        int64
	AccountID int64
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

type NewSession struct {
	ID        int64
	AccountID int64
	TokenHash string
	ExpiresAt time.Time
}

// ConsumeChallengeSession groups the guarded challenge consume and the
// session insert that must commit together on successful verification.
type ConsumeChallengeSession struct {
	AccountID  int64
	SecretHash string
	Now        time.Time
	Session    NewSession
}

type AccountSession struct {
	SessionID        int64
	SessionExpiresAt time.Time
	SessionRevoked   bool
	AccountID        int64
	AccountEmail     string
	AccountFullName  string
	AccountStatus    AccountStatus
}

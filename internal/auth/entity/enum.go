package entity

type AccountStatus int16

const (
	// AccountStatusUnknown is mean status is not known / not set.
	AccountStatusUnknown AccountStatus = 0

	// AccountStatusActive mean account is allowed to use the app.
	AccountStatusActive AccountStatus = 1

	// AccountStatusBanned mean account is blocked from using the app (policy/abuse/etc).
	AccountStatusBanned AccountStatus = 2

	// AccountStatusInactive mean account is not currently active (e.g., deactivated, closed).
	AccountStatusInactive AccountStatus = 3
)

func (as AccountStatus) String() string {
	switch as {
	case AccountStatusActive:
		return "Active"
	case AccountStatusBanned:
		return "Banned"
	case AccountStatusInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

func (as AccountStatus) Ensure() AccountStatus {
	switch as {
	case AccountStatusActive:
		return AccountStatusActive
	case AccountStatusBanned:
		return AccountStatusBanned
	case AccountStatusInactive:
		return AccountStatusInactive
	default:
		return AccountStatusUnknown
	}
}

// IdentityMode selects which field set a SubmitIdentity request carries.
type IdentityMode string

const (
	IdentityModeSignIn IdentityMode = "sign_in"
	IdentityModeSignUp IdentityMode = "sign_up"
)

func IdentityModeFromString(str string) IdentityMode {
	switch str {
	case "sign_in":
		return IdentityModeSignIn
	case "sign_up":
		return IdentityModeSignUp
	default:
		return ""
	}
}

// VerifyReason is the stable machine-readable classification of a failed
// secret verification. Clients branch on it to render retry guidance.
type VerifyReason string

const (
	VerifyReasonNoActiveChallenge VerifyReason = "no_active_challenge"
	VerifyReasonExpired           VerifyReason = "expired"
	VerifyReasonAttemptsExhausted VerifyReason = "attempts_exhausted"
	VerifyReasonMismatch          VerifyReason = "mismatch"
)

func (vr VerifyReason) String() string {
	return string(vr)
}

// DeliveryStatus reports whether the OTP delivery request was handed to the
// broker. A failed handoff never rolls back the challenge.
type DeliveryStatus string

const (
	DeliveryStatusQueued DeliveryStatus = "queued"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

func (ds DeliveryStatus) String() string {
	return string(ds)
}

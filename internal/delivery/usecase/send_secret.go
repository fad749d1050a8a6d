package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/bagaskoro/passless/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
)

const secretEmailTemplate = `<html>
<body style="font-family: sans-serif; color: #1f2933;">
	<p>Hi {{.full_name}},</p>
	<p>Your {{.company_name}} one-time code is:</p>
	<p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.code}}</p>
	<p>The code expires in {{.ttl_minutes}} minutes. If you did not request it, you can ignore this email.</p>
	<p>Need help? Contact {{.support_email}}.</p>
	<p>&copy; {{.year}} {{.company_name}}</p>
</body>
</html>`

type (
	SendSecretInput struct {
		AccountID int64  `validate:"required,gt=0"`
		Email     string `validate:"required,email"`
		FullName  string `validate:"omitempty,max=100"`
		Code      string `validate:"required,otpcode"`
		Reason    string `validate:"required"`
	}
)

// SendSecret emails the one-time code it was handed. It never derives or
// regenerates a code on its own. Transient SMTP failures are retried with
// a capped backoff; a message that still fails is dropped with a log so
// the broker does not redeliver a code that may already be superseded.
func (s *Usecase) SendSecret(ctx context.Context, in SendSecretInput) error {
	ctx, span := s.startSpan(ctx, "SendSecret")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	name := in.FullName
	if name == "" {
		name = "there"
	}

	data := s.baseEmailTemplateData()
	data["full_name"] = name
	data["code"] = in.Code
	data["ttl_minutes"] = int(s.cfg.GetMinute("modules.auth.challenge_ttl_minutes").Minutes())

	body, err := s.renderTemplate("secret_email", secretEmailTemplate, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render secret email body", "account_id", in.AccountID, "error", err)
		return nil
	}

	msg := mail.Message{
		To:       []string{in.Email},
		Subject:  s.subjectFor(in.Reason),
		HTMLBody: body,
	}

	b := retry.NewFibonacci(500 * time.Millisecond)
	b = retry.WithMaxRetries(3, b)
	b = retry.WithCappedDuration(5*time.Second, b)

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send secret email", "account_id", in.AccountID, "reason", in.Reason, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "secret email sent", "account_id", in.AccountID, "reason", in.Reason)

	return nil
}

func (s *Usecase) subjectFor(reason string) string {
	switch reason {
	case "sign_up":
		return "Confirm your new account"
	case "resend":
		return "Your new sign-in code"
	default:
		return "Your sign-in code"
	}
}

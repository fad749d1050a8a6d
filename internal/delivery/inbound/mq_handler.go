package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/bagaskoro/passless/internal/delivery/usecase"
	"github.com/bagaskoro/passless/internal/pkg/instrument"
	"github.com/bagaskoro/passless/internal/pkg/messaging"
	"github.com/bagaskoro/passless/internal/pkg/uid"
	"github.com/bagaskoro/passless/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OTPIssuedDelivery(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("delivery.inbound.mq").Start(ctx, "OTPIssuedDelivery")
	defer span.End()

	// The body carries the plaintext code, never log it.
	var payload event.OTPIssuedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp issued delivery", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: otp issued delivery", "account_id", payload.AccountID, "reason", payload.Reason)

	if err := h.uc.SendSecret(ctx, usecase.SendSecretInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Code:      payload.Code,
		Reason:    payload.Reason,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp issued delivery", "account_id", payload.AccountID, "error", err)
		return err
	}

	return nil
}

package delivery

import (
	"context"

	"github.com/bagaskoro/passless/internal/delivery/inbound"
	"github.com/bagaskoro/passless/internal/delivery/outbound/email"
	"github.com/bagaskoro/passless/internal/delivery/usecase"
	"github.com/bagaskoro/passless/internal/pkg/clock"
	"github.com/bagaskoro/passless/internal/pkg/config"
	"github.com/bagaskoro/passless/internal/pkg/goroutine"
	"github.com/bagaskoro/passless/internal/pkg/instrument"
	"github.com/bagaskoro/passless/internal/pkg/mail"
	"github.com/bagaskoro/passless/internal/pkg/messaging"
	"github.com/bagaskoro/passless/internal/pkg/uid"
	"github.com/bagaskoro/passless/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging         `validate:"required"`
	Config     config.Config               `validate:"required"`
	Instrument instrument.Instrumentation  `validate:"required"`
	UUID       uid.StringID                `validate:"required"`
	Clock      clock.Clocker               `validate:"required"`
	Goroutine  *goroutine.Manager          `validate:"required"`
	Validator  validator.Validator         `validate:"required"`
	Mail       mail.Mail                   `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoMail:   repoMail,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}

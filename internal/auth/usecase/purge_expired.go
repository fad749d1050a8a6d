package usecase

import (
	"context"
	"log/slog"

	"github.com/bagaskoro/passless/internal/pkg/goerror"
)

// PurgeExpired removes consumed and expired challenges and dead
// sessions. It is scheduled from the module and safe to run
// concurrently with live traffic since every mutation is guarded by
// the same expiry predicates.
func (s *Usecase) PurgeExpired(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "PurgeExpired")
	defer span.End()

	now := s.clock.Now()

	challenges, err := s.repoDB.DeleteDeadChallenges(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete dead challenges", "error", err)
		return goerror.NewServer(err)
	}

	sessions, err := s.repoDB.DeleteDeadSessions(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete dead sessions", "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "purged dead auth state", "challenges", challenges, "sessions", sessions)

	return nil
}

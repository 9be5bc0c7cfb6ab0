package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// Activate moves a PENDING event to ACTIVE. It is rejected once the start
// date has passed.
func (s *Service) Activate(ctx context.Context, actorID, eventID uuid.UUID) (*domain.Event, error) {
	return s.transition(ctx, actorID, eventID, domain.EventStatusActive)
}

// Complete moves an ACTIVE event to COMPLETED.
func (s *Service) Complete(ctx context.Context, actorID, eventID uuid.UUID) (*domain.Event, error) {
	return s.transition(ctx, actorID, eventID, domain.EventStatusCompleted)
}

// Cancel moves a PENDING or ACTIVE event to CANCELED and notifies every
// participant that has not canceled.
func (s *Service) Cancel(ctx context.Context, actorID, eventID uuid.UUID) (*domain.Event, error) {
	return s.transition(ctx, actorID, eventID, domain.EventStatusCanceled)
}

func (s *Service) transition(ctx context.Context, actorID, eventID uuid.UUID, next domain.EventStatus) (*domain.Event, error) {
	var (
		updated  *domain.Event
		from     domain.EventStatus
		notified int
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.events.GetForUpdate(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if err := s.authorize(txCtx, actorID, e); err != nil {
			return err
		}
		if err := e.CheckTransition(next, s.now(), domain.TriggerOrganizer); err != nil {
			return err
		}
		from = e.Status

		updated, err = s.events.UpdateStatus(txCtx, eventID, next)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		if next == domain.EventStatusCanceled {
			notified, err = s.notifyParticipants(txCtx, updated, domain.NotificationEventCanceled, domain.PriorityHigh,
				fmt.Sprintf("%q has been canceled", updated.Name), nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "event status changed",
		slog.String("event_id", eventID.String()),
		slog.String("actor_id", actorID.String()),
		slog.String("from", from.String()),
		slog.String("to", next.String()),
		slog.Int("notified", notified),
	)

	return updated, nil
}

// CompleteElapsed completes every ACTIVE event whose end date is at or before
// now and returns how many were completed. Events changed concurrently are
// skipped.
func (s *Service) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	completed := 0

	for {
		ids, err := s.events.ListElapsedActive(ctx, now, elapsedBatchSize)
		if err != nil {
			return completed, fmt.Errorf("event.CompleteElapsed list: %w", err)
		}

		progressed := 0
		for _, id := range ids {
			done, err := s.completeElapsed(ctx, id, now)
			if err != nil {
				return completed, fmt.Errorf("event.CompleteElapsed %s: %w", id, err)
			}
			if done {
				completed++
				progressed++
			}
		}

		if len(ids) < elapsedBatchSize || progressed == 0 {
			break
		}
	}

	if completed > 0 {
		s.log.InfoContext(ctx, "elapsed events completed", slog.Int("count", completed))
	}
	return completed, nil
}

func (s *Service) completeElapsed(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	done := false
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.events.GetForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		if e.CheckTransition(domain.EventStatusCompleted, now, domain.TriggerSystem) != nil {
			return nil
		}
		if _, err := s.events.UpdateStatus(txCtx, id, domain.EventStatusCompleted); err != nil {
			return err
		}
		done = true
		return nil
	})
	return done, err
}

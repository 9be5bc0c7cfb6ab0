package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// Get returns an event by id.
func (s *Service) Get(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event.Get: %w", err)
	}
	return e, nil
}

// List returns events matching filter ordered by start date.
func (s *Service) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown event status")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, domain.NewValidationError("page", "limit and offset must not be negative")
	}

	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("event.List: %w", err)
	}
	return events, nil
}

// Delete removes an event. Only the creator or an administrator may delete,
// and only while no participation references the event (domain.ErrConflict).
// Likes, saves and notifications of the event are removed with it.
func (s *Service) Delete(ctx context.Context, actorID, eventID uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.events.GetForUpdate(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if err := s.authorize(txCtx, actorID, e); err != nil {
			return err
		}
		if err := s.events.Delete(txCtx, eventID); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "event deleted",
		slog.String("event_id", eventID.String()),
		slog.String("actor_id", actorID.String()),
	)
	return nil
}

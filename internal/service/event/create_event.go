package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// Create creates a PENDING event owned by creatorID.
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, input CreateEventInput) (*domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.activeUser(ctx, creatorID); err != nil {
		return nil, err
	}

	now := s.now()
	e := input.toDomain()
	e.ID = uuid.New()
	e.CreatorID = &creatorID
	e.Status = domain.EventStatusPending
	e.CreatedAt = now
	e.UpdatedAt = now

	created, err := s.events.Create(ctx, &e)
	if err != nil {
		return nil, fmt.Errorf("event.Create: %w", err)
	}

	s.log.InfoContext(ctx, "event created",
		slog.String("event_id", created.ID.String()),
		slog.String("creator_id", creatorID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}

// Update changes descriptive fields of an event. Only the creator or an
// administrator may update, and only before the event is COMPLETED or
// CANCELED. Every participant that has not canceled gets an EVENT_UPDATE
// notification in the same transaction. Raising the capacity promotes
// waitlisted participants into the new seats.
func (s *Service) Update(ctx context.Context, actorID, eventID uuid.UUID, input UpdateEventInput) (*domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		updated  *domain.Event
		changed  []string
		notified int
		promoted int
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.events.GetForUpdate(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if err := s.authorize(txCtx, actorID, e); err != nil {
			return err
		}
		if e.Status.IsTerminal() {
			return domain.NewTransitionError("event", e.Status.String(), "UPDATED")
		}

		before := e.Capacity
		changed = input.apply(e)
		if len(changed) == 0 {
			updated = e
			return nil
		}
		if e.EndDate.Before(e.StartDate) {
			return domain.NewValidationError("end_date", "must not be before start_date")
		}

		updated, err = s.events.Update(txCtx, e)
		if err != nil {
			return fmt.Errorf("update event: %w", err)
		}

		notified, err = s.notifyParticipants(txCtx, updated, domain.NotificationEventUpdate, domain.PriorityNormal,
			fmt.Sprintf("%q was updated: %s", updated.Name, strings.ReplaceAll(strings.Join(changed, ", "), "_", " ")),
			map[string]any{"changed": changed},
		)
		if err != nil {
			return err
		}

		if capacityRaised(before, updated.Capacity) {
			promoted, err = s.seats.FillOpenSeats(txCtx, eventID)
			if err != nil {
				return fmt.Errorf("fill open seats: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		s.log.InfoContext(ctx, "event updated",
			slog.String("event_id", eventID.String()),
			slog.String("actor_id", actorID.String()),
			slog.Any("changed", changed),
			slog.Int("notified", notified),
			slog.Int("promoted", promoted),
		)
	}

	return updated, nil
}

// capacityRaised reports whether moving from before to after adds seats. Nil
// is unbounded.
func capacityRaised(before, after *int) bool {
	if before == nil {
		return false
	}
	return after == nil || *after > *before
}

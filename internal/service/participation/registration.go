package participation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/notification"
)

// SetRegistration requests a registration status for userID on eventID.
//
// PENDING and REGISTERED may be requested while the event is PENDING or
// ACTIVE. A REGISTERED request on a full event stores WAITLISTED instead.
// CANCELED is accepted from any registration. WAITLISTED cannot be requested.
// The capacity decision runs under a lock on the event row; when a registered
// participant cancels, the oldest waitlisted participant takes the seat.
func (s *Service) SetRegistration(ctx context.Context, userID, eventID uuid.UUID, requested domain.RegistrationStatus) (*domain.EventParticipation, error) {
	switch requested {
	case domain.RegistrationPending, domain.RegistrationRegistered, domain.RegistrationCanceled:
	case domain.RegistrationWaitlisted:
		return nil, domain.NewValidationError("registration_status", "WAITLISTED is assigned, not requested")
	default:
		return nil, domain.NewValidationError("registration_status", "unknown registration status")
	}

	var (
		result   *domain.EventParticipation
		current  domain.RegistrationStatus
		promoted *domain.EventParticipation
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		event, err := s.events.GetForUpdate(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("lock event: %w", err)
		}

		existing, err := s.participations.GetForUpdate(txCtx, userID, eventID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get participation: %w", err)
		}
		current = existing.CurrentRegistration()

		if current == requested {
			result = existing
			return nil
		}
		if requested != domain.RegistrationCanceled && !event.Status.AcceptsRegistrations() {
			return domain.NewTransitionError("registration", "event "+event.Status.String(), requested.String())
		}

		hasRoom := false
		if requested == domain.RegistrationRegistered {
			registered, err := s.participations.CountRegistered(txCtx, eventID)
			if err != nil {
				return fmt.Errorf("count registered: %w", err)
			}
			hasRoom = event.HasRoomFor(registered)
		}

		next, err := domain.PlanRegistration(current, requested, hasRoom)
		if err != nil {
			return err
		}
		if next == current {
			result = existing
			return nil
		}

		// Entering the queue or taking a seat restarts the FIFO position.
		var registeredAt *time.Time
		if next != domain.RegistrationCanceled {
			now := s.now()
			registeredAt = &now
		}

		result, err = s.participations.UpsertRegistration(txCtx, userID, eventID, next, registeredAt)
		if err != nil {
			return fmt.Errorf("upsert registration: %w", err)
		}

		if err := s.notifyOutcome(txCtx, event, result); err != nil {
			return err
		}

		if current == domain.RegistrationRegistered && next == domain.RegistrationCanceled && event.Status.AcceptsRegistrations() {
			promoted, err = s.promoteWaitlisted(txCtx, event)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result != nil && result.CurrentRegistration() != current {
		s.log.InfoContext(ctx, "registration changed",
			slog.String("user_id", userID.String()),
			slog.String("event_id", eventID.String()),
			slog.String("from", current.String()),
			slog.String("to", result.CurrentRegistration().String()),
		)
	}
	if promoted != nil {
		s.log.InfoContext(ctx, "waitlisted participant promoted",
			slog.String("user_id", promoted.UserID.String()),
			slog.String("event_id", eventID.String()),
		)
	}

	return result, nil
}

// FillOpenSeats promotes waitlisted participants of eventID in FIFO order
// until the event is full or the waitlist is empty, and returns how many were
// promoted. It runs under a lock on the event row and joins the caller's
// transaction when there is one. Events that no longer accept registrations
// are left alone.
func (s *Service) FillOpenSeats(ctx context.Context, eventID uuid.UUID) (int, error) {
	var promoted []uuid.UUID

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		event, err := s.events.GetForUpdate(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("lock event: %w", err)
		}
		if !event.Status.AcceptsRegistrations() {
			return nil
		}

		for {
			p, err := s.promoteWaitlisted(txCtx, event)
			if err != nil {
				return err
			}
			if p == nil {
				return nil
			}
			promoted = append(promoted, p.UserID)
		}
	})
	if err != nil {
		return 0, err
	}

	for _, id := range promoted {
		s.log.InfoContext(ctx, "waitlisted participant promoted",
			slog.String("user_id", id.String()),
			slog.String("event_id", eventID.String()),
		)
	}
	return len(promoted), nil
}

// promoteWaitlisted moves the oldest WAITLISTED participant to REGISTERED if
// the event has a free seat. Returns nil when nobody was promoted.
func (s *Service) promoteWaitlisted(ctx context.Context, event *domain.Event) (*domain.EventParticipation, error) {
	registered, err := s.participations.CountRegistered(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count registered: %w", err)
	}
	if !event.HasRoomFor(registered) {
		return nil, nil
	}

	next, err := s.participations.OldestWaitlisted(ctx, event.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("oldest waitlisted: %w", err)
	}

	promoted, err := s.participations.UpsertRegistration(ctx, next.UserID, event.ID, domain.RegistrationRegistered, nil)
	if err != nil {
		return nil, fmt.Errorf("promote waitlisted: %w", err)
	}

	_, err = s.notifier.Notify(ctx, notification.NotifyInput{
		UserID:   promoted.UserID,
		Type:     domain.NotificationWaitlistPromoted,
		Priority: domain.PriorityHigh,
		Message:  fmt.Sprintf("A seat opened up: you are now registered for %q", event.Name),
		Link:     domain.LinkToEvent(event.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("notify promotion: %w", err)
	}
	return promoted, nil
}

// notifyOutcome tells a participant the system placed them on the waitlist
// instead of granting the seat they asked for. A granted seat is the outcome
// the participant requested and is not notified.
func (s *Service) notifyOutcome(ctx context.Context, event *domain.Event, p *domain.EventParticipation) error {
	if p.CurrentRegistration() != domain.RegistrationWaitlisted {
		return nil
	}

	_, err := s.notifier.Notify(ctx, notification.NotifyInput{
		UserID:  p.UserID,
		Type:    domain.NotificationWaitlisted,
		Message: fmt.Sprintf("%q is full; you are on the waitlist", event.Name),
		Link:    domain.LinkToEvent(event.ID),
	})
	if err != nil {
		return fmt.Errorf("notify registration: %w", err)
	}
	return nil
}

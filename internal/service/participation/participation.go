package participation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// SetRsvp records the attendance intent of userID. RSVP is independent of
// registration and is accepted while the event is PENDING or ACTIVE.
func (s *Service) SetRsvp(ctx context.Context, userID, eventID uuid.UUID, status domain.RsvpStatus) (*domain.EventParticipation, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("rsvp_status", "unknown rsvp status")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("participation.SetRsvp get event: %w", err)
	}
	if !event.Status.AcceptsRegistrations() {
		return nil, domain.NewTransitionError("rsvp", "event "+event.Status.String(), status.String())
	}

	p, err := s.participations.UpsertRsvp(ctx, userID, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("participation.SetRsvp: %w", err)
	}

	s.log.InfoContext(ctx, "rsvp set",
		slog.String("user_id", userID.String()),
		slog.String("event_id", eventID.String()),
		slog.String("rsvp", status.String()),
	)
	return p, nil
}

// CheckIn records attendance. Only REGISTERED participants can check in;
// repeating a check-in keeps the first timestamp.
func (s *Service) CheckIn(ctx context.Context, userID, eventID uuid.UUID) (*domain.EventParticipation, error) {
	var p *domain.EventParticipation

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.participations.GetForUpdate(txCtx, userID, eventID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get participation: %w", err)
		}
		if current == nil || !current.IsRegistered() {
			from := current.CurrentRegistration().String()
			if from == "" {
				from = "NONE"
			}
			return domain.NewTransitionError("check-in", from, "CHECKED_IN")
		}
		if current.IsCheckedIn() {
			p = current
			return nil
		}

		p, err = s.participations.CheckIn(txCtx, userID, eventID, s.now())
		if err != nil {
			return fmt.Errorf("check in: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "participant checked in",
		slog.String("user_id", userID.String()),
		slog.String("event_id", eventID.String()),
		slog.Time("check_in_time", *p.CheckInTime),
	)
	return p, nil
}

// RecordFeedback stores a rating in [1, 5] and optional text. Returns
// domain.ErrInvalidRating for ratings out of range.
func (s *Service) RecordFeedback(ctx context.Context, userID, eventID uuid.UUID, rating int, text *string) (*domain.EventParticipation, error) {
	if !domain.ValidRating(rating) {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRating,
			domain.NewValidationError("rating", fmt.Sprintf("must be between %d and %d", domain.MinRating, domain.MaxRating)))
	}

	feedback := trimOrNil(text)
	if feedback != nil && len(*feedback) > maxFeedbackLength {
		return nil, domain.NewValidationError("feedback", "max 2000 characters")
	}

	p, err := s.participations.UpsertFeedback(ctx, userID, eventID, rating, feedback)
	if err != nil {
		return nil, fmt.Errorf("participation.RecordFeedback: %w", err)
	}

	s.log.InfoContext(ctx, "feedback recorded",
		slog.String("user_id", userID.String()),
		slog.String("event_id", eventID.String()),
		slog.Int("rating", rating),
	)
	return p, nil
}

// Get returns the participation of userID in eventID.
func (s *Service) Get(ctx context.Context, userID, eventID uuid.UUID) (*domain.EventParticipation, error) {
	p, err := s.participations.Get(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("participation.Get: %w", err)
	}
	return p, nil
}

// ListByEvent returns every participation row of eventID.
func (s *Service) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error) {
	ps, err := s.participations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("participation.ListByEvent: %w", err)
	}
	return ps, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Package event manages the event lifecycle.
package event

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

type eventRepo interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)
	ListElapsedActive(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type participantRepo interface {
	ListNotifiableUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
}

type notifier interface {
	NotifyMany(ctx context.Context, inputs []notification.NotifyInput) (int, error)
}

type seatFiller interface {
	FillOpenSeats(ctx context.Context, eventID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const elapsedBatchSize = 100

// Service provides event lifecycle operations.
type Service struct {
	events       eventRepo
	users        userRepo
	participants participantRepo
	notifier     notifier
	seats        seatFiller
	tx           txManager
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new event service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	users userRepo,
	participants participantRepo,
	notifier notifier,
	seats seatFiller,
	tx txManager,
) *Service {
	return &Service{
		events:       events,
		users:        users,
		participants: participants,
		notifier:     notifier,
		seats:        seats,
		tx:           tx,
		log:          log.With("service", "event"),
		now:          time.Now,
	}
}

// activeUser loads userID and rejects suspended or deleted accounts.
func (s *Service) activeUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrForbidden)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u.Status.IsDisabled() {
		return nil, fmt.Errorf("user %s is %s: %w", userID, u.Status, domain.ErrAccountDisabled)
	}
	return u, nil
}

// authorize allows the event creator and administrators.
func (s *Service) authorize(ctx context.Context, actorID uuid.UUID, e *domain.Event) error {
	actor, err := s.activeUser(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role.IsAdmin() || e.IsCreator(actorID) {
		return nil
	}
	return fmt.Errorf("user %s on event %s: %w", actorID, e.ID, domain.ErrForbidden)
}

// notifyParticipants writes one notification per non-canceled participant.
// It must run inside the transaction of the change it reports.
func (s *Service) notifyParticipants(ctx context.Context, e *domain.Event, typ domain.NotificationType, priority domain.Priority, message string, data map[string]any) (int, error) {
	userIDs, err := s.participants.ListNotifiableUserIDs(ctx, e.ID)
	if err != nil {
		return 0, fmt.Errorf("list participants: %w", err)
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	inputs := make([]notification.NotifyInput, 0, len(userIDs))
	for _, id := range userIDs {
		inputs = append(inputs, notification.NotifyInput{
			UserID:   id,
			Type:     typ,
			Priority: priority,
			Message:  message,
			Link:     domain.LinkToEvent(e.ID),
			Data:     data,
		})
	}

	n, err := s.notifier.NotifyMany(ctx, inputs)
	if err != nil {
		return 0, fmt.Errorf("notify participants: %w", err)
	}
	return n, nil
}

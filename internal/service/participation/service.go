// Package participation maintains the per-user, per-event participation
// ledger: RSVP, registration with capacity and waitlist, check-in and feedback.
package participation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/notification"
)

type eventRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

type participationRepo interface {
	Get(ctx context.Context, userID, eventID uuid.UUID) (*domain.EventParticipation, error)
	GetForUpdate(ctx context.Context, userID, eventID uuid.UUID) (*domain.EventParticipation, error)
	CountRegistered(ctx context.Context, eventID uuid.UUID) (int, error)
	OldestWaitlisted(ctx context.Context, eventID uuid.UUID) (*domain.EventParticipation, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error)
	UpsertRsvp(ctx context.Context, userID, eventID uuid.UUID, status domain.RsvpStatus) (*domain.EventParticipation, error)
	UpsertRegistration(ctx context.Context, userID, eventID uuid.UUID, status domain.RegistrationStatus, registeredAt *time.Time) (*domain.EventParticipation, error)
	UpsertFeedback(ctx context.Context, userID, eventID uuid.UUID, rating int, feedback *string) (*domain.EventParticipation, error)
	CheckIn(ctx context.Context, userID, eventID uuid.UUID, at time.Time) (*domain.EventParticipation, error)
}

type notifier interface {
	Notify(ctx context.Context, input notification.NotifyInput) (*domain.Notification, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const maxFeedbackLength = 2000

// Service provides participation operations.
type Service struct {
	events         eventRepo
	participations participationRepo
	notifier       notifier
	tx             txManager
	log            *slog.Logger
	now            func() time.Time
}

// NewService creates a new participation service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	participations participationRepo,
	notifier notifier,
	tx txManager,
) *Service {
	return &Service{
		events:         events,
		participations: participations,
		notifier:       notifier,
		tx:             tx,
		log:            log.With("service", "participation"),
		now:            time.Now,
	}
}

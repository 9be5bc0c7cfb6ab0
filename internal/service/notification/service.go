// Package notification creates notifications and tracks their delivery and
// read state. Delivery itself belongs to channel senders.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	CreateBatch(ctx context.Context, ns []domain.Notification) (int64, error)
	Transition(ctx context.Context, id uuid.UUID, to domain.DeliveryStatus, at time.Time, reason *string) (*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	ListPending(ctx context.Context, channel domain.Channel, limit int) ([]domain.Notification, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Sender delivers one notification over a channel. A returned error marks the
// notification FAILED with the error text as reason.
type Sender func(ctx context.Context, n domain.Notification) error

// Service provides notification operations.
type Service struct {
	repo notificationRepo
	tx   txManager
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new notification service.
func NewService(log *slog.Logger, repo notificationRepo, tx txManager) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
		log:  log.With("service", "notification"),
		now:  time.Now,
	}
}

// DispatchResult counts the outcome of one dispatch round.
type DispatchResult struct {
	Sent   int
	Failed int
}

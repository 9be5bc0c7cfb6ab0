// Package subscription keeps the billing state of user subscriptions and
// applies payment provider events to it.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/notification"
)

type subscriptionRepo interface {
	Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	GetByCustomerRefForUpdate(ctx context.Context, ref string) (*domain.Subscription, error)
	UpdateState(ctx context.Context, s *domain.Subscription, entry *domain.BillingEntry) (*domain.Subscription, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type notifier interface {
	Notify(ctx context.Context, input notification.NotifyInput) (*domain.Notification, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides subscription operations.
type Service struct {
	subscriptions subscriptionRepo
	users         userRepo
	notifier      notifier
	tx            txManager
	cfg           config.SubscriptionConfig
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates a new subscription service.
func NewService(
	log *slog.Logger,
	subscriptions subscriptionRepo,
	users userRepo,
	notifier notifier,
	tx txManager,
	cfg config.SubscriptionConfig,
) *Service {
	return &Service{
		subscriptions: subscriptions,
		users:         users,
		notifier:      notifier,
		tx:            tx,
		cfg:           cfg,
		log:           log.With("service", "subscription"),
		now:           time.Now,
	}
}

// notify writes a subscription notification for the owner of sub.
func (s *Service) notify(ctx context.Context, sub *domain.Subscription, typ domain.NotificationType, priority domain.Priority, message string) error {
	_, err := s.notifier.Notify(ctx, notification.NotifyInput{
		UserID:   sub.UserID,
		Type:     typ,
		Priority: priority,
		Message:  message,
		Link:     domain.LinkToSubscription(sub.ID),
		Data:     map[string]any{"plan": sub.Plan.String(), "payment_status": sub.PaymentStatus.String()},
	})
	if err != nil {
		return fmt.Errorf("notify %s: %w", typ, err)
	}
	return nil
}

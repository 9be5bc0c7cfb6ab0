package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// MarkRead flags a notification of userID as read. It is idempotent and does
// not depend on the delivery status. Notifications of other users are
// reported as not found.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	n, err := s.repo.MarkRead(ctx, userID, id, s.now())
	if err != nil {
		return nil, fmt.Errorf("notification.MarkRead: %w", err)
	}
	return n, nil
}

// MarkAllRead flags every unread notification of userID and returns how many
// changed.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.repo.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("notification.MarkAllRead: %w", err)
	}

	if n > 0 {
		s.log.InfoContext(ctx, "notifications marked read",
			slog.String("user_id", userID.String()),
			slog.Int64("count", n),
		)
	}
	return int(n), nil
}

// ListForUser returns the notifications of userID, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]domain.Notification, error) {
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, domain.NewValidationError("type", "unknown notification type")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, domain.NewValidationError("page", "limit and offset must not be negative")
	}

	ns, err := s.repo.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("notification.ListForUser: %w", err)
	}
	return ns, nil
}

// CountUnread returns the number of unread notifications of userID.
func (s *Service) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("notification.CountUnread: %w", err)
	}
	return n, nil
}

// Get returns a notification by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("notification.Get: %w", err)
	}
	return n, nil
}

package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// Notify creates a PENDING notification. It joins the caller's transaction
// when ctx carries one, so producers can write notifications atomically with
// their own state change.
func (s *Service) Notify(ctx context.Context, input NotifyInput) (*domain.Notification, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	n := input.build(s.now())
	created, err := s.repo.Create(ctx, &n)
	if err != nil {
		return nil, fmt.Errorf("notification.Notify: %w", err)
	}

	s.log.InfoContext(ctx, "notification created",
		slog.String("notification_id", created.ID.String()),
		slog.String("user_id", created.UserID.String()),
		slog.String("type", created.Type.String()),
		slog.String("channel", created.Channel.String()),
	)

	return created, nil
}

// NotifyMany creates one notification per input with a single insert. Either
// all inputs are valid and written or none is.
func (s *Service) NotifyMany(ctx context.Context, inputs []NotifyInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	now := s.now()
	batch := make([]domain.Notification, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return 0, fmt.Errorf("notification %d: %w", i, err)
		}
		batch = append(batch, in.build(now))
	}

	written, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("notification.NotifyMany: %w", err)
	}

	s.log.InfoContext(ctx, "notifications created",
		slog.String("type", inputs[0].Type.String()),
		slog.Int64("count", written),
	)

	return int(written), nil
}

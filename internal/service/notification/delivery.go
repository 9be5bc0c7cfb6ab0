package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const maxDispatchBatch = 100

// MarkSent moves a PENDING notification to SENT.
func (s *Service) MarkSent(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	n, err := s.repo.Transition(ctx, id, domain.DeliverySent, s.now(), nil)
	if err != nil {
		return nil, fmt.Errorf("notification.MarkSent: %w", err)
	}

	s.log.InfoContext(ctx, "notification sent", slog.String("notification_id", id.String()))
	return n, nil
}

// MarkFailed moves a PENDING notification to FAILED and records reason.
// Failed notifications are kept.
func (s *Service) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (*domain.Notification, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "required")
	}

	n, err := s.repo.Transition(ctx, id, domain.DeliveryFailed, s.now(), &reason)
	if err != nil {
		return nil, fmt.Errorf("notification.MarkFailed: %w", err)
	}

	s.log.WarnContext(ctx, "notification failed",
		slog.String("notification_id", id.String()),
		slog.String("reason", reason),
	)
	return n, nil
}

// ListPending returns up to limit PENDING notifications of channel and locks
// them until the surrounding transaction ends. Call it inside a transaction
// that also records the delivery outcome, or use Dispatch.
func (s *Service) ListPending(ctx context.Context, channel domain.Channel, limit int) ([]domain.Notification, error) {
	if !channel.IsValid() {
		return nil, domain.NewValidationError("channel", "unknown channel")
	}
	if limit <= 0 || limit > maxDispatchBatch {
		limit = maxDispatchBatch
	}

	ns, err := s.repo.ListPending(ctx, channel, limit)
	if err != nil {
		return nil, fmt.Errorf("notification.ListPending: %w", err)
	}
	return ns, nil
}

// Dispatch hands up to limit pending notifications of channel to send and
// records each outcome. Rows are locked for the duration of the round, so
// concurrent dispatchers of the same channel never deliver a notification
// twice.
func (s *Service) Dispatch(ctx context.Context, channel domain.Channel, limit int, send Sender) (DispatchResult, error) {
	var res DispatchResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		pending, err := s.ListPending(txCtx, channel, limit)
		if err != nil {
			return err
		}

		for _, n := range pending {
			if sendErr := send(txCtx, n); sendErr != nil {
				if _, err := s.repo.Transition(txCtx, n.ID, domain.DeliveryFailed, s.now(), ptr(sendErr.Error())); err != nil {
					return fmt.Errorf("mark %s failed: %w", n.ID, err)
				}
				res.Failed++
				continue
			}
			if _, err := s.repo.Transition(txCtx, n.ID, domain.DeliverySent, s.now(), nil); err != nil {
				return fmt.Errorf("mark %s sent: %w", n.ID, err)
			}
			res.Sent++
		}
		return nil
	})
	if err != nil {
		return DispatchResult{}, fmt.Errorf("notification.Dispatch: %w", err)
	}

	if res.Sent+res.Failed > 0 {
		s.log.InfoContext(ctx, "notifications dispatched",
			slog.String("channel", channel.String()),
			slog.Int("sent", res.Sent),
			slog.Int("failed", res.Failed),
		)
	}
	return res, nil
}

func ptr(s string) *string {
	return &s
}

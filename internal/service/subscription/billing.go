package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// ApplyPaymentEvent applies a provider callback to the subscription it refers
// to.
//
//	SUCCEEDED  PENDING   -> COMPLETED  opens a renewal window
//	FAILED     PENDING   -> FAILED
//	FAILED     COMPLETED -> CANCELED   failed renewal
//	REFUNDED   COMPLETED -> REFUNDED
//
// Each applied event appends a billing entry carrying the provider reference
// and writes a notification. Replaying a reference returns the subscription
// unchanged.
func (s *Service) ApplyPaymentEvent(ctx context.Context, ev PaymentEvent) (*domain.Subscription, error) {
	ev = ev.normalized()
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	var (
		result   *domain.Subscription
		from     domain.PaymentStatus
		replayed bool
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sub, err := s.resolve(txCtx, ev)
		if err != nil {
			return err
		}
		if sub.HasReference(ev.Reference) {
			result, replayed = sub, true
			return nil
		}
		from = sub.PaymentStatus

		now := s.now()
		at := ev.OccurredAt
		if at.IsZero() {
			at = now
		}

		entry := domain.BillingEntry{
			AmountCents: ev.AmountCents,
			Currency:    s.currency(ev.Currency),
			Reference:   ev.Reference,
			RecordedAt:  now,
		}

		var (
			next    domain.PaymentStatus
			typ     domain.NotificationType
			message string
		)
		priority := domain.PriorityNormal
		switch ev.Kind {
		case PaymentSucceeded:
			next = domain.PaymentCompleted
			entry.Kind = domain.BillingKindPayment
			end := sub.NextRenewalFrom(at, s.cfg.RenewalPeriod)
			start := end.Add(-s.cfg.RenewalPeriod)
			entry.PeriodStart, entry.PeriodEnd = &start, &end
			sub.LastRenewalDate, sub.NextRenewalDate = &at, &end
			typ, message = domain.NotificationPaymentSuccess, fmt.Sprintf("Payment received for your %s plan", sub.Plan)
		case PaymentFailed:
			next = domain.PaymentFailed
			typ, message = domain.NotificationPaymentFailed, "Your payment failed"
			if sub.PaymentStatus == domain.PaymentCompleted {
				next = domain.PaymentCanceled
				sub.CanceledAt = &at
				typ, message = domain.NotificationSubscriptionCanceled, "Your subscription was canceled because the renewal payment failed"
			}
			entry.Kind = domain.BillingKindFailure
			priority = domain.PriorityHigh
			if ev.Reason != "" {
				message += ": " + ev.Reason
			}
		case PaymentRefunded:
			next = domain.PaymentRefunded
			entry.Kind = domain.BillingKindRefund
			typ, message = domain.NotificationPaymentRefunded, "Your payment was refunded"
		}

		if err := domain.CheckPaymentTransition(sub.PaymentStatus, next); err != nil {
			return err
		}
		sub.PaymentStatus = next
		entry.Status = next

		result, err = s.subscriptions.UpdateState(txCtx, sub, &entry)
		if err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}
		return s.notify(txCtx, result, typ, priority, message)
	})
	if err != nil {
		return nil, fmt.Errorf("subscription.ApplyPaymentEvent: %w", err)
	}

	if replayed {
		s.log.InfoContext(ctx, "payment event replayed",
			slog.String("subscription_id", result.ID.String()),
			slog.String("reference", ev.Reference),
		)
		return result, nil
	}
	s.log.InfoContext(ctx, "payment event applied",
		slog.String("subscription_id", result.ID.String()),
		slog.String("kind", string(ev.Kind)),
		slog.String("from", from.String()),
		slog.String("to", result.PaymentStatus.String()),
		slog.String("reference", ev.Reference),
	)
	return result, nil
}

// Retry moves a FAILED subscription back to PENDING so the provider can
// charge again.
func (s *Service) Retry(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	var result *domain.Subscription

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sub, err := s.subscriptions.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}
		if err := domain.CheckPaymentTransition(sub.PaymentStatus, domain.PaymentPending); err != nil {
			return err
		}
		sub.PaymentStatus = domain.PaymentPending

		result, err = s.subscriptions.UpdateState(txCtx, sub, nil)
		if err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("subscription.Retry: %w", err)
	}

	s.log.InfoContext(ctx, "subscription payment retried", slog.String("subscription_id", id.String()))
	return result, nil
}

// Renew extends a COMPLETED subscription by one renewal period. An unexpired
// window is extended from its end.
func (s *Service) Renew(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	var result *domain.Subscription

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sub, err := s.subscriptions.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}
		if sub.PaymentStatus != domain.PaymentCompleted {
			return domain.NewTransitionError("subscription", sub.PaymentStatus.String(), "RENEWED")
		}

		now := s.now()
		end := sub.NextRenewalFrom(now, s.cfg.RenewalPeriod)
		start := end.Add(-s.cfg.RenewalPeriod)
		sub.LastRenewalDate, sub.NextRenewalDate = &now, &end

		entry := domain.BillingEntry{
			Kind:        domain.BillingKindRenewal,
			Status:      domain.PaymentCompleted,
			Currency:    s.currency(""),
			PeriodStart: &start,
			PeriodEnd:   &end,
			RecordedAt:  now,
		}

		result, err = s.subscriptions.UpdateState(txCtx, sub, &entry)
		if err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}
		return s.notify(txCtx, result, domain.NotificationSubscriptionRenewal, domain.PriorityNormal,
			fmt.Sprintf("Your %s plan was renewed until %s", result.Plan, end.Format("2006-01-02")))
	})
	if err != nil {
		return nil, fmt.Errorf("subscription.Renew: %w", err)
	}

	s.log.InfoContext(ctx, "subscription renewed",
		slog.String("subscription_id", id.String()),
		slog.Time("next_renewal_date", *result.NextRenewalDate),
	)
	return result, nil
}

// Cancel ends a COMPLETED or FAILED subscription. canceled_at is set once; a
// second call fails with domain.ErrAlreadyCanceled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	var result *domain.Subscription

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sub, err := s.subscriptions.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}
		if sub.IsCanceled() {
			return domain.ErrAlreadyCanceled
		}
		if err := domain.CheckPaymentTransition(sub.PaymentStatus, domain.PaymentCanceled); err != nil {
			return err
		}

		now := s.now()
		sub.PaymentStatus = domain.PaymentCanceled
		sub.CanceledAt = &now

		result, err = s.subscriptions.UpdateState(txCtx, sub, nil)
		if err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}
		return s.notify(txCtx, result, domain.NotificationSubscriptionCanceled, domain.PriorityNormal,
			fmt.Sprintf("Your %s plan was canceled", result.Plan))
	})
	if err != nil {
		return nil, fmt.Errorf("subscription.Cancel: %w", err)
	}

	s.log.InfoContext(ctx, "subscription canceled", slog.String("subscription_id", id.String()))
	return result, nil
}

func (s *Service) currency(c string) string {
	if c != "" {
		return c
	}
	return s.cfg.Currency
}

package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// Subscribe opens a PENDING subscription for userID. A user holds at most one
// subscription; a second one fails with domain.ErrAlreadyExists.
func (s *Service) Subscribe(ctx context.Context, userID uuid.UUID, plan domain.Plan, customerRef string) (*domain.Subscription, error) {
	// Step 1: Validate input
	var errs []domain.FieldError
	if userID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !plan.IsValid() {
		errs = append(errs, domain.FieldError{Field: "plan", Message: "unknown plan"})
	}
	customerRef = strings.TrimSpace(customerRef)
	if len(customerRef) > 128 {
		errs = append(errs, domain.FieldError{Field: "customer_ref", Message: "max 128 characters"})
	}
	if len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	// Step 2: Check the subscriber
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subscription.Subscribe get user: %w", err)
	}
	if user.Status.IsDisabled() {
		return nil, domain.ErrAccountDisabled
	}

	// Step 3: Create
	now := s.now()
	sub := &domain.Subscription{
		ID:            uuid.New(),
		UserID:        userID,
		Plan:          plan,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if customerRef != "" {
		sub.ProviderCustomerID = &customerRef
	}

	created, err := s.subscriptions.Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("subscription.Subscribe: %w", err)
	}

	s.log.InfoContext(ctx, "subscription created",
		slog.String("subscription_id", created.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("plan", plan.String()),
	)
	return created, nil
}

// Get returns a subscription by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("subscription.Get: %w", err)
	}
	return sub, nil
}

// GetForUser returns the subscription of userID.
func (s *Service) GetForUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subscription.GetForUser: %w", err)
	}
	return sub, nil
}

// resolve locks the subscription a payment event refers to.
func (s *Service) resolve(ctx context.Context, ev PaymentEvent) (*domain.Subscription, error) {
	if ev.SubscriptionID != uuid.Nil {
		sub, err := s.subscriptions.GetByIDForUpdate(ctx, ev.SubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("get subscription: %w", err)
		}
		if ev.CustomerRef != "" && (sub.ProviderCustomerID == nil || *sub.ProviderCustomerID != ev.CustomerRef) {
			return nil, domain.NewValidationError("customer_ref", "does not match the subscription")
		}
		return sub, nil
	}

	sub, err := s.subscriptions.GetByCustomerRefForUpdate(ctx, ev.CustomerRef)
	if err != nil {
		return nil, fmt.Errorf("get subscription by customer: %w", err)
	}
	return sub, nil
}

package subscription

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/validation"
)

// PaymentEventKind is the outcome a payment provider reports.
type PaymentEventKind string

const (
	PaymentSucceeded PaymentEventKind = "SUCCEEDED"
	PaymentFailed    PaymentEventKind = "FAILED"
	PaymentRefunded  PaymentEventKind = "REFUNDED"
)

// PaymentEvent is a payment provider callback. The subscription is resolved
// by SubscriptionID when set, otherwise by CustomerRef. Reference identifies
// the provider transaction; a reference already present in the billing
// history makes the event a no-op.
type PaymentEvent struct {
	SubscriptionID uuid.UUID
	CustomerRef    string           `validate:"max=128"`
	Kind           PaymentEventKind `validate:"required,oneof=SUCCEEDED FAILED REFUNDED"`
	Reference      string           `validate:"required,max=128"`
	AmountCents    int64            `validate:"gte=0"`
	Currency       string           `validate:"max=3"`
	Reason         string           `validate:"max=500"`
	OccurredAt     time.Time
}

// Validate checks all fields and collects all errors.
func (e PaymentEvent) Validate() error {
	err := validation.Struct(e)

	var errs []domain.FieldError
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		errs = verr.Errors
	}
	if e.SubscriptionID == uuid.Nil && e.CustomerRef == "" {
		errs = append(errs, domain.FieldError{Field: "subscription_id", Message: "subscription_id or customer_ref is required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (e PaymentEvent) normalized() PaymentEvent {
	e.CustomerRef = strings.TrimSpace(e.CustomerRef)
	e.Reference = strings.TrimSpace(e.Reference)
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
	e.Reason = strings.TrimSpace(e.Reason)
	return e
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a subscription tier.
type Plan string

const (
	PlanFree       Plan = "FREE"
	PlanBasic      Plan = "BASIC"
	PlanPremium    Plan = "PREMIUM"
	PlanEnterprise Plan = "ENTERPRISE"
)

func (p Plan) String() string { return string(p) }

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium, PlanEnterprise:
		return true
	}
	return false
}

// PaymentStatus is the billing state of a subscription.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCanceled  PaymentStatus = "CANCELED"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded, PaymentCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentRefunded || s == PaymentCanceled
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentCompleted: {PaymentRefunded, PaymentCanceled},
	PaymentFailed:    {PaymentPending, PaymentCanceled},
}

// CheckPaymentTransition validates moving a subscription from one payment
// status to another.
func CheckPaymentTransition(from, to PaymentStatus) error {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return NewTransitionError("subscription", from.String(), to.String())
}

// BillingEntry is one immutable record in a subscription's billing history.
type BillingEntry struct {
	Kind        string        `json:"kind"`
	Status      PaymentStatus `json:"status"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency,omitempty"`
	Reference   string        `json:"reference,omitempty"`
	PeriodStart *time.Time    `json:"period_start,omitempty"`
	PeriodEnd   *time.Time    `json:"period_end,omitempty"`
	RecordedAt  time.Time     `json:"recorded_at"`
}

// Billing entry kinds.
const (
	BillingKindPayment = "PAYMENT"
	BillingKindRenewal = "RENEWAL"
	BillingKindRefund  = "REFUND"
	BillingKindFailure = "FAILURE"
)

// Subscription is the 1:1 billing record of a user.
type Subscription struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Plan               Plan
	PaymentStatus      PaymentStatus
	LastRenewalDate    *time.Time
	NextRenewalDate    *time.Time
	BillingHistory     []BillingEntry
	ProviderCustomerID *string
	CanceledAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsCanceled reports whether the subscription was canceled.
func (s *Subscription) IsCanceled() bool { return s.CanceledAt != nil }

// HasReference reports whether a billing entry with the provider reference
// was already recorded.
func (s *Subscription) HasReference(ref string) bool {
	if ref == "" {
		return false
	}
	for _, e := range s.BillingHistory {
		if e.Reference == ref {
			return true
		}
	}
	return false
}

// NextRenewalFrom computes the renewal date following a renewal at now.
// An unexpired window is extended from its end rather than from now.
func (s *Subscription) NextRenewalFrom(now time.Time, period time.Duration) time.Time {
	base := now
	if s.NextRenewalDate != nil && s.NextRenewalDate.After(now) {
		base = *s.NextRenewalDate
	}
	return base.Add(period)
}

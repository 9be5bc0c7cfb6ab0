// Package subscription implements the Subscription repository using PostgreSQL.
package subscription

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const subscriptionColumns = `id, user_id, plan, payment_status, last_renewal_date, next_renewal_date,
	billing_history, provider_customer_id, canceled_at, created_at, updated_at`

// Repo provides subscription persistence backed by PostgreSQL. The billing
// history is a jsonb array that only ever grows.
type Repo struct {
	pool postgres.Querier
}

// New creates a new subscription repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a subscription. A second subscription for the same user, or
// a taken provider customer id, fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	return r.getOne(ctx, s.ID,
		`INSERT INTO subscriptions (id, user_id, plan, payment_status, provider_customer_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+subscriptionColumns,
		s.ID, s.UserID, string(s.Plan), string(s.PaymentStatus), s.ProviderCustomerID, s.CreatedAt, s.UpdatedAt,
	)
}

// GetByID returns a subscription by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	return r.getOne(ctx, id, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
}

// GetByIDForUpdate returns a subscription and locks its row.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	return r.getOne(ctx, id, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1 FOR UPDATE`, id)
}

// GetByUserID returns the subscription of a user.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	return r.getOne(ctx, userID, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1`, userID)
}

// GetByCustomerRefForUpdate resolves a subscription by payment provider
// customer id and locks its row.
func (r *Repo) GetByCustomerRefForUpdate(ctx context.Context, ref string) (*domain.Subscription, error) {
	return r.getOne(ctx, ref,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE provider_customer_id = $1 FOR UPDATE`, ref)
}

// UpdateState writes status, renewal window and cancellation time, appending
// entry to the billing history when non-nil.
func (r *Repo) UpdateState(ctx context.Context, s *domain.Subscription, entry *domain.BillingEntry) (*domain.Subscription, error) {
	set := `payment_status = $2, last_renewal_date = $3, next_renewal_date = $4, canceled_at = $5`
	args := []any{s.ID, string(s.PaymentStatus), s.LastRenewalDate, s.NextRenewalDate, s.CanceledAt}
	if entry != nil {
		set += `, billing_history = billing_history || $6::jsonb`
		args = append(args, []domain.BillingEntry{*entry})
	}

	return r.getOne(ctx, s.ID,
		`UPDATE subscriptions SET `+set+` WHERE id = $1 RETURNING `+subscriptionColumns,
		args...,
	)
}

func (r *Repo) getOne(ctx context.Context, key any, sql string, args ...any) (*domain.Subscription, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row subscriptionRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "subscription", key)
	}

	s := row.toDomain()
	return &s, nil
}

type subscriptionRow struct {
	ID                 uuid.UUID             `db:"id"`
	UserID             uuid.UUID             `db:"user_id"`
	Plan               string                `db:"plan"`
	PaymentStatus      string                `db:"payment_status"`
	LastRenewalDate    *time.Time            `db:"last_renewal_date"`
	NextRenewalDate    *time.Time            `db:"next_renewal_date"`
	BillingHistory     []domain.BillingEntry `db:"billing_history"`
	ProviderCustomerID *string               `db:"provider_customer_id"`
	CanceledAt         *time.Time            `db:"canceled_at"`
	CreatedAt          time.Time             `db:"created_at"`
	UpdatedAt          time.Time             `db:"updated_at"`
}

func (row subscriptionRow) toDomain() domain.Subscription {
	history := row.BillingHistory
	if history == nil {
		history = []domain.BillingEntry{}
	}
	return domain.Subscription{
		ID:                 row.ID,
		UserID:             row.UserID,
		Plan:               domain.Plan(row.Plan),
		PaymentStatus:      domain.PaymentStatus(row.PaymentStatus),
		LastRenewalDate:    row.LastRenewalDate,
		NextRenewalDate:    row.NextRenewalDate,
		BillingHistory:     history,
		ProviderCustomerID: row.ProviderCustomerID,
		CanceledAt:         row.CanceledAt,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

// Package notification implements the Notification repository using PostgreSQL.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const notificationColumns = `id, user_id, event_id, subscription_id, linked_entity_type, linked_entity_id,
	type, channel, priority, status, message, data, metadata, sender,
	is_read, read_at, sent_at, failure_reason, created_at, updated_at`

var insertColumns = []string{
	"id", "user_id", "event_id", "subscription_id", "linked_entity_type", "linked_entity_id",
	"type", "channel", "priority", "status", "message", "data", "metadata", "sender",
	"created_at", "updated_at",
}

const maxListLimit = 100

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new notification repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a notification and returns the stored row.
func (r *Repo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	sql, args, err := postgres.Builder().
		Insert("notifications").
		Columns(insertColumns...).
		Values(insertValues(n)...).
		Suffix("RETURNING " + notificationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notification insert: %w", err)
	}
	return r.getOne(ctx, n.ID, sql, args...)
}

// CreateBatch inserts notifications with one multi-row statement and returns
// how many rows were written.
func (r *Repo) CreateBatch(ctx context.Context, ns []domain.Notification) (int64, error) {
	if len(ns) == 0 {
		return 0, nil
	}

	qb := postgres.Builder().Insert("notifications").Columns(insertColumns...)
	for i := range ns {
		qb = qb.Values(insertValues(&ns[i])...)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build notification batch insert: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "notification batch", len(ns))
	}
	return tag.RowsAffected(), nil
}

// Transition moves a PENDING notification to SENT or FAILED. A notification
// that left PENDING already fails with domain.ErrInvalidTransition.
func (r *Repo) Transition(ctx context.Context, id uuid.UUID, to domain.DeliveryStatus, at time.Time, reason *string) (*domain.Notification, error) {
	var sentAt *time.Time
	if to == domain.DeliverySent {
		sentAt = &at
	}

	n, err := r.getOne(ctx, id,
		`UPDATE notifications
		 SET status = $2, sent_at = $3, failure_reason = $4
		 WHERE id = $1 AND status = 'PENDING'
		 RETURNING `+notificationColumns,
		id, string(to), sentAt, reason,
	)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return n, err
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, domain.NewTransitionError("notification", current.Status.String(), to.String())
}

// MarkRead flags a notification of userID as read. The first read time is kept.
func (r *Repo) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) (*domain.Notification, error) {
	return r.getOne(ctx, id,
		`UPDATE notifications
		 SET is_read = true, read_at = COALESCE(read_at, $3)
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+notificationColumns,
		id, userID, at,
	)
}

// MarkAllRead flags every unread notification of userID and returns the count.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = $2 WHERE user_id = $1 AND NOT is_read`,
		userID, at,
	)
	if err != nil {
		return 0, postgres.MapError(err, "notifications of user", userID)
	}
	return tag.RowsAffected(), nil
}

// DeleteByUser removes every notification addressed to userID.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, postgres.MapError(err, "notifications of user", userID)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a notification by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	return r.getOne(ctx, id, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
}

// ListForUser returns notifications of userID, newest first.
func (r *Repo) ListForUser(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, error) {
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	qb := postgres.Builder().
		Select(notificationColumns).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	if f.UnreadOnly {
		qb = qb.Where(squirrel.Eq{"is_read": false})
	}
	if f.Type != nil {
		qb = qb.Where(squirrel.Eq{"type": string(*f.Type)})
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notification list query: %w", err)
	}
	return r.list(ctx, userID, sql, args...)
}

// CountUnread returns the number of unread notifications of userID.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	err := q.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID,
	).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "notifications of user", userID)
	}
	return n, nil
}

// ListPending returns the oldest PENDING notifications of a channel and
// locks them. Rows locked by another sender are skipped.
func (r *Repo) ListPending(ctx context.Context, channel domain.Channel, limit int) ([]domain.Notification, error) {
	return r.list(ctx, channel,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE status = 'PENDING' AND channel = $1
		 ORDER BY created_at, id
		 LIMIT $2
		 FOR UPDATE SKIP LOCKED`,
		string(channel), limit,
	)
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, sql string, args ...any) (*domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row notificationRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "notification", id)
	}

	n := row.toDomain()
	return &n, nil
}

func (r *Repo) list(ctx context.Context, key any, sql string, args ...any) ([]domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []notificationRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "notifications", key)
	}

	result := make([]domain.Notification, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func insertValues(n *domain.Notification) []any {
	var (
		eventID, subscriptionID *uuid.UUID
		entityType, entityID    *string
	)
	switch n.Link.Kind {
	case domain.LinkEvent:
		eventID = &n.Link.EventID
	case domain.LinkSubscription:
		subscriptionID = &n.Link.SubscriptionID
	case domain.LinkExternal:
		entityType = &n.Link.EntityType
		entityID = &n.Link.EntityID
	}

	return []any{
		n.ID, n.UserID, eventID, subscriptionID, entityType, entityID,
		string(n.Type), string(n.Channel), string(n.Priority), string(n.Status), n.Message,
		objectOrEmpty(n.Data), objectOrEmpty(n.Metadata), objectOrEmpty(n.Sender),
		n.CreatedAt, n.UpdatedAt,
	}
}

func objectOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

type notificationRow struct {
	ID               uuid.UUID      `db:"id"`
	UserID           uuid.UUID      `db:"user_id"`
	EventID          *uuid.UUID     `db:"event_id"`
	SubscriptionID   *uuid.UUID     `db:"subscription_id"`
	LinkedEntityType *string        `db:"linked_entity_type"`
	LinkedEntityID   *string        `db:"linked_entity_id"`
	Type             string         `db:"type"`
	Channel          string         `db:"channel"`
	Priority         string         `db:"priority"`
	Status           string         `db:"status"`
	Message          string         `db:"message"`
	Data             map[string]any `db:"data"`
	Metadata         map[string]any `db:"metadata"`
	Sender           map[string]any `db:"sender"`
	IsRead           bool           `db:"is_read"`
	ReadAt           *time.Time     `db:"read_at"`
	SentAt           *time.Time     `db:"sent_at"`
	FailureReason    *string        `db:"failure_reason"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (row notificationRow) toDomain() domain.Notification {
	n := domain.Notification{
		ID:            row.ID,
		UserID:        row.UserID,
		Type:          domain.NotificationType(row.Type),
		Channel:       domain.Channel(row.Channel),
		Priority:      domain.Priority(row.Priority),
		Status:        domain.DeliveryStatus(row.Status),
		Message:       row.Message,
		Data:          objectOrEmpty(row.Data),
		Metadata:      objectOrEmpty(row.Metadata),
		Sender:        objectOrEmpty(row.Sender),
		IsRead:        row.IsRead,
		ReadAt:        row.ReadAt,
		SentAt:        row.SentAt,
		FailureReason: row.FailureReason,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	switch {
	case row.EventID != nil:
		n.Link = domain.LinkToEvent(*row.EventID)
	case row.SubscriptionID != nil:
		n.Link = domain.LinkToSubscription(*row.SubscriptionID)
	case row.LinkedEntityType != nil && row.LinkedEntityID != nil:
		n.Link = domain.LinkToExternal(*row.LinkedEntityType, *row.LinkedEntityID)
	}
	return n
}

// Package participation implements the event participation ledger using PostgreSQL.
package participation

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const participationColumns = `id, user_id, event_id, rsvp_status, registration_status, check_in_time,
	feedback, rating, registered_at, created_at, updated_at`

// Repo provides participation persistence backed by PostgreSQL. Every write
// upserts the single (user_id, event_id) row.
type Repo struct {
	pool postgres.Querier
}

// New creates a new participation repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Get returns the participation of userID in eventID.
func (r *Repo) Get(ctx context.Context, userID, eventID uuid.UUID) (*domain.EventParticipation, error) {
	return r.getOne(ctx, userID, eventID,
		`SELECT `+participationColumns+` FROM event_participations WHERE user_id = $1 AND event_id = $2`,
		userID, eventID,
	)
}

// GetForUpdate returns the participation and locks its row.
func (r *Repo) GetForUpdate(ctx context.Context, userID, eventID uuid.UUID) (*domain.EventParticipation, error) {
	return r.getOne(ctx, userID, eventID,
		`SELECT `+participationColumns+` FROM event_participations
		 WHERE user_id = $1 AND event_id = $2 FOR UPDATE`,
		userID, eventID,
	)
}

// CountRegistered returns the number of REGISTERED participants of an event.
func (r *Repo) CountRegistered(ctx context.Context, eventID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	err := q.QueryRow(ctx,
		`SELECT count(*) FROM event_participations WHERE event_id = $1 AND registration_status = 'REGISTERED'`,
		eventID,
	).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "event", eventID)
	}
	return n, nil
}

// OldestWaitlisted returns the earliest WAITLISTED participation of an event
// and locks it. Returns domain.ErrNotFound when the waitlist is empty.
func (r *Repo) OldestWaitlisted(ctx context.Context, eventID uuid.UUID) (*domain.EventParticipation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row participationRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+participationColumns+` FROM event_participations
		 WHERE event_id = $1 AND registration_status = 'WAITLISTED'
		 ORDER BY registered_at, id
		 LIMIT 1
		 FOR UPDATE`,
		eventID,
	)
	if err != nil {
		return nil, postgres.MapError(err, "waitlist of event", eventID)
	}

	p := row.toDomain()
	return &p, nil
}

// ListByEvent returns all participations of an event, earliest first.
func (r *Repo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []participationRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+participationColumns+` FROM event_participations
		 WHERE event_id = $1 ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, postgres.MapError(err, "event", eventID)
	}

	result := make([]domain.EventParticipation, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}

// ListNotifiableUserIDs returns users attached to an event whose
// registration is not CANCELED.
func (r *Repo) ListNotifiableUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ids []uuid.UUID
	err := pgxscan.Select(ctx, q, &ids,
		`SELECT user_id FROM event_participations
		 WHERE event_id = $1 AND registration_status IS DISTINCT FROM 'CANCELED'
		 ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, postgres.MapError(err, "event", eventID)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Upserts
// ---------------------------------------------------------------------------

// UpsertRsvp sets the RSVP axis, creating the row when absent.
func (r *Repo) UpsertRsvp(ctx context.Context, userID, eventID uuid.UUID, status domain.RsvpStatus) (*domain.EventParticipation, error) {
	return r.upsert(ctx, userID, eventID,
		map[string]any{"rsvp_status": string(status)},
		"rsvp_status = EXCLUDED.rsvp_status",
	)
}

// UpsertRegistration sets the registration axis. registeredAt replaces the
// stored queue timestamp when non-nil and is kept otherwise.
func (r *Repo) UpsertRegistration(ctx context.Context, userID, eventID uuid.UUID, status domain.RegistrationStatus, registeredAt *time.Time) (*domain.EventParticipation, error) {
	return r.upsert(ctx, userID, eventID,
		map[string]any{"registration_status": string(status), "registered_at": registeredAt},
		"registration_status = EXCLUDED.registration_status, "+
			"registered_at = COALESCE(EXCLUDED.registered_at, event_participations.registered_at)",
	)
}

// UpsertFeedback records a rating and optional free-text feedback.
func (r *Repo) UpsertFeedback(ctx context.Context, userID, eventID uuid.UUID, rating int, feedback *string) (*domain.EventParticipation, error) {
	return r.upsert(ctx, userID, eventID,
		map[string]any{"rating": rating, "feedback": feedback},
		"rating = EXCLUDED.rating, feedback = EXCLUDED.feedback",
	)
}

func (r *Repo) upsert(ctx context.Context, userID, eventID uuid.UUID, values map[string]any, onConflict string) (*domain.EventParticipation, error) {
	values["user_id"] = userID
	values["event_id"] = eventID

	sql, args, err := postgres.Builder().
		Insert("event_participations").
		SetMap(values).
		Suffix("ON CONFLICT (user_id, event_id) DO UPDATE SET " + onConflict + " RETURNING " + participationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build participation upsert: %w", err)
	}

	return r.getOne(ctx, userID, eventID, sql, args...)
}

// ---------------------------------------------------------------------------
// Check-in and cleanup
// ---------------------------------------------------------------------------

// CheckIn stores the check-in time unless one was already recorded and
// returns the row. The first timestamp is never overwritten.
func (r *Repo) CheckIn(ctx context.Context, userID, eventID uuid.UUID, at time.Time) (*domain.EventParticipation, error) {
	return r.getOne(ctx, userID, eventID,
		`UPDATE event_participations
		 SET check_in_time = COALESCE(check_in_time, $3)
		 WHERE user_id = $1 AND event_id = $2
		 RETURNING `+participationColumns,
		userID, eventID, at,
	)
}

// DeleteByUser removes every participation of userID and returns how many
// rows were deleted.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM event_participations WHERE user_id = $1`, userID)
	if err != nil {
		return 0, postgres.MapError(err, "participations of user", userID)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) getOne(ctx context.Context, userID, eventID uuid.UUID, sql string, args ...any) (*domain.EventParticipation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row participationRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "participation", userID.String()+"/"+eventID.String())
	}

	p := row.toDomain()
	return &p, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type participationRow struct {
	ID           uuid.UUID  `db:"id"`
	UserID       uuid.UUID  `db:"user_id"`
	EventID      uuid.UUID  `db:"event_id"`
	Rsvp         *string    `db:"rsvp_status"`
	Registration *string    `db:"registration_status"`
	CheckInTime  *time.Time `db:"check_in_time"`
	Feedback     *string    `db:"feedback"`
	Rating       *int       `db:"rating"`
	RegisteredAt *time.Time `db:"registered_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (row participationRow) toDomain() domain.EventParticipation {
	p := domain.EventParticipation{
		ID:           row.ID,
		UserID:       row.UserID,
		EventID:      row.EventID,
		CheckInTime:  row.CheckInTime,
		Feedback:     row.Feedback,
		Rating:       row.Rating,
		RegisteredAt: row.RegisteredAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.Rsvp != nil {
		s := domain.RsvpStatus(*row.Rsvp)
		p.Rsvp = &s
	}
	if row.Registration != nil {
		s := domain.RegistrationStatus(*row.Registration)
		p.Registration = &s
	}
	return p
}

// Package engagement implements liked/saved join rows and the denormalized
// event counters using PostgreSQL.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// Repo provides engagement persistence. Join-row writes and counter updates
// are separate statements; callers pair them inside one transaction.
type Repo struct {
	pool postgres.Querier
}

// New creates a new engagement repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type kindTables struct {
	table   string
	counter string
}

func tablesFor(kind domain.EngagementKind) (kindTables, error) {
	switch kind {
	case domain.EngagementLike:
		return kindTables{table: "liked_events", counter: "like_count"}, nil
	case domain.EngagementSave:
		return kindTables{table: "saved_events", counter: "save_count"}, nil
	}
	return kindTables{}, fmt.Errorf("engagement kind %q: %w", kind, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Join rows
// ---------------------------------------------------------------------------

// Insert adds a join row for (userID, target). It reports false when the row
// already existed; concurrent duplicates resolve through the unique key.
func (r *Repo) Insert(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, target domain.TargetRef) (bool, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return false, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var eventID *uuid.UUID
	if !target.IsExternal() {
		eventID = &target.EventID
	}

	var id uuid.UUID
	err = q.QueryRow(ctx,
		`INSERT INTO `+t.table+` (user_id, target_id, is_external, event_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, target_id) DO NOTHING
		 RETURNING id`,
		userID, target.ID, target.IsExternal(), eventID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgres.MapError(err, kind.String(), target.ID)
	}
	return true, nil
}

// Delete removes the join row for (userID, targetID) and reports whether one
// existed.
func (r *Repo) Delete(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, targetID string) (bool, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return false, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM `+t.table+` WHERE user_id = $1 AND target_id = $2`,
		userID, targetID,
	)
	if err != nil {
		return false, postgres.MapError(err, kind.String(), targetID)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser returns the join rows of userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, limit, offset int) ([]domain.EventEngagement, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []engagementRow
	err = pgxscan.Select(ctx, q, &rows,
		`SELECT id, user_id, target_id, is_external, event_id, created_at
		 FROM `+t.table+`
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, postgres.MapError(err, kind.String()+"s of user", userID)
	}

	result := make([]domain.EventEngagement, len(rows))
	for i, row := range rows {
		result[i] = domain.EventEngagement(row)
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Counters
// ---------------------------------------------------------------------------

// AdjustCounter applies delta to the event counter of kind and returns the
// new value. The counter never goes below zero.
func (r *Repo) AdjustCounter(ctx context.Context, kind domain.EngagementKind, eventID uuid.UUID, delta int) (int, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return 0, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err = q.QueryRow(ctx,
		`UPDATE events SET `+t.counter+` = GREATEST(`+t.counter+` + $2, 0)
		 WHERE id = $1
		 RETURNING `+t.counter,
		eventID, delta,
	).Scan(&count)
	if err != nil {
		return 0, postgres.MapError(err, "event", eventID)
	}
	return count, nil
}

// DeleteByUser removes every join row of kind owned by userID and decrements
// the counters of the internal events they referenced. Returns the number of
// removed rows.
func (r *Repo) DeleteByUser(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID) (int64, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return 0, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var removed int64
	err = q.QueryRow(ctx,
		`WITH removed AS (
		     DELETE FROM `+t.table+` WHERE user_id = $1 RETURNING event_id
		 ), per_event AS (
		     SELECT event_id, count(*) AS n FROM removed WHERE event_id IS NOT NULL GROUP BY event_id
		 ), adjusted AS (
		     UPDATE events e SET `+t.counter+` = GREATEST(e.`+t.counter+` - p.n, 0)
		     FROM per_event p WHERE e.id = p.event_id
		     RETURNING e.id
		 )
		 SELECT count(*) FROM removed`,
		userID,
	).Scan(&removed)
	if err != nil {
		return 0, postgres.MapError(err, kind.String()+"s of user", userID)
	}
	return removed, nil
}

// ---------------------------------------------------------------------------
// Saved posts
// ---------------------------------------------------------------------------

// InsertSavedPost saves a post for userID and reports false when it was
// already saved.
func (r *Repo) InsertSavedPost(ctx context.Context, userID uuid.UUID, postID string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`INSERT INTO saved_posts (user_id, post_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if err != nil {
		return false, postgres.MapError(err, "saved post", postID)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteSavedPost removes a saved post and reports whether it existed.
func (r *Repo) DeleteSavedPost(ctx context.Context, userID uuid.UUID, postID string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM saved_posts WHERE user_id = $1 AND post_id = $2`,
		userID, postID,
	)
	if err != nil {
		return false, postgres.MapError(err, "saved post", postID)
	}
	return tag.RowsAffected() > 0, nil
}

// ListSavedPosts returns the saved posts of userID, newest first.
func (r *Repo) ListSavedPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedPost, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []savedPostRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT id, user_id, post_id, created_at FROM saved_posts
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, postgres.MapError(err, "saved posts of user", userID)
	}

	result := make([]domain.SavedPost, len(rows))
	for i, row := range rows {
		result[i] = domain.SavedPost(row)
	}
	return result, nil
}

// DeleteSavedPostsByUser removes all saved posts of userID.
func (r *Repo) DeleteSavedPostsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM saved_posts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, postgres.MapError(err, "saved posts of user", userID)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Reconciliation
// ---------------------------------------------------------------------------

// FindDrift returns events whose stored counters disagree with their join
// rows. Callers run it in a snapshot so both counts come from one view.
func (r *Repo) FindDrift(ctx context.Context, limit int) ([]domain.CounterDrift, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []driftRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT e.id, e.like_count, e.save_count,
		        COALESCE(l.n, 0) AS actual_likes,
		        COALESCE(s.n, 0) AS actual_saves
		 FROM events e
		 LEFT JOIN (SELECT event_id, count(*) AS n FROM liked_events
		            WHERE event_id IS NOT NULL GROUP BY event_id) l ON l.event_id = e.id
		 LEFT JOIN (SELECT event_id, count(*) AS n FROM saved_events
		            WHERE event_id IS NOT NULL GROUP BY event_id) s ON s.event_id = e.id
		 WHERE e.like_count <> COALESCE(l.n, 0) OR e.save_count <> COALESCE(s.n, 0)
		 ORDER BY e.id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, postgres.MapError(err, "counter drift", "scan")
	}

	result := make([]domain.CounterDrift, len(rows))
	for i, row := range rows {
		result[i] = domain.CounterDrift(row)
	}
	return result, nil
}

// Recount locks the event row, recounts its join rows and writes the counts
// when they differ. Must run inside a transaction. The returned drift holds
// the values before and after.
func (r *Repo) Recount(ctx context.Context, eventID uuid.UUID) (domain.CounterDrift, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	d := domain.CounterDrift{EventID: eventID}

	err := q.QueryRow(ctx,
		`SELECT like_count, save_count FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&d.StoredLikes, &d.StoredSaves)
	if err != nil {
		return d, postgres.MapError(err, "event", eventID)
	}

	// Counted after the lock is held so toggles committed meanwhile are included.
	err = q.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM liked_events WHERE event_id = $1),
		        (SELECT count(*) FROM saved_events WHERE event_id = $1)`, eventID,
	).Scan(&d.ActualLikes, &d.ActualSaves)
	if err != nil {
		return d, postgres.MapError(err, "event", eventID)
	}

	if d.ActualLikes == d.StoredLikes && d.ActualSaves == d.StoredSaves {
		return d, nil
	}

	if _, err := q.Exec(ctx,
		`UPDATE events SET like_count = $2, save_count = $3 WHERE id = $1`,
		eventID, d.ActualLikes, d.ActualSaves,
	); err != nil {
		return d, postgres.MapError(err, "event", eventID)
	}
	return d, nil
}

// ListExternalTargets pages through distinct external target ids referenced
// by liked or saved rows, ordered by id and starting after afterID.
func (r *Repo) ListExternalTargets(ctx context.Context, afterID string, limit int) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ids []string
	err := pgxscan.Select(ctx, q, &ids,
		`SELECT target_id FROM liked_events WHERE is_external AND target_id > $1
		 UNION
		 SELECT target_id FROM saved_events WHERE is_external AND target_id > $1
		 ORDER BY target_id
		 LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, postgres.MapError(err, "external targets", afterID)
	}
	return ids, nil
}

// DeleteExternalTarget removes all liked and saved rows referencing an
// external target. External targets have no counters.
func (r *Repo) DeleteExternalTarget(ctx context.Context, targetID string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var removed int64
	err := q.QueryRow(ctx,
		`WITH l AS (DELETE FROM liked_events WHERE is_external AND target_id = $1 RETURNING 1),
		      s AS (DELETE FROM saved_events WHERE is_external AND target_id = $1 RETURNING 1)
		 SELECT (SELECT count(*) FROM l) + (SELECT count(*) FROM s)`,
		targetID,
	).Scan(&removed)
	if err != nil {
		return 0, postgres.MapError(err, "external target", targetID)
	}
	return removed, nil
}

// ListSavedPostIDs pages through distinct saved post ids after afterID.
func (r *Repo) ListSavedPostIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ids []string
	err := pgxscan.Select(ctx, q, &ids,
		`SELECT DISTINCT post_id FROM saved_posts WHERE post_id > $1 ORDER BY post_id LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, postgres.MapError(err, "saved posts", afterID)
	}
	return ids, nil
}

// DeleteSavedPostsByPost removes every saved_posts row pointing at postID.
func (r *Repo) DeleteSavedPostsByPost(ctx context.Context, postID string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM saved_posts WHERE post_id = $1`, postID)
	if err != nil {
		return 0, postgres.MapError(err, "saved post", postID)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row types
// ---------------------------------------------------------------------------

type engagementRow struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	TargetID   string     `db:"target_id"`
	IsExternal bool       `db:"is_external"`
	EventID    *uuid.UUID `db:"event_id"`
	CreatedAt  time.Time  `db:"created_at"`
}

type savedPostRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	PostID    string    `db:"post_id"`
	CreatedAt time.Time `db:"created_at"`
}

type driftRow struct {
	EventID     uuid.UUID `db:"id"`
	StoredLikes int       `db:"like_count"`
	ActualLikes int       `db:"actual_likes"`
	StoredSaves int       `db:"save_count"`
	ActualSaves int       `db:"actual_saves"`
}

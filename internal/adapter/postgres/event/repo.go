// Package event implements the Event repository using PostgreSQL.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const eventColumns = `id, creator_id, name, description, category, location, latitude, longitude,
	start_date, end_date, capacity, is_public, tags, status, like_count, save_count, created_at, updated_at`

// Repo provides event persistence backed by PostgreSQL. Like and save
// counters are read here but written only by the engagement repository.
type Repo struct {
	pool postgres.Querier
}

// New creates a new event repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new event and returns the persisted row.
func (r *Repo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	lat, lng := coordinates(e.Coordinates)

	return r.getOne(ctx, e.ID,
		`INSERT INTO events (id, creator_id, name, description, category, location, latitude, longitude,
		                     start_date, end_date, capacity, is_public, tags, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING `+eventColumns,
		e.ID, e.CreatorID, e.Name, e.Description, e.Category, e.Location, lat, lng,
		e.StartDate, e.EndDate, e.Capacity, e.IsPublic, tagsOrEmpty(e.Tags), string(e.Status),
		e.CreatedAt, e.UpdatedAt,
	)
}

// GetByID returns an event by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.getOne(ctx, id, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

// GetForUpdate returns an event and locks its row until the surrounding
// transaction ends. Registrations and status changes serialize on this lock.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.getOne(ctx, id, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

// Update writes the descriptive fields of e. Status and counters are untouched.
func (r *Repo) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	lat, lng := coordinates(e.Coordinates)

	return r.getOne(ctx, e.ID,
		`UPDATE events
		 SET name = $2, description = $3, category = $4, location = $5, latitude = $6, longitude = $7,
		     start_date = $8, end_date = $9, capacity = $10, is_public = $11, tags = $12
		 WHERE id = $1
		 RETURNING `+eventColumns,
		e.ID, e.Name, e.Description, e.Category, e.Location, lat, lng,
		e.StartDate, e.EndDate, e.Capacity, e.IsPublic, tagsOrEmpty(e.Tags),
	)
}

// UpdateStatus sets the lifecycle status and returns the updated event.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error) {
	return r.getOne(ctx, id,
		`UPDATE events SET status = $2 WHERE id = $1 RETURNING `+eventColumns,
		id, string(status),
	)
}

// Delete removes an event. Engagement and notification rows cascade; a
// remaining participation row fails with domain.ErrConflict.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListElapsedActive returns ids of ACTIVE events whose end date is at or
// before now, oldest first.
func (r *Repo) ListElapsedActive(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ids []uuid.UUID
	err := pgxscan.Select(ctx, q, &ids,
		`SELECT id FROM events WHERE status = 'ACTIVE' AND end_date <= $1 ORDER BY end_date LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, postgres.MapError(err, "event", "elapsed")
	}
	return ids, nil
}

// List returns events matching the filter ordered by start date.
func (r *Repo) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	limit, offset := normalizePage(f.Limit, f.Offset)

	qb := postgres.Builder().
		Select(eventColumns).
		From("events").
		OrderBy("start_date ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if f.Status != nil {
		qb = qb.Where(squirrel.Eq{"status": string(*f.Status)})
	}
	if f.Category != nil {
		qb = qb.Where(squirrel.Eq{"category": *f.Category})
	}
	if f.Tag != nil {
		qb = qb.Where("tags @> ?", []string{domain.NormalizeText(*f.Tag)})
	}
	if f.CreatorID != nil {
		qb = qb.Where(squirrel.Eq{"creator_id": *f.CreatorID})
	}
	if f.StartsAfter != nil {
		qb = qb.Where(squirrel.GtOrEq{"start_date": *f.StartsAfter})
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event list query: %w", err)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", "list")
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = row.toDomain()
	}
	return events, nil
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, sql string, args ...any) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	e := row.toDomain()
	return &e, nil
}

// ---------------------------------------------------------------------------
// Paging
// ---------------------------------------------------------------------------

const (
	defaultLimit = 50
	maxLimit     = 200
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type eventRow struct {
	ID          uuid.UUID  `db:"id"`
	CreatorID   *uuid.UUID `db:"creator_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Category    string     `db:"category"`
	Location    string     `db:"location"`
	Latitude    *float64   `db:"latitude"`
	Longitude   *float64   `db:"longitude"`
	StartDate   time.Time  `db:"start_date"`
	EndDate     time.Time  `db:"end_date"`
	Capacity    *int       `db:"capacity"`
	IsPublic    bool       `db:"is_public"`
	Tags        []string   `db:"tags"`
	Status      string     `db:"status"`
	LikeCount   int        `db:"like_count"`
	SaveCount   int        `db:"save_count"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (row eventRow) toDomain() domain.Event {
	e := domain.Event{
		ID:          row.ID,
		CreatorID:   row.CreatorID,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Location:    row.Location,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Capacity:    row.Capacity,
		IsPublic:    row.IsPublic,
		Tags:        tagsOrEmpty(row.Tags),
		Status:      domain.EventStatus(row.Status),
		LikeCount:   row.LikeCount,
		SaveCount:   row.SaveCount,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.Latitude != nil && row.Longitude != nil {
		e.Coordinates = &domain.Coordinates{Latitude: *row.Latitude, Longitude: *row.Longitude}
	}
	return e
}

func coordinates(c *domain.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Latitude, &c.Longitude
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

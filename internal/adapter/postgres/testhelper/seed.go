package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an ACTIVE user with the given role and a matching role
// profile with placeholder attributes. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehol",
		FirstName:    "Test",
		LastName:     "User " + suffix,
		Role:         role,
		Status:       domain.AccountStatusActive,
		LoginHistory: []time.Time{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		string(user.Role), string(user.Status), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	var profileSQL string
	var args []any
	switch role {
	case domain.RoleStudent:
		profileSQL = `INSERT INTO student_profiles (user_id, university, specialization) VALUES ($1, $2, $3)`
		args = []any{user.ID, "Test University", "Computer Science"}
	case domain.RoleUniversity:
		profileSQL = `INSERT INTO university_profiles (user_id, institution_name) VALUES ($1, $2)`
		args = []any{user.ID, "Institution " + suffix}
	case domain.RoleCompany:
		profileSQL = `INSERT INTO company_profiles (user_id, company_name, industry) VALUES ($1, $2, $3)`
		args = []any{user.ID, "Company " + suffix, "Software"}
	case domain.RoleAdmin:
		profileSQL = `INSERT INTO admin_profiles (user_id) VALUES ($1)`
		args = []any{user.ID}
	default:
		t.Fatalf("testhelper: SeedUser unknown role %q", role)
	}

	if _, err := pool.Exec(ctx, profileSQL, args...); err != nil {
		t.Fatalf("testhelper: SeedUser insert %s profile: %v", role, err)
	}

	return user
}

// EventOption customizes a seeded event.
type EventOption func(e *domain.Event)

// WithCapacity sets the event capacity.
func WithCapacity(n int) EventOption {
	return func(e *domain.Event) { e.Capacity = &n }
}

// WithStatus sets the event status.
func WithStatus(s domain.EventStatus) EventOption {
	return func(e *domain.Event) { e.Status = s }
}

// WithDates sets the event start and end dates.
func WithDates(start, end time.Time) EventOption {
	return func(e *domain.Event) {
		e.StartDate = start
		e.EndDate = end
	}
}

// WithCounters sets the stored like and save counters without creating join rows.
func WithCounters(likes, saves int) EventOption {
	return func(e *domain.Event) {
		e.LikeCount = likes
		e.SaveCount = saves
	}
}

// SeedEvent creates a PENDING, unbounded event starting in a week unless
// options say otherwise.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, creatorID uuid.UUID, opts ...EventOption) domain.Event {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	event := domain.Event{
		ID:          uuid.New(),
		CreatorID:   &creatorID,
		Name:        "Event " + uniqueSuffix(),
		Description: "seeded",
		Category:    "general",
		Location:    "Main Hall",
		StartDate:   now.Add(7 * 24 * time.Hour),
		EndDate:     now.Add(7*24*time.Hour + 3*time.Hour),
		IsPublic:    true,
		Tags:        []string{},
		Status:      domain.EventStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&event)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO events (id, creator_id, name, description, category, location, start_date, end_date,
		                     capacity, is_public, tags, status, like_count, save_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		event.ID, event.CreatorID, event.Name, event.Description, event.Category, event.Location,
		event.StartDate, event.EndDate, event.Capacity, event.IsPublic, event.Tags, string(event.Status),
		event.LikeCount, event.SaveCount, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert: %v", err)
	}

	return event
}

// SeedRegistration creates a participation row with the given registration status.
func SeedRegistration(t *testing.T, pool *pgxpool.Pool, userID, eventID uuid.UUID, status domain.RegistrationStatus) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO event_participations (user_id, event_id, registration_status, registered_at)
		 VALUES ($1, $2, $3, now())`,
		userID, eventID, string(status),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRegistration insert: %v", err)
	}
}

// SeedLike inserts a liked_events row without touching the event counter.
func SeedLike(t *testing.T, pool *pgxpool.Pool, userID, eventID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO liked_events (user_id, target_id, is_external, event_id) VALUES ($1, $2, false, $3)`,
		userID, eventID.String(), eventID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLike insert: %v", err)
	}
}

// SeedExternalLike inserts a liked_events row pointing at a document-store target.
func SeedExternalLike(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, targetID string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO liked_events (user_id, target_id, is_external) VALUES ($1, $2, true)`,
		userID, targetID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExternalLike insert: %v", err)
	}
}

// Package user implements the User and role-profile repository using PostgreSQL.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const emailUniqueIndex = "users_email_key"

const userColumns = `id, email, password_hash, first_name, last_name, role, status, login_history, created_at, updated_at`

// Repo provides user and role-profile persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new user repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// User operations
// ---------------------------------------------------------------------------

// Create inserts a new user and returns the persisted domain.User. The email
// must already be normalized; a taken email fails with domain.ErrDuplicateEmail.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row userRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		string(u.Role), string(u.Status), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, emailUniqueIndex) {
			return nil, fmt.Errorf("user %s: %w", u.Email, domain.ErrDuplicateEmail)
		}
		return nil, postgres.MapError(err, "user", u.ID)
	}

	result := row.toDomain()
	return &result, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, id, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByIDForUpdate returns a user by primary key and locks the row until the
// surrounding transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, id, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

// GetByEmail returns a user by normalized email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, email, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *Repo) getOne(ctx context.Context, key any, sql string, args ...any) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}

	u := row.toDomain()
	return &u, nil
}

// UpdateStatus sets the account status and returns the updated user.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (*domain.User, error) {
	return r.getOne(ctx, id,
		`UPDATE users SET status = $2 WHERE id = $1 RETURNING `+userColumns,
		id, string(status),
	)
}

// AppendLogin appends a login timestamp to the user's history. Earlier
// entries are never rewritten.
func (r *Repo) AppendLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE users SET login_history = array_append(login_history, $2) WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Role profiles
// ---------------------------------------------------------------------------

// CreateProfile inserts the role profile into the table matching its role.
// The composite key (user_id, role) rejects a profile whose role disagrees
// with the user row.
func (r *Repo) CreateProfile(ctx context.Context, p domain.RoleProfile) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		sql  string
		args []any
	)
	switch v := p.(type) {
	case domain.StudentProfile:
		sql = `INSERT INTO student_profiles (user_id, university, specialization, graduation_year, student_number)
		       VALUES ($1, $2, $3, $4, $5)`
		args = []any{v.UserID, v.University, v.Specialization, v.GraduationYear, v.StudentNumber}
	case domain.UniversityProfile:
		sql = `INSERT INTO university_profiles (user_id, institution_name, website, country)
		       VALUES ($1, $2, $3, $4)`
		args = []any{v.UserID, v.InstitutionName, v.Website, v.Country}
	case domain.CompanyProfile:
		sql = `INSERT INTO company_profiles (user_id, company_name, industry, website, size)
		       VALUES ($1, $2, $3, $4, $5)`
		args = []any{v.UserID, v.CompanyName, v.Industry, v.Website, v.Size}
	case domain.AdminProfile:
		perms := v.Permissions
		if perms == nil {
			perms = []string{}
		}
		sql = `INSERT INTO admin_profiles (user_id, department, permissions) VALUES ($1, $2, $3)`
		args = []any{v.UserID, v.Department, perms}
	default:
		return fmt.Errorf("role profile %T: %w", p, domain.ErrInvalidRoleAttributes)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		err = postgres.MapError(err, p.Role().String()+" profile", p.OwnerID())
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidRoleAttributes, err)
		}
		return err
	}
	return nil
}

// GetProfile loads the role profile of userID from the table selected by role.
func (r *Repo) GetProfile(ctx context.Context, userID uuid.UUID, role domain.Role) (domain.RoleProfile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	entity := role.String() + " profile"

	switch role {
	case domain.RoleStudent:
		var row studentRow
		err := pgxscan.Get(ctx, q, &row,
			`SELECT user_id, university, specialization, graduation_year, student_number
			 FROM student_profiles WHERE user_id = $1`, userID)
		if err != nil {
			return nil, postgres.MapError(err, entity, userID)
		}
		return domain.StudentProfile(row), nil
	case domain.RoleUniversity:
		var row universityRow
		err := pgxscan.Get(ctx, q, &row,
			`SELECT user_id, institution_name, website, country
			 FROM university_profiles WHERE user_id = $1`, userID)
		if err != nil {
			return nil, postgres.MapError(err, entity, userID)
		}
		return domain.UniversityProfile(row), nil
	case domain.RoleCompany:
		var row companyRow
		err := pgxscan.Get(ctx, q, &row,
			`SELECT user_id, company_name, industry, website, size
			 FROM company_profiles WHERE user_id = $1`, userID)
		if err != nil {
			return nil, postgres.MapError(err, entity, userID)
		}
		return domain.CompanyProfile(row), nil
	case domain.RoleAdmin:
		var row adminRow
		err := pgxscan.Get(ctx, q, &row,
			`SELECT user_id, department, permissions FROM admin_profiles WHERE user_id = $1`, userID)
		if err != nil {
			return nil, postgres.MapError(err, entity, userID)
		}
		return domain.AdminProfile(row), nil
	}
	return nil, fmt.Errorf("user %s: unknown role %q: %w", userID, role, domain.ErrValidation)
}

// CountProfiles returns how many role-profile rows exist for userID across
// all four profile tables.
func (r *Repo) CountProfiles(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	err := q.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM student_profiles WHERE user_id = $1)
		      + (SELECT count(*) FROM university_profiles WHERE user_id = $1)
		      + (SELECT count(*) FROM company_profiles WHERE user_id = $1)
		      + (SELECT count(*) FROM admin_profiles WHERE user_id = $1)`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "user", userID)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Row types
// ---------------------------------------------------------------------------

type userRow struct {
	ID           uuid.UUID   `db:"id"`
	Email        string      `db:"email"`
	PasswordHash string      `db:"password_hash"`
	FirstName    string      `db:"first_name"`
	LastName     string      `db:"last_name"`
	Role         string      `db:"role"`
	Status       string      `db:"status"`
	LoginHistory []time.Time `db:"login_history"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func (row userRow) toDomain() domain.User {
	history := row.LoginHistory
	if history == nil {
		history = []time.Time{}
	}
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Role:         domain.Role(row.Role),
		Status:       domain.AccountStatus(row.Status),
		LoginHistory: history,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// Profile rows share the field layout of their domain types so they convert directly.

type studentRow struct {
	UserID         uuid.UUID `db:"user_id"`
	University     string    `db:"university"`
	Specialization string    `db:"specialization"`
	GraduationYear *int      `db:"graduation_year"`
	StudentNumber  *string   `db:"student_number"`
}

type universityRow struct {
	UserID          uuid.UUID `db:"user_id"`
	InstitutionName string    `db:"institution_name"`
	Website         *string   `db:"website"`
	Country         *string   `db:"country"`
}

type companyRow struct {
	UserID      uuid.UUID `db:"user_id"`
	CompanyName string    `db:"company_name"`
	Industry    string    `db:"industry"`
	Website     *string   `db:"website"`
	Size        *string   `db:"size"`
}

type adminRow struct {
	UserID      uuid.UUID `db:"user_id"`
	Department  *string   `db:"department"`
	Permissions []string  `db:"permissions"`
}

// Package identity manages user accounts and their role profiles.
package identity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (*domain.User, error)
	AppendLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateProfile(ctx context.Context, p domain.RoleProfile) error
	GetProfile(ctx context.Context, userID uuid.UUID, role domain.Role) (domain.RoleProfile, error)
}

type participationRepo interface {
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type engagementRepo interface {
	DeleteByUser(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID) (int64, error)
	DeleteSavedPostsByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepo interface {
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides account operations.
type Service struct {
	users          userRepo
	participations participationRepo
	engagement     engagementRepo
	notifications  notificationRepo
	tx             txManager
	cfg            config.IdentityConfig
	log            *slog.Logger
	now            func() time.Time
}

// NewService creates a new identity service.
func NewService(
	log *slog.Logger,
	users userRepo,
	participations participationRepo,
	engagement engagementRepo,
	notifications notificationRepo,
	tx txManager,
	cfg config.IdentityConfig,
) *Service {
	return &Service{
		users:          users,
		participations: participations,
		engagement:     engagement,
		notifications:  notifications,
		tx:             tx,
		cfg:            cfg,
		log:            log.With("service", "identity"),
		now:            time.Now,
	}
}

// ActivityRemoval counts the rows dropped when an account is disabled.
type ActivityRemoval struct {
	Participations int64
	Likes          int64
	Saves          int64
	SavedPosts     int64
	Notifications  int64
}

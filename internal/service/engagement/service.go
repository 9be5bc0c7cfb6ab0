// Package engagement maintains likes and saves on events and posts together
// with the denormalized event counters, and reconciles both against their
// join rows and the document store.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

type engagementRepo interface {
	Insert(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, target domain.TargetRef) (bool, error)
	Delete(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, targetID string) (bool, error)
	ListByUser(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, limit, offset int) ([]domain.EventEngagement, error)
	AdjustCounter(ctx context.Context, kind domain.EngagementKind, eventID uuid.UUID, delta int) (int, error)
	InsertSavedPost(ctx context.Context, userID uuid.UUID, postID string) (bool, error)
	DeleteSavedPost(ctx context.Context, userID uuid.UUID, postID string) (bool, error)
	ListSavedPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedPost, error)
	FindDrift(ctx context.Context, limit int) ([]domain.CounterDrift, error)
	Recount(ctx context.Context, eventID uuid.UUID) (domain.CounterDrift, error)
	ListExternalTargets(ctx context.Context, afterID string, limit int) ([]string, error)
	DeleteExternalTarget(ctx context.Context, targetID string) (int64, error)
	ListSavedPostIDs(ctx context.Context, afterID string, limit int) ([]string, error)
	DeleteSavedPostsByPost(ctx context.Context, postID string) (int64, error)
}

type eventRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

type documentStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetSummary(ctx context.Context, id string) (*domain.DocumentSummary, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxTargetLength = 128
	driftBatchSize  = 500
)

// Service provides engagement operations.
type Service struct {
	engagement engagementRepo
	events     eventRepo
	external   documentStore
	posts      documentStore
	tx         txManager
	cfg        config.EngagementConfig
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new engagement service. external resolves external
// event targets and posts resolves saved posts.
func NewService(
	log *slog.Logger,
	engagement engagementRepo,
	events eventRepo,
	external documentStore,
	posts documentStore,
	tx txManager,
	cfg config.EngagementConfig,
) *Service {
	return &Service{
		engagement: engagement,
		events:     events,
		external:   external,
		posts:      posts,
		tx:         tx,
		cfg:        cfg,
		log:        log.With("service", "engagement"),
		now:        time.Now,
	}
}

// checkExists asks store whether id exists, bounded by the configured
// timeout. Missing documents fail with domain.ErrTargetNotFound and timeouts
// with domain.ErrExternalCheckTimeout.
func (s *Service) checkExists(ctx context.Context, store documentStore, id string) error {
	if s.cfg.ExternalCheckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ExternalCheckTimeout)
		defer cancel()
	}

	ok, err := store.Exists(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrExternalDependency) {
			return fmt.Errorf("document %s: %w: %w", id, domain.ErrExternalCheckTimeout, err)
		}
		return fmt.Errorf("document %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrTargetNotFound)
	}
	return nil
}

// summary loads display metadata for id. Missing documents and document
// store outages yield nil so listings degrade instead of failing.
func (s *Service) summary(ctx context.Context, store documentStore, id string) (*domain.DocumentSummary, error) {
	if s.cfg.ExternalCheckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ExternalCheckTimeout)
		defer cancel()
	}

	sum, err := store.GetSummary(ctx, id)
	switch {
	case err == nil:
		return sum, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case errors.Is(err, domain.ErrExternalDependency), errors.Is(err, context.DeadlineExceeded):
		s.log.WarnContext(ctx, "document summary unavailable",
			slog.String("target_id", id),
			slog.String("error", err.Error()),
		)
		return nil, nil
	default:
		return nil, err
	}
}

func normalizePage(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, domain.NewValidationError("page", "limit and offset must not be negative")
	}
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return limit, offset, nil
}

package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// SetAccountStatus moves the account to status. Setting the current status is
// a no-op. Entering SUSPENDED or DELETED removes the user's participations,
// likes, saves and notifications in the same transaction; events the user
// created are kept.
func (s *Service) SetAccountStatus(ctx context.Context, userID uuid.UUID, status domain.AccountStatus) (*domain.User, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown account status")
	}

	var (
		user    *domain.User
		removed ActivityRemoval
		changed bool
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.users.GetByIDForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if current.Status == status {
			user = current
			return nil
		}
		if !current.Status.CanTransitionTo(status) {
			return domain.NewTransitionError("account", current.Status.String(), status.String())
		}

		user, err = s.users.UpdateStatus(txCtx, userID, status)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		changed = true

		if status.RemovesActivity() {
			removed, err = s.removeActivity(txCtx, userID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.InfoContext(ctx, "account status changed",
			slog.String("user_id", userID.String()),
			slog.String("status", status.String()),
			slog.Int64("participations_removed", removed.Participations),
			slog.Int64("likes_removed", removed.Likes),
			slog.Int64("saves_removed", removed.Saves),
			slog.Int64("saved_posts_removed", removed.SavedPosts),
			slog.Int64("notifications_removed", removed.Notifications),
		)
	}

	return user, nil
}

// removeActivity must run inside the status transaction so event counters
// are decremented together with the join rows.
func (s *Service) removeActivity(ctx context.Context, userID uuid.UUID) (ActivityRemoval, error) {
	var (
		r   ActivityRemoval
		err error
	)

	if r.Participations, err = s.participations.DeleteByUser(ctx, userID); err != nil {
		return r, fmt.Errorf("delete participations: %w", err)
	}
	if r.Likes, err = s.engagement.DeleteByUser(ctx, domain.EngagementLike, userID); err != nil {
		return r, fmt.Errorf("delete likes: %w", err)
	}
	if r.Saves, err = s.engagement.DeleteByUser(ctx, domain.EngagementSave, userID); err != nil {
		return r, fmt.Errorf("delete saves: %w", err)
	}
	if r.SavedPosts, err = s.engagement.DeleteSavedPostsByUser(ctx, userID); err != nil {
		return r, fmt.Errorf("delete saved posts: %w", err)
	}
	if r.Notifications, err = s.notifications.DeleteByUser(ctx, userID); err != nil {
		return r, fmt.Errorf("delete notifications: %w", err)
	}
	return r, nil
}

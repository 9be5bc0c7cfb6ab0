package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// LikeEvent adds a like from userID to target. Liking twice is a no-op.
func (s *Service) LikeEvent(ctx context.Context, userID uuid.UUID, target domain.TargetRef) (domain.ToggleResult, error) {
	return s.toggle(ctx, domain.EngagementLike, userID, target, true)
}

// UnlikeEvent removes the like of userID from target. Unliking twice is a no-op.
func (s *Service) UnlikeEvent(ctx context.Context, userID uuid.UUID, target domain.TargetRef) (domain.ToggleResult, error) {
	return s.toggle(ctx, domain.EngagementLike, userID, target, false)
}

// SaveEvent bookmarks target for userID. Saving twice is a no-op.
func (s *Service) SaveEvent(ctx context.Context, userID uuid.UUID, target domain.TargetRef) (domain.ToggleResult, error) {
	return s.toggle(ctx, domain.EngagementSave, userID, target, true)
}

// UnsaveEvent removes the bookmark of userID on target. Unsaving twice is a no-op.
func (s *Service) UnsaveEvent(ctx context.Context, userID uuid.UUID, target domain.TargetRef) (domain.ToggleResult, error) {
	return s.toggle(ctx, domain.EngagementSave, userID, target, false)
}

// toggle adds or removes one join row and moves the event counter by one in
// the same transaction when the row actually changed.
func (s *Service) toggle(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, target domain.TargetRef, add bool) (domain.ToggleResult, error) {
	op := "engagement." + strings.ToLower(kind.String())
	if !add {
		op = "engagement.un" + strings.ToLower(kind.String())
	}

	if err := target.Validate(); err != nil {
		return domain.ToggleResult{}, err
	}

	// Step 1: Confirm external targets outside the transaction
	if add && target.IsExternal() {
		if err := s.checkExists(ctx, s.external, target.ID); err != nil {
			return domain.ToggleResult{}, fmt.Errorf("%s check target: %w", op, err)
		}
	}

	// Step 2: Mutate join row and counter together
	var result domain.ToggleResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var event *domain.Event
		if !target.IsExternal() {
			e, err := s.events.GetByID(txCtx, target.EventID)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("event %s: %w", target.EventID, domain.ErrTargetNotFound)
			}
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			event = e
		}

		var (
			changed bool
			err     error
		)
		if add {
			changed, err = s.engagement.Insert(txCtx, kind, userID, target)
		} else {
			changed, err = s.engagement.Delete(txCtx, kind, userID, target.ID)
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			changed, err = false, nil
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", kind, err)
		}
		result.Changed = changed

		if event == nil {
			return nil
		}
		if !changed {
			count := event.LikeCount
			if kind == domain.EngagementSave {
				count = event.SaveCount
			}
			result.Count = &count
			return nil
		}

		delta := 1
		if !add {
			delta = -1
		}
		count, err := s.engagement.AdjustCounter(txCtx, kind, target.EventID, delta)
		if err != nil {
			return fmt.Errorf("adjust counter: %w", err)
		}
		result.Count = &count
		return nil
	})
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if result.Changed {
		s.log.InfoContext(ctx, "engagement toggled",
			slog.String("kind", kind.String()),
			slog.Bool("added", add),
			slog.String("user_id", userID.String()),
			slog.String("target_id", target.ID),
			slog.Bool("external", target.IsExternal()),
		)
	}
	return result, nil
}

// SavePost bookmarks a document-store post for userID. Reports false when
// the post was already saved.
func (s *Service) SavePost(ctx context.Context, userID uuid.UUID, postID string) (bool, error) {
	postID, err := validPostID(postID)
	if err != nil {
		return false, err
	}
	if err := s.checkExists(ctx, s.posts, postID); err != nil {
		return false, fmt.Errorf("engagement.SavePost check post: %w", err)
	}

	changed, err := s.engagement.InsertSavedPost(ctx, userID, postID)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("engagement.SavePost: %w", err)
	}

	if changed {
		s.log.InfoContext(ctx, "post saved",
			slog.String("user_id", userID.String()),
			slog.String("post_id", postID),
		)
	}
	return changed, nil
}

// UnsavePost removes a saved post. Reports false when it was not saved.
func (s *Service) UnsavePost(ctx context.Context, userID uuid.UUID, postID string) (bool, error) {
	postID, err := validPostID(postID)
	if err != nil {
		return false, err
	}

	changed, err := s.engagement.DeleteSavedPost(ctx, userID, postID)
	if err != nil {
		return false, fmt.Errorf("engagement.UnsavePost: %w", err)
	}
	return changed, nil
}

func validPostID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.NewValidationError("post_id", "required")
	}
	if len(id) > maxTargetLength {
		return "", domain.NewValidationError("post_id", "max 128 characters")
	}
	return id, nil
}

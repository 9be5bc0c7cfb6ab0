package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// EngagedEvent is a liked or saved target with what is known about it.
// Event is set for internal targets, Summary for external ones. Both stay nil
// when the target has disappeared.
type EngagedEvent struct {
	domain.EventEngagement
	Event   *domain.Event
	Summary *domain.DocumentSummary
}

// SavedPostView is a saved post with its document-store summary.
type SavedPostView struct {
	domain.SavedPost
	Summary *domain.DocumentSummary
}

// ListLikedEvents returns the events userID liked, newest first.
func (s *Service) ListLikedEvents(ctx context.Context, userID uuid.UUID, limit, offset int) ([]EngagedEvent, error) {
	return s.listEngaged(ctx, domain.EngagementLike, userID, limit, offset)
}

// ListSavedEvents returns the events userID saved, newest first.
func (s *Service) ListSavedEvents(ctx context.Context, userID uuid.UUID, limit, offset int) ([]EngagedEvent, error) {
	return s.listEngaged(ctx, domain.EngagementSave, userID, limit, offset)
}

func (s *Service) listEngaged(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, limit, offset int) ([]EngagedEvent, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}

	rows, err := s.engagement.ListByUser(ctx, kind, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("engagement.list %s: %w", kind, err)
	}

	result := make([]EngagedEvent, len(rows))
	for i, row := range rows {
		result[i].EventEngagement = row

		if !row.IsExternal {
			if row.EventID == nil {
				continue
			}
			e, err := s.events.GetByID(ctx, *row.EventID)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("engagement.list %s get event: %w", kind, err)
			}
			result[i].Event = e
			continue
		}

		result[i].Summary, err = s.summary(ctx, s.external, row.TargetID)
		if err != nil {
			return nil, fmt.Errorf("engagement.list %s summary: %w", kind, err)
		}
	}
	return result, nil
}

// ListSavedPosts returns the posts userID saved, newest first.
func (s *Service) ListSavedPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SavedPostView, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}

	rows, err := s.engagement.ListSavedPosts(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("engagement.ListSavedPosts: %w", err)
	}

	result := make([]SavedPostView, len(rows))
	for i, row := range rows {
		result[i].SavedPost = row
		result[i].Summary, err = s.summary(ctx, s.posts, row.PostID)
		if err != nil {
			return nil, fmt.Errorf("engagement.ListSavedPosts summary: %w", err)
		}
	}
	return result, nil
}

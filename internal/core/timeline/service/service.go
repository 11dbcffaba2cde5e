package timelineapp

import (
	"context"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"
	"inkwell/internal/core/post"
	"inkwell/internal/core/projection"
	postPort "inkwell/internal/ports/post"
	timelinePort "inkwell/internal/ports/timeline"

	"go.uber.org/zap"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type TimelineService struct {
	TimelineStore  timelinePort.TimelineStore
	PostRepository postPort.PostRepository
	Projector      *projection.Projector
}

func NewTimelineService(store timelinePort.TimelineStore, postRepo postPort.PostRepository, projector *projection.Projector) *TimelineService {
	return &TimelineService{
		TimelineStore:  store,
		PostRepository: postRepo,
		Projector:      projector,
	}
}

// GetTimeline returns posts from followed authors, newest first. Ids whose post is gone or
// no longer published are dropped from the stored timeline.
func (s *TimelineService) GetTimeline(ctx context.Context, userID string, start, limit int64) ([]*postPort.PostDTO, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if start < 0 {
		start = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	ids, err := s.TimelineStore.Range(ctx, userID, start, start+limit-1)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "read timeline", err)
	}
	if len(ids) == 0 {
		return []*postPort.PostDTO{}, nil
	}

	found, err := s.PostRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*post.Post, len(found))
	for _, p := range found {
		byID[p.ID.String()] = p
	}

	posts := make([]*post.Post, 0, len(ids))
	var stale []string
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || p.Status != post.StatusPublished {
			stale = append(stale, id)
			continue
		}
		posts = append(posts, p)
	}

	if len(stale) > 0 {
		if err := s.TimelineStore.Remove(ctx, userID, stale...); err != nil {
			config.Logger.Warn("Could not prune timeline", zap.String("userID", userID), zap.Error(err))
		}
	}

	return s.Projector.Posts(ctx, posts, userID)
}

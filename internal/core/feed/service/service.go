package feedapp

import (
	"context"

	"inkwell/internal/core/feed"
	"inkwell/internal/core/projection"
	feedPort "inkwell/internal/ports/feed"
)

type FeedService struct {
	FeedRepository feedPort.FeedRepository
	Projector      *projection.Projector
}

func NewFeedService(repo feedPort.FeedRepository, projector *projection.Projector) *FeedService {
	return &FeedService{FeedRepository: repo, Projector: projector}
}

// ListPosts returns one page of the feed projected for q.ViewerID.
func (s *FeedService) ListPosts(ctx context.Context, q feed.Query) (*feedPort.PageDTO, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	posts, meta, err := s.FeedRepository.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	items, err := s.Projector.Posts(ctx, posts, q.ViewerID)
	if err != nil {
		return nil, err
	}
	return &feedPort.PageDTO{Items: items, Meta: meta}, nil
}

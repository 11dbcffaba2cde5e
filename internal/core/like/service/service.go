package likeapp

import (
	"context"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"
	likeEntity "inkwell/internal/core/like"
	commentPort "inkwell/internal/ports/comment"
	"inkwell/internal/ports/events"
	likePort "inkwell/internal/ports/like"
	postPort "inkwell/internal/ports/post"

	"go.uber.org/zap"
)

type LikeService struct {
	LikeRepository    likePort.LikeRepository
	PostRepository    postPort.PostRepository
	CommentRepository commentPort.CommentRepository
	Events            events.Publisher
}

func NewLikeService(
	likeRepo likePort.LikeRepository,
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	publisher events.Publisher,
) *LikeService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &LikeService{
		LikeRepository:    likeRepo,
		PostRepository:    postRepo,
		CommentRepository: commentRepo,
		Events:            publisher,
	}
}

// ToggleLike flips the actor's like on target. Toggling twice restores the original state.
func (s *LikeService) ToggleLike(ctx context.Context, actorID string, target likeEntity.Target) (*likePort.ToggleDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if !target.Kind.Valid() {
		return nil, apperr.BadRequest("unknown like target")
	}

	ownerID, err := s.ownerOf(ctx, actorID, target)
	if err != nil {
		return nil, err
	}

	liked, err := s.LikeRepository.Toggle(ctx, actorID, target)
	if err != nil {
		return nil, err
	}
	count, err := s.LikeRepository.Count(ctx, target)
	if err != nil {
		return nil, err
	}

	if liked {
		eventType := events.TypePostLiked
		if target.Kind == likeEntity.TargetComment {
			eventType = events.TypeCommentLiked
		}
		e := events.Event{
			Type:      eventType,
			ActorID:   actorID,
			TargetID:  target.ID,
			OwnerID:   ownerID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Events.Publish(ctx, e); err != nil {
			config.Logger.Warn("Could not publish event", zap.String("type", e.Type), zap.Error(err))
		}
	}

	return &likePort.ToggleDTO{Liked: liked, LikesCount: count}, nil
}

// ownerOf checks the target is visible to the actor and returns its author.
func (s *LikeService) ownerOf(ctx context.Context, actorID string, target likeEntity.Target) (string, error) {
	postID := target.ID
	ownerID := ""
	if target.Kind == likeEntity.TargetComment {
		c, err := s.CommentRepository.FindByID(ctx, target.ID)
		if err != nil {
			return "", err
		}
		postID = c.PostID.String()
		ownerID = c.UserID.String()
	}

	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if !p.VisibleTo(actorID) {
		return "", apperr.NotFound("Post")
	}
	if ownerID == "" {
		ownerID = p.UserID.String()
	}
	return ownerID, nil
}

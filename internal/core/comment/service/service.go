package commentapp

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"
	commentEntity "inkwell/internal/core/comment"
	"inkwell/internal/core/pagination"
	postEntity "inkwell/internal/core/post"
	"inkwell/internal/core/projection"
	commentPort "inkwell/internal/ports/comment"
	"inkwell/internal/ports/events"
	postPort "inkwell/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// CommentService maintains two-level comment threads: roots and their replies.
type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	Projector         *projection.Projector
	Events            events.Publisher
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	projector *projection.Projector,
	publisher events.Publisher,
) *CommentService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		Projector:         projector,
		Events:            publisher,
	}
}

type PageDTO struct {
	Items []*commentPort.CommentDTO `json:"items"`
	pagination.Meta
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.Validation("Validation error", map[string]string{"content": "This field may not be blank."})
	}
	return content, nil
}

// CreateComment adds a root comment to postID, or a reply when parentID is set. A reply
// always belongs to its parent's post.
func (s *CommentService) CreateComment(ctx context.Context, actorID, postID, parentID, content string) (*commentPort.CommentDTO, error) {
	if parentID != "" {
		return s.CreateReply(ctx, actorID, parentID, content)
	}
	return s.CreateRootComment(ctx, actorID, postID, content)
}

func (s *CommentService) CreateRootComment(ctx context.Context, actorID, postID, content string) (*commentPort.CommentDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	p, err := s.visiblePost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, actorID, p, nil, content)
}

// CreateReply fails with MaxDepthReached when the parent is itself a reply; nothing is written.
func (s *CommentService) CreateReply(ctx context.Context, actorID, parentID, content string) (*commentPort.CommentDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	parent, err := s.CommentRepository.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !parent.CanReply() {
		return nil, apperr.ErrMaxDepthReached
	}
	p, err := s.visiblePost(ctx, actorID, parent.PostID.String())
	if err != nil {
		return nil, err
	}
	return s.create(ctx, actorID, p, &parent.ID, content)
}

func (s *CommentService) create(ctx context.Context, actorID string, p *postEntity.Post, parentID *uuid.UUID, content string) (*commentPort.CommentDTO, error) {
	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		PostID:   p.ID,
		UserID:   uuid.FromStringOrNil(actorID),
		ParentID: parentID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.TypeCommentCreated,
		ActorID:   actorID,
		TargetID:  p.ID.String(),
		OwnerID:   p.UserID.String(),
		CreatedAt: time.Now().UTC(),
	})
	return s.GetComment(ctx, actorID, c.ID.String())
}

// ListRootComments pages root comments oldest first, each with its replies.
func (s *CommentService) ListRootComments(ctx context.Context, viewerID, postID string, page pagination.Params) (*PageDTO, error) {
	if _, err := s.visiblePost(ctx, viewerID, postID); err != nil {
		return nil, err
	}
	total, err := s.CommentRepository.CountRoots(ctx, postID)
	if err != nil {
		return nil, err
	}
	meta, offset := pagination.Resolve(page, total)

	roots := []*commentEntity.Comment{}
	if total > 0 {
		if roots, err = s.CommentRepository.ListRoots(ctx, postID, offset, meta.Limit); err != nil {
			return nil, err
		}
	}
	items, err := s.Projector.Comments(ctx, roots, viewerID)
	if err != nil {
		return nil, err
	}
	return &PageDTO{Items: items, Meta: meta}, nil
}

func (s *CommentService) GetComment(ctx context.Context, viewerID, id string) (*commentPort.CommentDTO, error) {
	c, err := s.CommentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.visiblePost(ctx, viewerID, c.PostID.String()); err != nil {
		return nil, apperr.NotFound("Comment")
	}
	return s.Projector.Comment(ctx, c, viewerID)
}

func (s *CommentService) UpdateComment(ctx context.Context, actorID, id, content string) (*commentPort.CommentDTO, error) {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return nil, err
	}
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.CommentRepository.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	return s.GetComment(ctx, actorID, id)
}

// DeleteComment removes the comment with its replies and likes.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, id string) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	return s.CommentRepository.Delete(ctx, id)
}

func (s *CommentService) owned(ctx context.Context, actorID, id string) (*commentEntity.Comment, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	c, err := s.CommentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID.String() != actorID {
		return nil, apperr.ErrForbidden
	}
	return c, nil
}

func (s *CommentService) visiblePost(ctx context.Context, viewerID, postID string) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Post")
	}
	return p, nil
}

func (s *CommentService) publish(ctx context.Context, e events.Event) {
	if err := s.Events.Publish(ctx, e); err != nil {
		config.Logger.Warn("Could not publish event", zap.String("type", e.Type), zap.Error(err))
	}
}

package postapp

import (
	"context"
	"strings"
	"unicode/utf8"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"
	"inkwell/internal/core/fanoutqueue"
	"inkwell/internal/core/media"
	postEntity "inkwell/internal/core/post"
	"inkwell/internal/core/projection"
	categoryPort "inkwell/internal/ports/category"
	commentPort "inkwell/internal/ports/comment"
	fanoutPort "inkwell/internal/ports/fanoutqueue"
	postPort "inkwell/internal/ports/post"
	"inkwell/internal/ports/storage"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const maxTitleLen = 255

type PostService struct {
	PostRepository     postPort.PostRepository
	CategoryRepository categoryPort.CategoryRepository
	CommentRepository  commentPort.CommentRepository
	FanoutRepository   fanoutPort.FanoutRepository
	Projector          *projection.Projector
	ObjectStore        storage.ObjectStore
}

func NewPostService(
	postRepo postPort.PostRepository,
	categoryRepo categoryPort.CategoryRepository,
	commentRepo commentPort.CommentRepository,
	fanoutRepo fanoutPort.FanoutRepository,
	projector *projection.Projector,
	store storage.ObjectStore,
) *PostService {
	return &PostService{
		PostRepository:     postRepo,
		CategoryRepository: categoryRepo,
		CommentRepository:  commentRepo,
		FanoutRepository:   fanoutRepo,
		Projector:          projector,
		ObjectStore:        store,
	}
}

// CreatePost stores a post and, when it is published, queues it for follower timelines.
func (s *PostService) CreatePost(ctx context.Context, actorID string, in postPort.PostInput) (*postPort.PostDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}

	p := &postEntity.Post{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: uuid.FromStringOrNil(actorID),
		Status: postEntity.StatusPublished,
	}
	if in.Title == nil {
		return nil, apperr.Validation("Validation error", map[string]string{"title": "This field is required."})
	}
	fields, err := s.changes(ctx, in)
	if err != nil {
		return nil, err
	}
	apply(p, fields)

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if created.Status == postEntity.StatusPublished {
		s.enqueueFanout(ctx, created)
	}

	return s.project(ctx, created.ID.String(), actorID)
}

// UpdatePost applies the given fields. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, actorID, id string, in postPort.PostInput) (*postPort.PostDTO, error) {
	p, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	fields, err := s.changes(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.PostRepository.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	if p.Status == postEntity.StatusDraft && fields["status"] == postEntity.StatusPublished {
		s.enqueueFanout(ctx, p)
	}

	return s.project(ctx, id, actorID)
}

func (s *PostService) DeletePost(ctx context.Context, actorID, id string) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.PostRepository.Delete(ctx, id); err != nil {
		return err
	}
	config.Logger.Info("Post deleted", zap.String("postID", id), zap.String("userID", actorID))
	return nil
}

// GetPost counts a view and returns the post with its comment threads.
func (s *PostService) GetPost(ctx context.Context, viewerID, id string) (*postPort.PostDetailDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Post")
	}
	if err := s.PostRepository.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	p.ViewCount++

	dto, err := s.Projector.Post(ctx, p, viewerID)
	if err != nil {
		return nil, err
	}
	roots, err := s.CommentRepository.ListRoots(ctx, id, 0, 0)
	if err != nil {
		return nil, err
	}
	comments, err := s.Projector.Comments(ctx, roots, viewerID)
	if err != nil {
		return nil, err
	}
	return &postPort.PostDetailDTO{PostDTO: dto, Comments: comments}, nil
}

func (s *PostService) AttachFeaturedImage(ctx context.Context, actorID, id string, file storage.Upload) (*postPort.PostDTO, error) {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return nil, err
	}
	ext, err := media.ValidateImage(file.ContentType, file.Size)
	if err != nil {
		return nil, err
	}
	url, err := s.ObjectStore.Put(ctx, media.ObjectName("posts", id, ext), file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.PostRepository.Update(ctx, id, map[string]interface{}{"featured_image": url}); err != nil {
		return nil, err
	}
	return s.project(ctx, id, actorID)
}

func (s *PostService) owned(ctx context.Context, actorID, id string) (*postEntity.Post, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID.String() != actorID {
		if !p.VisibleTo(actorID) {
			return nil, apperr.NotFound("Post")
		}
		return nil, apperr.ErrForbidden
	}
	return p, nil
}

// changes validates in and returns the column updates it describes.
func (s *PostService) changes(ctx context.Context, in postPort.PostInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	invalid := map[string]string{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		switch {
		case title == "":
			invalid["title"] = "This field may not be blank."
		case utf8.RuneCountInString(title) > maxTitleLen:
			invalid["title"] = "Ensure this field has no more than 255 characters."
		default:
			fields["title"] = title
		}
	}
	if in.Subtitle != nil {
		if utf8.RuneCountInString(*in.Subtitle) > maxTitleLen {
			invalid["subtitle"] = "Ensure this field has no more than 255 characters."
		} else {
			fields["subtitle"] = strings.TrimSpace(*in.Subtitle)
		}
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if in.Status != nil {
		status := postEntity.Status(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !status.Valid() {
			invalid["status"] = "Status must be published or draft."
		} else {
			fields["status"] = status
		}
	}
	if in.Category != nil {
		ref := strings.TrimSpace(*in.Category)
		if ref == "" {
			fields["category_id"] = nil
		} else {
			c, err := s.resolveCategory(ctx, ref)
			if err != nil {
				if apperr.KindOf(err) != apperr.KindNotFound {
					return nil, err
				}
				invalid["category"] = "Category does not exist."
			} else {
				fields["category_id"] = c
			}
		}
	}

	if len(invalid) > 0 {
		return nil, apperr.Validation("Validation error", invalid)
	}
	return fields, nil
}

// resolveCategory accepts a category id or name.
func (s *PostService) resolveCategory(ctx context.Context, ref string) (*uuid.UUID, error) {
	if id, err := uuid.FromString(ref); err == nil {
		if c, err := s.CategoryRepository.FindByID(ctx, id.String()); err == nil {
			return &c.ID, nil
		} else if apperr.KindOf(err) != apperr.KindNotFound {
			return nil, err
		}
	}
	c, err := s.CategoryRepository.FindByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &c.ID, nil
}

func apply(p *postEntity.Post, fields map[string]interface{}) {
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	if v, ok := fields["subtitle"].(string); ok {
		p.Subtitle = v
	}
	if v, ok := fields["content"].(string); ok {
		p.Content = v
	}
	if v, ok := fields["status"].(postEntity.Status); ok {
		p.Status = v
	}
	if v, ok := fields["category_id"].(*uuid.UUID); ok {
		p.CategoryID = v
	}
}

func (s *PostService) enqueueFanout(ctx context.Context, p *postEntity.Post) {
	_, err := s.FanoutRepository.Create(ctx, &fanoutqueue.FanoutQueue{
		ID:       uuid.Must(uuid.NewV4()),
		PostID:   p.ID,
		AuthorID: p.UserID,
		Status:   fanoutqueue.StatusPending,
	})
	if err != nil {
		config.Logger.Warn("Could not queue fanout", zap.String("postID", p.ID.String()), zap.Error(err))
	}
}

func (s *PostService) project(ctx context.Context, id, viewerID string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Projector.Post(ctx, p, viewerID)
}

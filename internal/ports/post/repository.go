package post

import (
	"context"
	"time"

	"inkwell/internal/core/post"
	categoryPort "inkwell/internal/ports/category"
	commentPort "inkwell/internal/ports/comment"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository stores posts. Finders preload the author and the category.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	// FindByIDs returns the posts that exist, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*post.Post, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// IncrementViews bumps the view counter without touching updated_at.
	IncrementViews(ctx context.Context, id string) error
	// Delete removes the post, its comments and every like on either.
	Delete(ctx context.Context, id string) error
}

type PostDTO struct {
	ID            string                    `json:"id"`
	User          *userPort.UserDTO         `json:"user"`
	Category      *categoryPort.CategoryDTO `json:"category"`
	Title         string                    `json:"title"`
	Subtitle      string                    `json:"subtitle"`
	Content       string                    `json:"content"`
	FeaturedImage string                    `json:"featured_image"`
	Status        string                    `json:"status"`
	ViewCount     int64                     `json:"view_count"`
	LikesCount    int64                     `json:"likes_count"`
	CommentsCount int64                     `json:"comments_count"`
	IsLiked       bool                      `json:"is_liked"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

type PostDetailDTO struct {
	*PostDTO
	Comments []*commentPort.CommentDTO `json:"comments"`
}

// PostInput carries create/update fields; nil leaves a field untouched on update.
type PostInput struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Status   *string `json:"status"`
}

// ToPostDTO projects a post with the stats computed for one viewer.
func ToPostDTO(p *post.Post, s post.Stats) *PostDTO {
	dto := &PostDTO{
		ID:            p.ID.String(),
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		Status:        string(p.Status),
		ViewCount:     p.ViewCount,
		LikesCount:    s.LikesCount,
		CommentsCount: s.CommentsCount,
		IsLiked:       s.IsLiked,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.User.ID != uuid.Nil {
		dto.User = userPort.ToUserDTO(&p.User)
	}
	dto.Category = categoryPort.ToCategoryDTO(p.Category)
	return dto
}

package comment

import (
	"context"
	"time"

	"inkwell/internal/core/comment"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
)

// CommentRepository stores comments. Finders preload the author; roots come with their
// replies ordered oldest first.
type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id string) (*comment.Comment, error)
	CountRoots(ctx context.Context, postID string) (int64, error)
	ListRoots(ctx context.Context, postID string, offset, limit int) ([]*comment.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	// Delete removes the comment, its replies and every like on them.
	Delete(ctx context.Context, id string) error
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error)
}

type CommentDTO struct {
	ID         string            `json:"id"`
	PostID     string            `json:"post"`
	ParentID   *string           `json:"parent"`
	User       *userPort.UserDTO `json:"user"`
	Content    string            `json:"content"`
	LikesCount int64             `json:"likes_count"`
	IsLiked    bool              `json:"is_liked"`
	Replies    []*CommentDTO     `json:"replies"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Stats are per-viewer like aggregates keyed by comment id.
type Stats struct {
	LikesCount map[string]int64
	LikedBy    map[string]bool
}

// ToCommentDTO projects c and, for a root, its replies.
func ToCommentDTO(c *comment.Comment, s Stats) *CommentDTO {
	id := c.ID.String()
	dto := &CommentDTO{
		ID:         id,
		PostID:     c.PostID.String(),
		Content:    c.Content,
		LikesCount: s.LikesCount[id],
		IsLiked:    s.LikedBy[id],
		Replies:    make([]*CommentDTO, 0, len(c.Replies)),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.ParentID != nil {
		pid := c.ParentID.String()
		dto.ParentID = &pid
	}
	if c.User.ID != uuid.Nil {
		dto.User = userPort.ToUserDTO(&c.User)
	}
	for i := range c.Replies {
		dto.Replies = append(dto.Replies, ToCommentDTO(&c.Replies[i], s))
	}
	return dto
}

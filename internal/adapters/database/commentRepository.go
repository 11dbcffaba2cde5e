package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/comment"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// CommentRepositoryDatabase implements CommentRepository on gorm.
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func oldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created_at ASC").Order("comments.id ASC")
}

// withThread preloads the author and, for roots, the replies with their authors.
func withThread(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Replies", oldestFirst).Preload("Replies.User")
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if c.ID == uuid.Nil {
		c.ID = newID()
	}
	if err := repo.db.WithContext(ctx).Omit("Post", "User", "Replies").Create(c).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id string) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).Scopes(withThread).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err, "Comment")
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) CountRoots(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&comment.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// ListRoots returns one page of root comments, oldest first, with their replies attached.
func (repo *CommentRepositoryDatabase) ListRoots(ctx context.Context, postID string, offset, limit int) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	q := repo.db.WithContext(ctx).
		Scopes(withThread, oldestFirst).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) UpdateContent(ctx context.Context, id, content string) error {
	if err := repo.db.WithContext(ctx).Model(&comment.Comment{}).Where("id = ?", id).Update("content", content).Error; err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&comment.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("Comment")
		}
		return deleteComments(tx, []string{id})
	})
}

// CountByPosts counts every comment, replies included, per post.
func (repo *CommentRepositoryDatabase) CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID string
		N      int64
	}
	err := repo.db.WithContext(ctx).
		Model(&comment.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	for _, r := range rows {
		counts[r.PostID] = r.N
	}
	return counts, nil
}

package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if p.ID == uuid.Nil {
		p.ID = newID()
	}
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, notFound(err, "Post")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindByIDs(ctx context.Context, ids []string) ([]*post.Post, error) {
	if len(ids) == 0 {
		return []*post.Post{}, nil
	}
	var posts []*post.Post
	err := repo.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Where("id IN ?", ids).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// IncrementViews is a single atomic UPDATE; concurrent readers never lose a count.
func (repo *PostRepositoryDatabase) IncrementViews(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Post")
	}
	return nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&post.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("Post")
		}
		return deletePosts(tx, []string{id})
	})
}

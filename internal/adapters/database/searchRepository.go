package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"gorm.io/gorm"
)

// SearchRepositoryDatabase does case-insensitive substring matching with LIKE. Wildcards in
// the query are escaped with '!', which behaves the same on MySQL and SQLite.
type SearchRepositoryDatabase struct {
	db *gorm.DB
}

func NewSearchRepositoryDatabase(db *gorm.DB) *SearchRepositoryDatabase {
	return &SearchRepositoryDatabase{db: db}
}

func (repo *SearchRepositoryDatabase) SearchPosts(ctx context.Context, q, viewerID string, limit int) ([]*post.Post, error) {
	pattern := containsPattern(q)
	db := repo.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Scopes(visibleTo(viewerID)).
		Where("(LOWER(posts.title) LIKE ? ESCAPE '!' OR LOWER(posts.subtitle) LIKE ? ESCAPE '!')", pattern, pattern).
		Order("posts.created_at DESC").
		Order("posts.id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var posts []*post.Post
	if err := db.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}

func (repo *SearchRepositoryDatabase) SearchUsers(ctx context.Context, q string, limit int) ([]*user.User, error) {
	pattern := containsPattern(q)
	db := repo.db.WithContext(ctx).
		Where("(LOWER(first_name) LIKE ? ESCAPE '!' OR LOWER(last_name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!')",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var users []*user.User
	if err := db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

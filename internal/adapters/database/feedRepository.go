package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/feed"
	"inkwell/internal/core/like"
	"inkwell/internal/core/pagination"
	"inkwell/internal/core/post"

	"gorm.io/gorm"
)

const (
	likeCountExpr    = "(SELECT COUNT(*) FROM likes WHERE likes.target_kind = ? AND likes.target_id = posts.id)"
	commentCountExpr = "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id)"
)

// FeedRepositoryDatabase serves filtered, sorted, paginated post listings.
type FeedRepositoryDatabase struct {
	db    *gorm.DB
	posts *PostRepositoryDatabase
}

func NewFeedRepositoryDatabase(db *gorm.DB) *FeedRepositoryDatabase {
	return &FeedRepositoryDatabase{db: db, posts: NewPostRepositoryDatabase(db)}
}

func (repo *FeedRepositoryDatabase) Find(ctx context.Context, q feed.Query) ([]*post.Post, pagination.Meta, error) {
	if err := q.Normalize(); err != nil {
		return nil, pagination.Meta{}, err
	}

	var total int64
	if err := repo.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("count feed: %w", err)
	}
	meta, offset := pagination.Resolve(q.Page, total)
	if total == 0 {
		return []*post.Post{}, meta, nil
	}

	var rows []struct {
		ID string
	}
	page := repo.filtered(ctx, q)
	switch q.Sort.Key {
	case feed.SortLikeCount:
		page = page.Select("posts.id, "+likeCountExpr+" AS like_count", like.TargetPost)
	case feed.SortCommentCount:
		page = page.Select("posts.id, " + commentCountExpr + " AS comment_count")
	default:
		page = page.Select("posts.id")
	}
	err := page.
		Order(orderBy(q.Sort)).
		Order("posts.id " + sqlDir(q.Sort.Dir)).
		Offset(offset).
		Limit(meta.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("page feed: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	posts, err := repo.posts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return inOrder(ids, posts), meta, nil
}

// filtered applies visibility and every filter of q to a fresh posts query.
func (repo *FeedRepositoryDatabase) filtered(ctx context.Context, q feed.Query) *gorm.DB {
	db := repo.db.WithContext(ctx).Model(&post.Post{}).Scopes(visibleTo(q.ViewerID))

	if q.Filter.Category != "" {
		db = db.Where("posts.category_id IN (SELECT id FROM categories WHERE id = ? OR name = ?)",
			q.Filter.Category, q.Filter.Category)
	}
	if q.Filter.AuthorID != "" {
		db = db.Where("posts.user_id = ?", q.Filter.AuthorID)
	}
	if q.Filter.LikedByViewer {
		db = db.Where("posts.id IN (SELECT target_id FROM likes WHERE target_kind = ? AND user_id = ?)",
			like.TargetPost, q.ViewerID)
	}
	return db
}

// orderBy only ever interpolates whitelisted keys.
func orderBy(s feed.Sort) string {
	switch {
	case s.Key.Aggregate():
		return string(s.Key) + " " + sqlDir(s.Dir)
	case s.Key == feed.SortTitle, s.Key == feed.SortUpdatedAt:
		return "posts." + string(s.Key) + " " + sqlDir(s.Dir)
	default:
		return "posts.created_at " + sqlDir(s.Dir)
	}
}

func sqlDir(d feed.Direction) string {
	if d == feed.Asc {
		return "ASC"
	}
	return "DESC"
}

// inOrder arranges posts in the order of ids, dropping ids that no longer resolve.
func inOrder(ids []string, posts []*post.Post) []*post.Post {
	byID := make(map[string]*post.Post, len(posts))
	for _, p := range posts {
		byID[p.ID.String()] = p
	}
	out := make([]*post.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/comment"
	"inkwell/internal/core/like"
	"inkwell/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepositoryDatabase implements LikeRepository on gorm.
type LikeRepositoryDatabase struct {
	db *gorm.DB
}

func NewLikeRepositoryDatabase(db *gorm.DB) *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{db: db}
}

// Toggle deletes the caller's like or, when there was none, inserts one. The unique index on
// (user_id, target_kind, target_id) absorbs a racing insert. The target is checked after the
// write so a like never survives on a target deleted mid-flight.
func (repo *LikeRepositoryDatabase) Toggle(ctx context.Context, userID string, target like.Target) (bool, error) {
	var liked bool
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
			Delete(&like.Like{})
		if res.Error != nil {
			return res.Error
		}
		liked = res.RowsAffected == 0

		if liked {
			l := &like.Like{
				ID:         newID(),
				UserID:     uuid.FromStringOrNil(userID),
				TargetKind: target.Kind,
				TargetID:   uuid.FromStringOrNil(target.ID),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error; err != nil {
				return err
			}
		}

		return targetExists(tx, target)
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return false, err
		}
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

func targetExists(tx *gorm.DB, target like.Target) error {
	var (
		model  interface{}
		entity string
	)
	switch target.Kind {
	case like.TargetPost:
		model, entity = &post.Post{}, "Post"
	case like.TargetComment:
		model, entity = &comment.Comment{}, "Comment"
	default:
		return apperr.BadRequest("unknown like target")
	}

	var count int64
	if err := tx.Model(model).Where("id = ?", target.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound(entity)
	}
	return nil
}

func (repo *LikeRepositoryDatabase) Count(ctx context.Context, target like.Target) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&like.Like{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (repo *LikeRepositoryDatabase) Counts(ctx context.Context, kind like.TargetKind, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []struct {
		TargetID string
		N        int64
	}
	err := repo.db.WithContext(ctx).
		Model(&like.Like{}).
		Select("target_id, COUNT(*) AS n").
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	for _, r := range rows {
		counts[r.TargetID] = r.N
	}
	return counts, nil
}

func (repo *LikeRepositoryDatabase) LikedBy(ctx context.Context, userID string, kind like.TargetKind, ids []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(ids) == 0 {
		return liked, nil
	}
	var targetIDs []string
	err := repo.db.WithContext(ctx).
		Model(&like.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id IN ?", userID, kind, ids).
		Pluck("target_id", &targetIDs).Error
	if err != nil {
		return nil, fmt.Errorf("liked by: %w", err)
	}
	for _, id := range targetIDs {
		liked[id] = true
	}
	return liked, nil
}

package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/follower"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase implements FollowerRepository on gorm.
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

// Follow relies on the unique (follower_id, following_id) index: a second insert affects no rows.
func (repo *FollowerRepositoryDatabase) Follow(ctx context.Context, followerID, followingID string) (bool, error) {
	f := &follower.Follower{
		ID:          newID(),
		FollowerID:  uuid.FromStringOrNil(followerID),
		FollowingID: uuid.FromStringOrNil(followingID),
	}
	res := repo.db.WithContext(ctx).
		Omit("Follower", "Following").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(f)
	if res.Error != nil {
		return false, fmt.Errorf("follow: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowerRepositoryDatabase) Unfollow(ctx context.Context, followerID, followingID string) (bool, error) {
	res := repo.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&follower.Follower{})
	if res.Error != nil {
		return false, fmt.Errorf("unfollow: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&follower.Follower{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) FollowersOf(ctx context.Context, userID string) ([]*user.User, error) {
	return repo.usersByEdge(ctx, "followers.follower_id", "followers.following_id", userID)
}

func (repo *FollowerRepositoryDatabase) FollowingOf(ctx context.Context, userID string) ([]*user.User, error) {
	return repo.usersByEdge(ctx, "followers.following_id", "followers.follower_id", userID)
}

// usersByEdge joins users on joinCol for edges whose matchCol equals userID.
func (repo *FollowerRepositoryDatabase) usersByEdge(ctx context.Context, joinCol, matchCol, userID string) ([]*user.User, error) {
	var users []*user.User
	err := repo.db.WithContext(ctx).
		Joins("JOIN followers ON "+joinCol+" = users.id").
		Where(matchCol+" = ?", userID).
		Order("followers.created_at DESC").
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list follow edges: %w", err)
	}
	return users, nil
}

func (repo *FollowerRepositoryDatabase) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).
		Model(&follower.Follower{}).
		Where("following_id = ?", userID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("follower ids: %w", err)
	}
	return ids, nil
}

func (repo *FollowerRepositoryDatabase) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return repo.count(ctx, "following_id = ?", userID)
}

func (repo *FollowerRepositoryDatabase) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return repo.count(ctx, "follower_id = ?", userID)
}

func (repo *FollowerRepositoryDatabase) count(ctx context.Context, cond, userID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follower.Follower{}).Where(cond, userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count follow edges: %w", err)
	}
	return count, nil
}

package follower

import (
	"context"

	"inkwell/internal/core/user"
)

// FollowerRepository stores directed follow edges.
type FollowerRepository interface {
	// Follow reports created=false when the edge already existed.
	Follow(ctx context.Context, followerID, followingID string) (bool, error)
	// Unfollow reports removed=false when there was no edge.
	Unfollow(ctx context.Context, followerID, followingID string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// FollowersOf and FollowingOf return users ordered by edge creation, newest first.
	FollowersOf(ctx context.Context, userID string) ([]*user.User, error)
	FollowingOf(ctx context.Context, userID string) ([]*user.User, error)
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type FollowStatusDTO struct {
	UserID         string `json:"user_id"`
	IsFollowing    bool   `json:"is_following"`
	FollowersCount int64  `json:"followers_count"`
}

package like

import (
	"context"

	"inkwell/internal/core/like"
)

// LikeRepository is the like ledger for posts and comments.
type LikeRepository interface {
	// Toggle removes the caller's like if present, otherwise adds it, and reports the new
	// state. It fails with NotFound when the target does not exist.
	Toggle(ctx context.Context, userID string, target like.Target) (bool, error)
	Count(ctx context.Context, target like.Target) (int64, error)
	Counts(ctx context.Context, kind like.TargetKind, ids []string) (map[string]int64, error)
	LikedBy(ctx context.Context, userID string, kind like.TargetKind, ids []string) (map[string]bool, error)
}

type ToggleDTO struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

package timeline

import "context"

// TimelineStore keeps each user's following timeline as post ids scored by publish time.
type TimelineStore interface {
	Push(ctx context.Context, postID string, score float64, followerIDs []string) error
	// Range returns post ids newest first, start and stop inclusive.
	Range(ctx context.Context, userID string, start, stop int64) ([]string, error)
	Remove(ctx context.Context, userID string, postIDs ...string) error
}

package redis

import (
	"context"
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/core/timeline"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TimelineRepositoryRedis keeps following timelines in one sorted set per user.
type TimelineRepositoryRedis struct {
	Client *redis.Client
	// MaxLen caps each timeline; older entries are trimmed on push. Zero keeps everything.
	MaxLen int64
}

func NewTimelineRepositoryRedis(client *redis.Client, maxLen int64) *TimelineRepositoryRedis {
	return &TimelineRepositoryRedis{
		Client: client,
		MaxLen: maxLen,
	}
}

// Push adds postID to every follower's timeline in one pipeline.
func (r *TimelineRepositoryRedis) Push(ctx context.Context, postID string, score float64, followerIDs []string) error {
	if len(followerIDs) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for _, followerID := range followerIDs {
		key := timeline.Key(followerID)
		pipe.ZAdd(ctx, key, &redis.Z{Score: score, Member: postID})
		if r.MaxLen > 0 {
			pipe.ZRemRangeByRank(ctx, key, 0, -r.MaxLen-1)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push timeline: %w", err)
	}

	config.Logger.Debug("Pushed post to timelines", zap.String("postID", postID), zap.Int("followers", len(followerIDs)))
	return nil
}

func (r *TimelineRepositoryRedis) Range(ctx context.Context, userID string, start, stop int64) ([]string, error) {
	ids, err := r.Client.ZRevRange(ctx, timeline.Key(userID), start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}
	return ids, nil
}

func (r *TimelineRepositoryRedis) Remove(ctx context.Context, userID string, postIDs ...string) error {
	if len(postIDs) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(postIDs))
	for _, id := range postIDs {
		members = append(members, id)
	}
	if err := r.Client.ZRem(ctx, timeline.Key(userID), members...).Err(); err != nil {
		return fmt.Errorf("trim timeline: %w", err)
	}
	return nil
}

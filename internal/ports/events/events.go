package events

import (
	"context"
	"time"
)

const (
	TypePostLiked      = "post.liked"
	TypeCommentLiked   = "comment.liked"
	TypeCommentCreated = "comment.created"
	TypeUserFollowed   = "user.followed"
)

// Event is an interaction notification published after the mutation commits.
type Event struct {
	Type      string    `json:"type"`
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

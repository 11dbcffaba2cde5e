package search

import (
	"context"

	"inkwell/internal/core/post"
	"inkwell/internal/core/user"
	postPort "inkwell/internal/ports/post"
	userPort "inkwell/internal/ports/user"
)

// SearchRepository matches case-insensitive substrings. limit <= 0 means no limit.
type SearchRepository interface {
	SearchPosts(ctx context.Context, q, viewerID string, limit int) ([]*post.Post, error)
	SearchUsers(ctx context.Context, q string, limit int) ([]*user.User, error)
}

type ResultDTO struct {
	Posts []*postPort.PostDTO `json:"posts"`
	Users []*userPort.UserDTO `json:"users"`
}

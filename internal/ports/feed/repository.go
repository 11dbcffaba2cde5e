package feed

import (
	"context"

	"inkwell/internal/core/feed"
	"inkwell/internal/core/pagination"
	"inkwell/internal/core/post"
	postPort "inkwell/internal/ports/post"
)

type FeedRepository interface {
	// Find returns one page of posts, in query order, with the page actually served.
	Find(ctx context.Context, q feed.Query) ([]*post.Post, pagination.Meta, error)
}

type PageDTO struct {
	Items []*postPort.PostDTO `json:"items"`
	pagination.Meta
}

// Package projection attaches per-viewer like and comment aggregates to posts and comments.
package projection

import (
	"context"

	"inkwell/internal/core/comment"
	"inkwell/internal/core/like"
	"inkwell/internal/core/post"
	commentPort "inkwell/internal/ports/comment"
	likePort "inkwell/internal/ports/like"
	postPort "inkwell/internal/ports/post"
)

type Projector struct {
	Likes       likePort.LikeRepository
	CommentRepo commentPort.CommentRepository
}

func NewProjector(likes likePort.LikeRepository, comments commentPort.CommentRepository) *Projector {
	return &Projector{Likes: likes, CommentRepo: comments}
}

// PostStats computes stats for posts as seen by viewerID.
func (p *Projector) PostStats(ctx context.Context, posts []*post.Post, viewerID string) (map[string]post.Stats, error) {
	ids := make([]string, 0, len(posts))
	for _, ps := range posts {
		ids = append(ids, ps.ID.String())
	}

	likes, err := p.Likes.Counts(ctx, like.TargetPost, ids)
	if err != nil {
		return nil, err
	}
	comments, err := p.CommentRepo.CountByPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := p.Likes.LikedBy(ctx, viewerID, like.TargetPost, ids)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]post.Stats, len(ids))
	for _, id := range ids {
		stats[id] = post.Stats{
			LikesCount:    likes[id],
			CommentsCount: comments[id],
			IsLiked:       liked[id],
		}
	}
	return stats, nil
}

func (p *Projector) Posts(ctx context.Context, posts []*post.Post, viewerID string) ([]*postPort.PostDTO, error) {
	stats, err := p.PostStats(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	out := make([]*postPort.PostDTO, 0, len(posts))
	for _, ps := range posts {
		out = append(out, postPort.ToPostDTO(ps, stats[ps.ID.String()]))
	}
	return out, nil
}

func (p *Projector) Post(ctx context.Context, ps *post.Post, viewerID string) (*postPort.PostDTO, error) {
	dtos, err := p.Posts(ctx, []*post.Post{ps}, viewerID)
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

// Comments projects comments and their attached replies.
func (p *Projector) Comments(ctx context.Context, comments []*comment.Comment, viewerID string) ([]*commentPort.CommentDTO, error) {
	var ids []string
	for _, c := range comments {
		ids = append(ids, c.ID.String())
		for _, r := range c.Replies {
			ids = append(ids, r.ID.String())
		}
	}

	counts, err := p.Likes.Counts(ctx, like.TargetComment, ids)
	if err != nil {
		return nil, err
	}
	liked, err := p.Likes.LikedBy(ctx, viewerID, like.TargetComment, ids)
	if err != nil {
		return nil, err
	}

	stats := commentPort.Stats{LikesCount: counts, LikedBy: liked}
	out := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentPort.ToCommentDTO(c, stats))
	}
	return out, nil
}

func (p *Projector) Comment(ctx context.Context, c *comment.Comment, viewerID string) (*commentPort.CommentDTO, error) {
	dtos, err := p.Comments(ctx, []*comment.Comment{c}, viewerID)
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

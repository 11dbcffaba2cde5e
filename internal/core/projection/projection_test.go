package projection_test

import (
	"context"
	"testing"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/comment"
	"inkwell/internal/core/like"
	"inkwell/internal/core/post"
	"inkwell/internal/core/projection"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostsPerViewer(t *testing.T) {
	db := testutil.NewDB(t)
	p := projection.NewProjector(database.NewLikeRepositoryDatabase(db), database.NewCommentRepositoryDatabase(db))
	author := testutil.CreateUser(t, db, "author")
	fan := testutil.CreateUser(t, db, "fan")
	liked := testutil.CreatePost(t, db, author, "liked")
	quiet := testutil.CreatePost(t, db, author, "quiet")
	testutil.Like(t, db, fan, like.TargetPost, liked.ID)
	testutil.Like(t, db, author, like.TargetPost, liked.ID)
	testutil.CreateComment(t, db, liked, fan, nil, "first")
	ctx := context.Background()

	dtos, err := p.Posts(ctx, []*post.Post{liked, quiet}, fan.ID.String())
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.EqualValues(t, 2, dtos[0].LikesCount)
	assert.EqualValues(t, 1, dtos[0].CommentsCount)
	assert.True(t, dtos[0].IsLiked)
	assert.Zero(t, dtos[1].LikesCount)
	assert.False(t, dtos[1].IsLiked)

	anon, err := p.Post(ctx, liked, "")
	require.NoError(t, err)
	assert.False(t, anon.IsLiked)
	assert.EqualValues(t, 2, anon.LikesCount)

	empty, err := p.Posts(ctx, nil, fan.ID.String())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCommentsIncludeReplies(t *testing.T) {
	db := testutil.NewDB(t)
	p := projection.NewProjector(database.NewLikeRepositoryDatabase(db), database.NewCommentRepositoryDatabase(db))
	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	ps := testutil.CreatePost(t, db, author, "post")
	root := testutil.CreateComment(t, db, ps, author, nil, "root")
	reply := testutil.CreateComment(t, db, ps, reader, root, "reply")
	testutil.Like(t, db, reader, like.TargetComment, reply.ID)
	root.Replies = []comment.Comment{*reply}

	dto, err := p.Comment(context.Background(), root, reader.ID.String())
	require.NoError(t, err)
	assert.Zero(t, dto.LikesCount)
	require.Len(t, dto.Replies, 1)
	assert.EqualValues(t, 1, dto.Replies[0].LikesCount)
	assert.True(t, dto.Replies[0].IsLiked)
}

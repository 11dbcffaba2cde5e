package main

import (
	"context"
	"testing"

	"inkwell/internal/core/category"
	"inkwell/internal/core/comment"
	"inkwell/internal/core/fanoutqueue"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeederRun(t *testing.T) {
	db := testutil.NewDB(t)
	s := newSeeder(db, "secret", 42, zap.NewNop())

	require.NoError(t, s.run(context.Background(), 8, 3, 4))

	assert.EqualValues(t, 8, testutil.Count(t, db, &user.User{}))
	assert.EqualValues(t, 6, testutil.Count(t, db, &category.Category{}))
	assert.EqualValues(t, 24, testutil.Count(t, db, &post.Post{}))

	published := testutil.Count(t, db, &post.Post{}, "status = ?", post.StatusPublished)
	assert.Equal(t, published, testutil.Count(t, db, &fanoutqueue.FanoutQueue{}))
	assert.Equal(t, published, testutil.Count(t, db, &comment.Comment{}, "parent_id IS NULL"))
	assert.Zero(t, testutil.Count(t, db, &comment.Comment{},
		"parent_id IN (SELECT id FROM comments WHERE parent_id IS NOT NULL)"))
}

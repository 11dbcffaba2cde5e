package database_test

import (
	"context"
	"testing"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/follower"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFollowerRepositoryDatabase(db)
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	ctx := context.Background()

	created, err := repo.Follow(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Follow(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.False(t, created)
	assert.EqualValues(t, 1, testutil.Count(t, db, &follower.Follower{}))

	removed, err := repo.Unfollow(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unfollow(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowListsAndCounts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFollowerRepositoryDatabase(db)
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	c := testutil.CreateUser(t, db, "c")
	testutil.Follow(t, db, b, a)
	testutil.Follow(t, db, c, a)
	testutil.Follow(t, db, a, c)
	ctx := context.Background()

	followers, err := repo.FollowersOf(ctx, a.ID.String())
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.ElementsMatch(t, []string{"b", "c"}, []string{followers[0].Username, followers[1].Username})

	following, err := repo.FollowingOf(ctx, a.ID.String())
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "c", following[0].Username)

	ids, err := repo.FollowerIDs(ctx, a.ID.String())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b.ID.String(), c.ID.String()}, ids)

	n, err := repo.CountFollowers(ctx, a.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = repo.CountFollowing(ctx, a.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err := repo.IsFollowing(ctx, b.ID.String(), a.ID.String())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsFollowing(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.False(t, ok)
}

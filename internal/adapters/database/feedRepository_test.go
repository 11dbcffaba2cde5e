package database_test

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/apperr"
	"inkwell/internal/core/feed"
	"inkwell/internal/core/like"
	"inkwell/internal/core/pagination"
	"inkwell/internal/core/post"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func titles(posts []*post.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestFeedSortsByLikeCount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFeedRepositoryDatabase(db)
	author := testutil.CreateUser(t, db, "author")

	likers := []string{"l1", "l2", "l3"}
	counts := map[string]int{"three": 3, "one": 1, "two": 2}
	i := 0
	for _, title := range []string{"three", "one", "two"} {
		p := testutil.CreatePost(t, db, author, title, testutil.CreatedAt(base.Add(time.Duration(i)*time.Minute)))
		for j := 0; j < counts[title]; j++ {
			u := testutil.CreateUser(t, db, title+likers[j])
			testutil.Like(t, db, u, like.TargetPost, p.ID)
		}
		i++
	}

	posts, meta, err := repo.Find(context.Background(), feed.Query{Sort: feed.ParseSort("like_count", "desc")})
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two", "one"}, titles(posts))
	assert.EqualValues(t, 3, meta.TotalCount)

	posts, _, err = repo.Find(context.Background(), feed.Query{Sort: feed.ParseSort("like_count", "asc")})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, titles(posts))
}

func TestFeedSortsByCommentCount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFeedRepositoryDatabase(db)
	author := testutil.CreateUser(t, db, "author")

	quiet := testutil.CreatePost(t, db, author, "quiet", testutil.CreatedAt(base))
	busy := testutil.CreatePost(t, db, author, "busy", testutil.CreatedAt(base.Add(time.Minute)))
	root := testutil.CreateComment(t, db, busy, author, nil, "root")
	testutil.CreateComment(t, db, busy, author, root, "reply")
	testutil.CreateComment(t, db, quiet, author, nil, "only")

	posts, _, err := repo.Find(context.Background(), feed.Query{Sort: feed.ParseSort("comment_count", "desc")})
	require.NoError(t, err)
	assert.Equal(t, []string{"busy", "quiet"}, titles(posts))
}

func TestFeedDefaultsAndStoredSorts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFeedRepositoryDatabase(db)
	author := testutil.CreateUser(t, db, "author")
	testutil.CreatePost(t, db, author, "banana", testutil.CreatedAt(base))
	testutil.CreatePost(t, db, author, "apple", testutil.CreatedAt(base.Add(time.Hour)))
	testutil.CreatePost(t, db, author, "cherry", testutil.CreatedAt(base.Add(2*time.Hour)))

	posts, _, err := repo.Find(context.Background(), feed.Query{Sort: feed.ParseSort("bogus", "asc")})
	require.NoError(t, err)
	assert.Equal(t, []string{"cherry", "apple", "banana"}, titles(posts))

	posts, _, err = repo.Find(context.Background(), feed.Query{Sort: feed.ParseSort("title", "asc")})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, titles(posts))
}

func TestFeedClampsPageToFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFeedRepositoryDatabase(db)
	author := testutil.CreateUser(t, db, "author")
	for i := 0; i < 4; i++ {
		testutil.CreatePost(t, db, author, string(rune('a'+i)), testutil.CreatedAt(base.Add(time.Duration(i)*time.Minute)))
	}

	posts, meta, err := repo.Find(context.Background(), feed.Query{Page: pagination.Params{Page: 999, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, pagination.Meta{Page: 1, TotalPages: 2, TotalCount: 4, Limit: 2}, meta)
	assert.Equal(t, []string{"d", "c"}, titles(posts))

	posts, meta, err = repo.Find(context.Background(), feed.Query{Page: pagination.Params{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, []string{"b", "a"}, titles(posts))
}

func TestFeedVisibility(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFeedRepositoryDatabase(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreatePost(t, db, alice, "public", testutil.CreatedAt(base))
	testutil.CreatePost(t, db, alice, "alice draft", testutil.Draft, testutil.CreatedAt(base.Add(time.Minute)))
	testutil.CreatePost(t, db, bob, "bob draft", testutil.Draft, testutil.CreatedAt(base.Add(2*time.Minute)))

	posts, _, err := repo.Find(context.Background(), feed.Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"public"}, titles(posts))

	posts, _, err = repo.Find(context.Background(), feed.Query{ViewerID: alice.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice draft", "public"}, titles(posts))
}

func TestFeedFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFeedRepositoryDatabase(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	tech := testutil.CreateCategory(t, db, "tech")
	p1 := testutil.CreatePost(t, db, alice, "go tips", testutil.InCategory(tech), testutil.CreatedAt(base))
	testutil.CreatePost(t, db, bob, "rust tips", testutil.InCategory(tech), testutil.CreatedAt(base.Add(time.Minute)))
	testutil.CreatePost(t, db, alice, "cooking", testutil.CreatedAt(base.Add(2*time.Minute)))
	testutil.Like(t, db, bob, like.TargetPost, p1.ID)

	ctx := context.Background()

	posts, _, err := repo.Find(ctx, feed.Query{Filter: feed.Filter{Category: "tech"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"rust tips", "go tips"}, titles(posts))

	posts, _, err = repo.Find(ctx, feed.Query{Filter: feed.Filter{Category: tech.ID.String()}})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, _, err = repo.Find(ctx, feed.Query{Filter: feed.Filter{Category: "tech", AuthorID: alice.ID.String()}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go tips"}, titles(posts))

	posts, _, err = repo.Find(ctx, feed.Query{ViewerID: bob.ID.String(), Filter: feed.Filter{LikedByViewer: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go tips"}, titles(posts))

	_, _, err = repo.Find(ctx, feed.Query{Filter: feed.Filter{LikedByViewer: true}})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestFeedEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	repo := database.NewFeedRepositoryDatabase(db)

	posts, meta, err := repo.Find(context.Background(), feed.Query{})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, pagination.Meta{Page: 1, TotalPages: 0, TotalCount: 0, Limit: pagination.DefaultLimit}, meta)
}

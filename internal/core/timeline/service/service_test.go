package timelineapp

import (
	"context"
	"testing"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/apperr"
	"inkwell/internal/core/post"
	"inkwell/internal/core/projection"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	ids     []string
	removed []string
	start   int64
	stop    int64
}

func (f *fakeStore) Push(context.Context, string, float64, []string) error { return nil }

func (f *fakeStore) Range(_ context.Context, _ string, start, stop int64) ([]string, error) {
	f.start, f.stop = start, stop
	return f.ids, nil
}

func (f *fakeStore) Remove(_ context.Context, _ string, postIDs ...string) error {
	f.removed = append(f.removed, postIDs...)
	return nil
}

func TestGetTimelineKeepsOrderAndPrunes(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	older := testutil.CreatePost(t, db, author, "older")
	newer := testutil.CreatePost(t, db, author, "newer")
	draft := testutil.CreatePost(t, db, author, "draft", testutil.Draft)
	missing := "00000000-0000-0000-0000-000000000001"

	store := &fakeStore{ids: []string{newer.ID.String(), missing, draft.ID.String(), older.ID.String()}}
	svc := NewTimelineService(
		store,
		database.NewPostRepositoryDatabase(db),
		projection.NewProjector(database.NewLikeRepositoryDatabase(db), database.NewCommentRepositoryDatabase(db)),
	)

	items, err := svc.GetTimeline(context.Background(), reader.ID.String(), 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Title)
	assert.Equal(t, "older", items[1].Title)
	assert.ElementsMatch(t, []string{missing, draft.ID.String()}, store.removed)
	assert.EqualValues(t, DefaultLimit-1, store.stop)
	assert.Equal(t, post.StatusPublished, post.Status(items[0].Status))
}

func TestGetTimelineCapsLimit(t *testing.T) {
	store := &fakeStore{}
	svc := NewTimelineService(store, nil, nil)

	items, err := svc.GetTimeline(context.Background(), "u", 10, 1000)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.EqualValues(t, 10, store.start)
	assert.EqualValues(t, 10+MaxLimit-1, store.stop)

	_, err = svc.GetTimeline(context.Background(), "", 0, 10)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

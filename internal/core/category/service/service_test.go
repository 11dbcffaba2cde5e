package categoryapp

import (
	"context"
	"testing"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/apperr"
	"inkwell/internal/core/post"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(database.NewCategoryRepositoryDatabase(db))
	u := testutil.CreateUser(t, db, "u")
	actor := u.ID.String()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "", "tech")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	tech, err := svc.CreateCategory(ctx, actor, "  tech ")
	require.NoError(t, err)
	assert.Equal(t, "tech", tech.Name)

	_, err = svc.CreateCategory(ctx, actor, "tech")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = svc.CreateCategory(ctx, actor, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	renamed, err := svc.UpdateCategory(ctx, actor, tech.ID, "technology")
	require.NoError(t, err)
	assert.Equal(t, "technology", renamed.Name)

	all, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestDeleteCategoryKeepsPosts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(database.NewCategoryRepositoryDatabase(db))
	u := testutil.CreateUser(t, db, "u")
	c := testutil.CreateCategory(t, db, "news")
	p := testutil.CreatePost(t, db, u, "headline", testutil.InCategory(c))
	ctx := context.Background()

	require.NoError(t, svc.DeleteCategory(ctx, u.ID.String(), c.ID.String()))

	var reloaded post.Post
	require.NoError(t, db.First(&reloaded, "id = ?", p.ID).Error)
	assert.Nil(t, reloaded.CategoryID)

	_, err := svc.GetCategory(ctx, c.ID.String())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// Package testutil provides an in-memory store and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"inkwell/internal/adapters/database"
	"inkwell/internal/core/category"
	"inkwell/internal/core/comment"
	"inkwell/internal/core/follower"
	"inkwell/internal/core/like"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database. It is pinned to one connection since
// every connection to :memory: is its own database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// Password is the plain password of every fixture user.
const Password = "secret123"

var passwordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

func CreateUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{
		ID:        newID(),
		Username:  username,
		FirstName: username,
		LastName:  "Tester",
		Email:     username + "@example.com",
		Password:  passwordHash,
		IsActive:  true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *category.Category {
	t.Helper()
	c := &category.Category{ID: newID(), Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreatePost inserts a published post. Options may adjust it before insert.
func CreatePost(t *testing.T, db *gorm.DB, author *user.User, title string, opts ...func(*post.Post)) *post.Post {
	t.Helper()
	p := &post.Post{
		ID:     newID(),
		UserID: author.ID,
		Title:  title,
		Status: post.StatusPublished,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, db.Omit("User", "Category").Create(p).Error)
	return p
}

func Draft(p *post.Post) { p.Status = post.StatusDraft }

func CreatedAt(ts time.Time) func(*post.Post) {
	return func(p *post.Post) { p.CreatedAt = ts; p.UpdatedAt = ts }
}

func InCategory(c *category.Category) func(*post.Post) {
	return func(p *post.Post) { p.CategoryID = &c.ID }
}

func Subtitle(s string) func(*post.Post) {
	return func(p *post.Post) { p.Subtitle = s }
}

// CreateComment inserts a comment; parent may be nil for a root.
func CreateComment(t *testing.T, db *gorm.DB, p *post.Post, author *user.User, parent *comment.Comment, content string, opts ...func(*comment.Comment)) *comment.Comment {
	t.Helper()
	c := &comment.Comment{
		ID:      newID(),
		PostID:  p.ID,
		UserID:  author.ID,
		Content: content,
	}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	for _, opt := range opts {
		opt(c)
	}
	require.NoError(t, db.Omit("Post", "User", "Replies").Create(c).Error)
	return c
}

func CommentAt(ts time.Time) func(*comment.Comment) {
	return func(c *comment.Comment) { c.CreatedAt = ts; c.UpdatedAt = ts }
}

func Like(t *testing.T, db *gorm.DB, u *user.User, kind like.TargetKind, targetID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&like.Like{ID: newID(), UserID: u.ID, TargetKind: kind, TargetID: targetID}).Error)
}

func Follow(t *testing.T, db *gorm.DB, from, to *user.User) {
	t.Helper()
	require.NoError(t, db.Omit("Follower", "Following").Create(&follower.Follower{ID: newID(), FollowerID: from.ID, FollowingID: to.ID}).Error)
}

// Count returns the number of rows of model matching the optional condition.
func Count(t *testing.T, db *gorm.DB, model interface{}, query ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

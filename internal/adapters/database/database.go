package database

import (
	"errors"
	"strings"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/category"
	"inkwell/internal/core/comment"
	"inkwell/internal/core/fanoutqueue"
	"inkwell/internal/core/follower"
	"inkwell/internal/core/like"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the app owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&user.SocialLink{},
		&category.Category{},
		&post.Post{},
		&comment.Comment{},
		&like.Like{},
		&follower.Follower{},
		&fanoutqueue.FanoutQueue{},
	)
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// notFound turns gorm.ErrRecordNotFound into a NotFound error for entity.
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.KindNotFound, entity+" not found", err)
	}
	return err
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern for a case-insensitive substring match. Use it with
// LOWER(column) LIKE ? ESCAPE '!'.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// visibleTo keeps published posts plus the viewer's own drafts.
func visibleTo(viewerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewerID == "" {
			return db.Where("posts.status = ?", post.StatusPublished)
		}
		return db.Where("(posts.status = ? OR posts.user_id = ?)", post.StatusPublished, viewerID)
	}
}

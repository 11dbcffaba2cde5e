package post

import (
	"time"

	"inkwell/internal/core/category"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

func (s Status) Valid() bool {
	return s == StatusPublished || s == StatusDraft
}

type Post struct {
	ID            uuid.UUID          `gorm:"primaryKey;type:char(36)"`
	UserID        uuid.UUID          `gorm:"type:char(36);not null;index"`
	User          user.User          `gorm:"foreignKey:UserID"`
	CategoryID    *uuid.UUID         `gorm:"type:char(36);index"`
	Category      *category.Category `gorm:"foreignKey:CategoryID"`
	Title         string             `gorm:"type:varchar(255);not null"`
	Subtitle      string             `gorm:"type:varchar(255)"`
	Content       string             `gorm:"type:text"`
	FeaturedImage string             `gorm:"type:text"`
	Status        Status             `gorm:"type:varchar(10);not null;index"`
	ViewCount     int64              `gorm:"not null"`
	CreatedAt     time.Time          `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time          `gorm:"autoUpdateTime"`
}

// VisibleTo reports whether viewerID may read the post. Drafts are only visible to their
// author; an empty viewerID is anonymous.
func (p *Post) VisibleTo(viewerID string) bool {
	if p.Status == StatusPublished {
		return true
	}
	return viewerID != "" && p.UserID.String() == viewerID
}

// Stats are the per-viewer aggregates attached to a post when it is projected.
type Stats struct {
	LikesCount    int64
	CommentsCount int64
	IsLiked       bool
}

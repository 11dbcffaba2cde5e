package comment

import (
	"time"

	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
)

// Comment is either a root (ParentID nil) or a reply to a root. Replies never have replies.
type Comment struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	PostID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	Post      *post.Post `gorm:"foreignKey:PostID"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	User      user.User  `gorm:"foreignKey:UserID"`
	ParentID  *uuid.UUID `gorm:"type:char(36);index"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	Replies []Comment `gorm:"foreignKey:ParentID"`
}

func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

// CanReply reports whether a reply may be attached under c.
func (c *Comment) CanReply() bool {
	return c.IsRoot()
}

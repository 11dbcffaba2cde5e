package like

import (
	"time"

	"github.com/gofrs/uuid"
)

type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// Target names the liked entity.
type Target struct {
	Kind TargetKind
	ID   string
}

// Like records that UserID likes the target. One row per (user, kind, target).
type Like struct {
	ID         uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_target,priority:1"`
	TargetKind TargetKind `gorm:"type:varchar(10);not null;uniqueIndex:uniq_like_user_target,priority:2;index:idx_like_target,priority:1"`
	TargetID   uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_target,priority:3;index:idx_like_target,priority:2"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

// ToggleResult is the ledger state after a toggle.
type ToggleResult struct {
	Liked      bool
	LikesCount int64
}

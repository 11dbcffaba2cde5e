package follower

import (
	"time"

	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
)

// Follower is a directed edge: FollowerID follows FollowingID.
type Follower struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)"`
	FollowerID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_pair,priority:1"`
	Follower    user.User `gorm:"foreignKey:FollowerID"`
	FollowingID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_pair,priority:2;index"`
	Following   user.User `gorm:"foreignKey:FollowingID"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

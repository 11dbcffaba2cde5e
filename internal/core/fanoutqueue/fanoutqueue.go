package fanoutqueue

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// FanoutQueue is a pending delivery of a published post to its author's followers.
// It holds no foreign keys: a post deleted before delivery is skipped by the worker.
type FanoutQueue struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	PostID      uuid.UUID  `gorm:"type:char(36);not null;index"`
	AuthorID    uuid.UUID  `gorm:"type:char(36);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

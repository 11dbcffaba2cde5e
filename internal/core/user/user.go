package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	Username  string     `gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName string     `gorm:"type:varchar(150)"`
	LastName  string     `gorm:"type:varchar(150)"`
	Email     string     `gorm:"type:varchar(254);uniqueIndex;not null"`
	Password  string     `gorm:"not null"`
	Bio       string     `gorm:"type:text"`
	Avatar    string     `gorm:"type:text"`
	IsActive  bool       `gorm:"not null"`
	LastLogin *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime;index"` // join time
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	SocialLinks []SocialLink `gorm:"foreignKey:UserID"`
}

// SocialLink is owned by exactly one user and goes away with it.
type SocialLink struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Link      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

package user

import (
	"context"
	"time"

	"inkwell/internal/core/user"
)

// UserRepository stores users and their social links.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error)
	List(ctx context.Context, username string) ([]*user.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes the user together with everything the user owns.
	Delete(ctx context.Context, id string) error
}

type SocialLinkRepository interface {
	Create(ctx context.Context, link *user.SocialLink) (*user.SocialLink, error)
	FindByID(ctx context.Context, id string) (*user.SocialLink, error)
	ListByUser(ctx context.Context, userID string) ([]*user.SocialLink, error)
	Update(ctx context.Context, id, link string) error
	Delete(ctx context.Context, id string) error
}

// TokenBlacklist holds revoked token ids until they would have expired anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenClaims identifies a verified token.
type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

type LoginResponse struct {
	AccessToken  string   `json:"access"`
	RefreshToken string   `json:"refresh,omitempty"`
	ExpiresAt    int64    `json:"expires_at"`
	User         *UserDTO `json:"user,omitempty"`
}

type UserDTO struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Bio        string     `json:"bio"`
	Avatar     string     `json:"avatar"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
}

type ProfileDTO struct {
	*UserDTO
	FollowersCount int64            `json:"followers_count"`
	FollowingCount int64            `json:"following_count"`
	IsFollowing    bool             `json:"is_following"`
	SocialLinks    []*SocialLinkDTO `json:"social_links"`
}

type SocialLinkDTO struct {
	ID        string    `json:"id"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdate lists the editable profile fields; nil leaves a field untouched.
type ProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Bio       *string `json:"bio"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:         u.ID.String(),
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Bio:        u.Bio,
		Avatar:     u.Avatar,
		DateJoined: u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}

func ToUserDTOs(users []*user.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

func ToSocialLinkDTO(l *user.SocialLink) *SocialLinkDTO {
	return &SocialLinkDTO{
		ID:        l.ID.String(),
		Link:      l.Link,
		CreatedAt: l.CreatedAt,
	}
}

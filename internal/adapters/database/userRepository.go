package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = newID()
	}
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperr.Validation("Validation error", map[string]string{"username": "username or email already taken"})
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := repo.db.WithContext(ctx).
		Preload("SocialLinks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, notFound(err, "User")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ? OR email = ?", username, email).First(&u).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return &u, nil
}

// List returns users newest first, optionally filtered by a username substring.
func (repo *UserRepositoryDatabase) List(ctx context.Context, username string) ([]*user.User, error) {
	var users []*user.User
	q := repo.db.WithContext(ctx).Model(&user.User{})
	if username != "" {
		q = q.Where("LOWER(username) LIKE ? ESCAPE '!'", containsPattern(username))
	}
	if err := q.Order("created_at DESC").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (repo *UserRepositoryDatabase) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := repo.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return apperr.Validation("Validation error", map[string]string{"email": "email already taken"})
		}
		return fmt.Errorf("update user: %w", res.Error)
	}
	return nil
}

func (repo *UserRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&user.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("User")
		}
		return deleteUser(tx, id)
	})
}

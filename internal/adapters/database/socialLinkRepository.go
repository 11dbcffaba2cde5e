package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type SocialLinkRepositoryDatabase struct {
	db *gorm.DB
}

func NewSocialLinkRepositoryDatabase(db *gorm.DB) *SocialLinkRepositoryDatabase {
	return &SocialLinkRepositoryDatabase{db: db}
}

func (repo *SocialLinkRepositoryDatabase) Create(ctx context.Context, link *user.SocialLink) (*user.SocialLink, error) {
	if link.ID == uuid.Nil {
		link.ID = newID()
	}
	if err := repo.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, fmt.Errorf("create social link: %w", err)
	}
	return link, nil
}

func (repo *SocialLinkRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.SocialLink, error) {
	var link user.SocialLink
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, notFound(err, "Social link")
	}
	return &link, nil
}

func (repo *SocialLinkRepositoryDatabase) ListByUser(ctx context.Context, userID string) ([]*user.SocialLink, error) {
	var links []*user.SocialLink
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	return links, nil
}

func (repo *SocialLinkRepositoryDatabase) Update(ctx context.Context, id, link string) error {
	if err := repo.db.WithContext(ctx).Model(&user.SocialLink{}).Where("id = ?", id).Update("link", link).Error; err != nil {
		return fmt.Errorf("update social link: %w", err)
	}
	return nil
}

func (repo *SocialLinkRepositoryDatabase) Delete(ctx context.Context, id string) error {
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&user.SocialLink{}).Error; err != nil {
		return fmt.Errorf("delete social link: %w", err)
	}
	return nil
}

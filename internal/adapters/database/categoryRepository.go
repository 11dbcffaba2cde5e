package database

import (
	"context"
	"fmt"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/category"
	"inkwell/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CategoryRepositoryDatabase struct {
	db *gorm.DB
}

func NewCategoryRepositoryDatabase(db *gorm.DB) *CategoryRepositoryDatabase {
	return &CategoryRepositoryDatabase{db: db}
}

func (repo *CategoryRepositoryDatabase) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	if c.ID == uuid.Nil {
		c.ID = newID()
	}
	if err := repo.db.WithContext(ctx).Create(c).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperr.Validation("Validation error", map[string]string{"name": "category with this name already exists"})
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (repo *CategoryRepositoryDatabase) FindByID(ctx context.Context, id string) (*category.Category, error) {
	var c category.Category
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err, "Category")
	}
	return &c, nil
}

func (repo *CategoryRepositoryDatabase) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var c category.Category
	if err := repo.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, notFound(err, "Category")
	}
	return &c, nil
}

func (repo *CategoryRepositoryDatabase) List(ctx context.Context) ([]*category.Category, error) {
	var categories []*category.Category
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (repo *CategoryRepositoryDatabase) Rename(ctx context.Context, id, name string) error {
	err := repo.db.WithContext(ctx).Model(&category.Category{}).Where("id = ?", id).Update("name", name).Error
	if err != nil {
		if isDuplicate(err) {
			return apperr.Validation("Validation error", map[string]string{"name": "category with this name already exists"})
		}
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// Delete nulls posts.category_id and removes the category in one transaction. Posts are
// never deleted along with their category.
func (repo *CategoryRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post.Post{}).Where("category_id = ?", id).UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&category.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Category")
		}
		return nil
	})
}

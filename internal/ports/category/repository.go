package category

import (
	"context"
	"time"

	"inkwell/internal/core/category"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *category.Category) (*category.Category, error)
	FindByID(ctx context.Context, id string) (*category.Category, error)
	FindByName(ctx context.Context, name string) (*category.Category, error)
	List(ctx context.Context) ([]*category.Category, error)
	Rename(ctx context.Context, id, name string) error
	// Delete detaches the category from its posts and removes it.
	Delete(ctx context.Context, id string) error
}

type CategoryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCategoryDTO(c *category.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{ID: c.ID.String(), Name: c.Name, CreatedAt: c.CreatedAt}
}

package categoryapp

import (
	"context"
	"strings"
	"unicode/utf8"

	"inkwell/internal/core/apperr"
	categoryEntity "inkwell/internal/core/category"
	categoryPort "inkwell/internal/ports/category"

	"github.com/gofrs/uuid"
)

const maxNameLen = 100

type CategoryService struct {
	CategoryRepository categoryPort.CategoryRepository
}

func NewCategoryService(repo categoryPort.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepository: repo}
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("Validation error", map[string]string{"name": "This field is required."})
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", apperr.Validation("Validation error", map[string]string{"name": "Ensure this field has no more than 100 characters."})
	}
	return name, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*categoryPort.CategoryDTO, error) {
	categories, err := s.CategoryRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*categoryPort.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryPort.ToCategoryDTO(c))
	}
	return out, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*categoryPort.CategoryDTO, error) {
	c, err := s.CategoryRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return categoryPort.ToCategoryDTO(c), nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, actorID, name string) (*categoryPort.CategoryDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.CategoryRepository.FindByName(ctx, name); err == nil {
		return nil, apperr.Validation("Validation error", map[string]string{"name": "category with this name already exists"})
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	c, err := s.CategoryRepository.Create(ctx, &categoryEntity.Category{ID: uuid.Must(uuid.NewV4()), Name: name})
	if err != nil {
		return nil, err
	}
	return categoryPort.ToCategoryDTO(c), nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, actorID, id, name string) (*categoryPort.CategoryDTO, error) {
	if actorID == "" {
		return nil, apperr.ErrUnauthorized
	}
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.CategoryRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Name == name {
		return categoryPort.ToCategoryDTO(c), nil
	}
	if err := s.CategoryRepository.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	c.Name = name
	return categoryPort.ToCategoryDTO(c), nil
}

// DeleteCategory keeps the category's posts and clears their category.
func (s *CategoryService) DeleteCategory(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return apperr.ErrUnauthorized
	}
	return s.CategoryRepository.Delete(ctx, id)
}

package service

import (
	"context"
	"log"
	"strings"

	"corrigeaqui/internal/model"
	"corrigeaqui/internal/repository"
)

// CategoryService manages the issue category catalog.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create adds a new category. Color falls back to the default when omitted.
func (s *CategoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrCategoryNameRequired
	}

	color := req.Color
	if color == "" {
		color = model.DefaultCategoryColor
	}

	category := &model.Category{Name: name, Color: color}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err // ErrCategoryNameExists or wrapped error
	}

	log.Printf("[CategoryService] Created category %d (%s)", category.ID, category.Name)
	return category, nil
}

// GetByID returns one category.
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

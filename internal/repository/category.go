package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"corrigeaqui/internal/model"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a new category. Names are unique at the storage layer.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (name, color) VALUES ($1, $2) RETURNING id`
	err := r.db.GetContext(ctx, &category.ID, query, category.Name, category.Color)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return model.ErrCategoryNameExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := r.db.GetContext(ctx, &category, `SELECT id, name, color FROM categories WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &category, nil
}

// GetByIDs batch-loads categories for marker assembly.
func (r *categoryRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Category, error) {
	result := make(map[int64]model.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var categories []model.Category
	query := `SELECT id, name, color FROM categories WHERE id = ANY($1)`
	if err := r.db.SelectContext(ctx, &categories, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	for _, c := range categories {
		result[c.ID] = c
	}
	return result, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.SelectContext(ctx, &categories, `SELECT id, name, color FROM categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}
	return exists, nil
}

package model

import "errors"

// Category labels a post with a name and a display color. Categories are
// referenced by posts, never owned by them.
type Category struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"` // hex, e.g. "#ef4444"
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Category errors
var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameExists   = errors.New("category name already exists")
)

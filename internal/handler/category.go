package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"corrigeaqui/internal/httputil"
	"corrigeaqui/internal/model"
	"corrigeaqui/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create handles POST /categories
// Moderator only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCategoryNameRequired):
			httputil.WriteBadRequest(w, "Category name is required")
		case errors.Is(err, model.ErrCategoryNameExists):
			httputil.WriteConflict(w, "Category name already exists")
		default:
			log.Printf("[ERROR] Create category handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to create category")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, category)
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List categories handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list categories")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, categories)
}

// GetByID handles GET /categories/{id}
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetByID(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			httputil.WriteNotFound(w, "Category not found")
			return
		}
		log.Printf("[ERROR] GetByID category handler: category=%d err=%v", categoryID, err)
		httputil.WriteInternalError(w, "Failed to get category")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, category)
}

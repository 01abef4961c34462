package dto

import (
	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
	Type string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToCategoryResponse converts a category entity to its response DTO.
func ToCategoryResponse(cat entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   cat.ID,
		Name: cat.Name,
		Type: string(cat.Type),
	}
}

package services

import (
	"context"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	"github.com/fincontrolapp/fincontrol_backend/internal/dto"
)

// CategorySvcFacade exposes category CRUD. Deleting a category that is still
// referenced by transactions fails with ErrConflict.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, updaterUserID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

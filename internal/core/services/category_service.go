package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/dto"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
	}
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) validateParent(ctx context.Context, parentID *string, categoryID string) error {
	if parentID == nil {
		return nil
	}
	if *parentID == categoryID {
		return apperrors.NewAppError(http.StatusBadRequest, "category cannot be its own parent", apperrors.ErrValidation)
	}
	parent, err := s.categoryRepo.FindCategoryByID(ctx, *parentID)
	if err != nil {
		return apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("parent category %s does not exist", *parentID), apperrors.ErrValidation)
	}
	// Only one level of nesting: a subcategory cannot itself be a parent.
	if !parent.IsRoot() {
		return apperrors.NewAppError(http.StatusBadRequest, "parent category is itself a subcategory", apperrors.ErrValidation)
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if err := s.validateParent(ctx, req.ParentID, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", categoryID, err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, updaterUserID string) (*domain.Category, error) {
	existing, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s for update: %w", categoryID, err)
	}

	if err := s.validateParent(ctx, req.ParentID, categoryID); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.ParentID = req.ParentID
	existing.LastUpdatedAt = time.Now().UTC()
	existing.LastUpdatedBy = updaterUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category %s: %w", categoryID, err)
	}

	return existing, nil
}

// DeleteCategory refuses to delete a category that transactions still
// reference. The caller must reassign or delete those first.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to find category %s for deletion: %w", categoryID, err)
	}

	count, err := s.txnRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions for category", slog.String("category_id", categoryID))
		return fmt.Errorf("failed to check category %s usage: %w", categoryID, err)
	}
	if count > 0 {
		return apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("category is referenced by %d transactions", count), apperrors.ErrConflict)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	return nil
}

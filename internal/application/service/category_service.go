package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/sangkips/storepos-api/pkg/pagination"
	"github.com/sangkips/storepos-api/pkg/utils"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name string
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, apperror.NewFieldError("name", "must contain letters or digits")
	}

	// Check if slug already exists
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		Name:     name,
		Slug:     slug,
		IsActive: true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories. Inactive ones are included only when asked.
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search, !includeInactive)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	ID       uuid.UUID
	Name     *string
	IsActive *bool
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		newSlug := utils.Slugify(name)
		if newSlug == "" {
			return nil, apperror.NewFieldError("name", "must contain letters or digits")
		}
		if newSlug != category.Slug {
			existing, err := s.categoryRepo.GetBySlug(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != category.ID {
				return nil, apperror.NewConflictError("Category with this name already exists")
			}
			category.Slug = newSlug
		}
		category.Name = name
	}

	if input.IsActive != nil {
		if !*input.IsActive && category.IsActive {
			if err := s.ensureUnused(ctx, category.ID); err != nil {
				return nil, err
			}
		}
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deactivates a category. It is refused while active
// products still belong to it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	if err := s.ensureUnused(ctx, category.ID); err != nil {
		return err
	}

	category.IsActive = false
	return s.categoryRepo.Update(ctx, category)
}

func (s *CategoryService) ensureUnused(ctx context.Context, id uuid.UUID) error {
	count, err := s.productRepo.CountActiveByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Category still has active products")
	}
	return nil
}

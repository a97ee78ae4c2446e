package inventory

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
)

func (s *Service) Categories(ctx context.Context, ownerID string) ([]models.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.categories.GetAll(ctx, ownerID)
}

func (s *Service) AddCategory(ctx context.Context, ownerID, name string) (models.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Category{}, err
	}
	if errs := validateCategoryName(name); len(errs) > 0 {
		return models.Category{}, errs
	}

	created, err := s.categories.Create(ctx, models.Category{Name: strings.TrimSpace(name), OwnerID: ownerID})
	if err != nil {
		return models.Category{}, err
	}

	s.history.Append(ctx, ownerID, models.TypeAddCategory, models.CategoryAddedDetails{CategoryName: created.Name})
	return created, nil
}

// DeleteCategory removes the category. Products that reference it are kept
// and show as uncategorized from then on.
func (s *Service) DeleteCategory(ctx context.Context, ownerID, id string) (models.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Category{}, err
	}

	removed, found, err := s.categories.Delete(ctx, ownerID, id)
	if err != nil {
		return models.Category{}, err
	}
	if !found {
		return models.Category{}, repo.ErrCategoryNotFound
	}

	s.history.Append(ctx, ownerID, models.TypeDeleteCategory, models.CategoryDeletedDetails{CategoryName: removed.Name})
	return removed, nil
}

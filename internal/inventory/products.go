package inventory

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
)

// Products returns the page of the owner's products matching filter and the
// number of matches before pagination.
func (s *Service) Products(ctx context.Context, ownerID string, filter repo.ProductFilter) ([]models.Product, int, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, 0, err
	}
	products, err := s.products.GetAll(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	page, total := repo.FilterProducts(products, filter)
	return page, total, nil
}

func (s *Service) Product(ctx context.Context, ownerID, id string) (models.Product, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Product{}, err
	}
	return s.products.GetByID(ctx, ownerID, id)
}

func (s *Service) AddProduct(ctx context.Context, ownerID string, in ProductInput) (models.Product, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Product{}, err
	}
	categories, err := s.categories.GetAll(ctx, ownerID)
	if err != nil {
		return models.Product{}, err
	}
	return s.addProduct(ctx, ownerID, in, categories)
}

func (s *Service) addProduct(ctx context.Context, ownerID string, in ProductInput, categories []models.Category) (models.Product, error) {
	if errs := validateProduct(in, categories); len(errs) > 0 {
		return models.Product{}, errs
	}

	p := models.Product{
		Name:       strings.TrimSpace(in.Name),
		Quantity:   in.Quantity,
		CategoryID: in.CategoryID,
		OwnerID:    ownerID,
	}
	p.SetPriceCents(in.PriceCents)

	created, err := s.products.Create(ctx, p)
	if err != nil {
		return models.Product{}, err
	}

	s.history.Append(ctx, ownerID, models.TypeAddProduct, models.ProductAddedDetails{
		ProductID:           created.ID,
		ProductName:         created.Name,
		QuantityAdded:       created.Quantity,
		NewPrice:            created.Price,
		ProductCategoryName: models.CategoryName(categories, created.CategoryID),
	})
	return created, nil
}

// EditProduct replaces every field of the product except its id and owner.
func (s *Service) EditProduct(ctx context.Context, ownerID, id string, in ProductInput) (models.Product, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Product{}, err
	}
	existing, err := s.products.GetByID(ctx, ownerID, id)
	if err != nil {
		return models.Product{}, err
	}
	categories, err := s.categories.GetAll(ctx, ownerID)
	if err != nil {
		return models.Product{}, err
	}
	if errs := validateProduct(in, categories); len(errs) > 0 {
		return models.Product{}, errs
	}

	edited := models.Product{
		ID:         existing.ID,
		Name:       strings.TrimSpace(in.Name),
		Quantity:   in.Quantity,
		CategoryID: in.CategoryID,
		OwnerID:    existing.OwnerID,
	}
	edited.SetPriceCents(in.PriceCents)

	updated, err := s.products.Update(ctx, edited)
	if err != nil {
		return models.Product{}, err
	}

	s.history.Append(ctx, ownerID, models.TypeEditProduct, models.ProductEditedDetails{
		ProductID:           updated.ID,
		ProductName:         updated.Name,
		OldQuantity:         existing.Quantity,
		NewQuantity:         updated.Quantity,
		OldPrice:            existing.Price,
		NewPrice:            updated.Price,
		ProductCategoryName: models.CategoryName(categories, updated.CategoryID),
	})
	return updated, nil
}

// DeleteProduct removes the product. An unknown id returns
// repo.ErrProductNotFound and writes nothing.
func (s *Service) DeleteProduct(ctx context.Context, ownerID, id string) (models.Product, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Product{}, err
	}
	categories, err := s.categories.GetAll(ctx, ownerID)
	if err != nil {
		return models.Product{}, err
	}

	removed, found, err := s.products.Delete(ctx, ownerID, id)
	if err != nil {
		return models.Product{}, err
	}
	if !found {
		return models.Product{}, repo.ErrProductNotFound
	}

	s.history.Append(ctx, ownerID, models.TypeDeleteProduct, models.ProductDeletedDetails{
		ProductID:           removed.ID,
		ProductName:         removed.Name,
		QuantityRemoved:     removed.Quantity,
		OldPrice:            removed.Price,
		ProductCategoryName: models.CategoryName(categories, removed.CategoryID),
	})
	return removed, nil
}

package repo

import (
	"context"

	"github.com/rogerio-castellano/ges-stock/internal/ids"
	"github.com/rogerio-castellano/ges-stock/internal/kv"
	"github.com/rogerio-castellano/ges-stock/internal/models"
)

// KVProductRepository keeps an owner's products in the "produtos" collection.
type KVProductRepository struct {
	products *Collection[models.Product]
	ids      ids.Generator
}

func NewKVProductRepository(store kv.Store, gen ids.Generator) *KVProductRepository {
	return &KVProductRepository{
		products: NewCollection[models.Product](store, KindProducts),
		ids:      gen,
	}
}

func (r *KVProductRepository) GetAll(ctx context.Context, ownerID string) ([]models.Product, error) {
	return r.products.Load(ctx, ownerID)
}

func (r *KVProductRepository) GetByID(ctx context.Context, ownerID, id string) (models.Product, error) {
	products, err := r.products.Load(ctx, ownerID)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Create assigns a new id and appends the product.
func (r *KVProductRepository) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = r.ids.NewID()

	_, err := r.products.Update(ctx, product.OwnerID, func(products []models.Product) ([]models.Product, error) {
		return append(products, product), nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update replaces the stored product with the same id, keeping its position.
func (r *KVProductRepository) Update(ctx context.Context, product models.Product) (models.Product, error) {
	_, err := r.products.Update(ctx, product.OwnerID, func(products []models.Product) ([]models.Product, error) {
		for i, p := range products {
			if p.ID == product.ID {
				products[i] = product
				return products, nil
			}
		}
		return nil, ErrProductNotFound
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *KVProductRepository) Delete(ctx context.Context, ownerID, id string) (models.Product, bool, error) {
	var removed models.Product
	found := false

	_, err := r.products.Update(ctx, ownerID, func(products []models.Product) ([]models.Product, error) {
		kept := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.ID == id {
				removed = p
				found = true
				continue
			}
			kept = append(kept, p)
		}
		if !found {
			return nil, ErrNoChange
		}
		return kept, nil
	})
	if err != nil {
		return models.Product{}, false, err
	}
	return removed, found, nil
}

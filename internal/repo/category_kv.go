package repo

import (
	"context"

	"github.com/rogerio-castellano/ges-stock/internal/ids"
	"github.com/rogerio-castellano/ges-stock/internal/kv"
	"github.com/rogerio-castellano/ges-stock/internal/models"
)

type KVCategoryRepository struct {
	categories *Collection[models.Category]
	ids        ids.Generator
}

func NewKVCategoryRepository(store kv.Store, gen ids.Generator) *KVCategoryRepository {
	return &KVCategoryRepository{
		categories: NewCollection[models.Category](store, KindCategories),
		ids:        gen,
	}
}

func (r *KVCategoryRepository) GetAll(ctx context.Context, ownerID string) ([]models.Category, error) {
	return r.categories.Load(ctx, ownerID)
}

func (r *KVCategoryRepository) GetByID(ctx context.Context, ownerID, id string) (models.Category, error) {
	categories, err := r.categories.Load(ctx, ownerID)
	if err != nil {
		return models.Category{}, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *KVCategoryRepository) Create(ctx context.Context, category models.Category) (models.Category, error) {
	category.ID = r.ids.NewID()

	_, err := r.categories.Update(ctx, category.OwnerID, func(categories []models.Category) ([]models.Category, error) {
		return append(categories, category), nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// Delete removes the category only. Products that point at it keep their
// category id.
func (r *KVCategoryRepository) Delete(ctx context.Context, ownerID, id string) (models.Category, bool, error) {
	var removed models.Category
	found := false

	_, err := r.categories.Update(ctx, ownerID, func(categories []models.Category) ([]models.Category, error) {
		kept := make([]models.Category, 0, len(categories))
		for _, c := range categories {
			if c.ID == id {
				removed = c
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			return nil, ErrNoChange
		}
		return kept, nil
	})
	if err != nil {
		return models.Category{}, false, err
	}
	return removed, found, nil
}

package repo

import (
	"context"

	"github.com/rogerio-castellano/ges-stock/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Every call is scoped to one owner.
type ProductRepository interface {
	GetAll(ctx context.Context, ownerID string) ([]models.Product, error)
	GetByID(ctx context.Context, ownerID, id string) (models.Product, error)
	Create(ctx context.Context, product models.Product) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	// Delete reports whether a product was removed. A missing id is not an
	// error and leaves storage untouched.
	Delete(ctx context.Context, ownerID, id string) (models.Product, bool, error)
}

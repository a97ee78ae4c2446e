package repo

import (
	"context"

	"github.com/rogerio-castellano/ges-stock/internal/models"
)

// CategoryRepository has no update: categories are never renamed.
type CategoryRepository interface {
	GetAll(ctx context.Context, ownerID string) ([]models.Category, error)
	GetByID(ctx context.Context, ownerID, id string) (models.Category, error)
	Create(ctx context.Context, category models.Category) (models.Category, error)
	Delete(ctx context.Context, ownerID, id string) (models.Category, bool, error)
}

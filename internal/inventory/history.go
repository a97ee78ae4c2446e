package inventory

import (
	"context"

	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
)

type HistoryFilter struct {
	Type   models.TransactionType
	Offset *int
	Limit  *int
}

// History returns the page of the owner's log matching filter, newest first,
// and the number of matches before pagination.
func (s *Service) History(ctx context.Context, ownerID string, filter HistoryFilter) ([]models.Transaction, int, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, 0, err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, ValidationErrors{{Field: "type", Description: "Unknown transaction type"}}
	}

	all, err := s.history.Load(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	matched := []models.Transaction{}
	for _, tx := range all {
		if filter.Type == "" || tx.Type == filter.Type {
			matched = append(matched, tx)
		}
	}

	start, end := repo.Page(len(matched), filter.Offset, filter.Limit)
	return matched[start:end], len(matched), nil
}

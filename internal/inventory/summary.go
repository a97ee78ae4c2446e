package inventory

import (
	"context"

	"github.com/rogerio-castellano/ges-stock/internal/report"
)

// Summary holds the dashboard counters of one owner.
type Summary struct {
	ProductCount          int   `json:"productCount"`
	CategoryCount         int   `json:"categoryCount"`
	TotalUnits            int   `json:"totalUnits"`
	StockValueCents       int64 `json:"stockValueCents"`
	UncategorizedProducts int   `json:"uncategorizedProducts"`
	HistorySize           int   `json:"historySize"`
}

func (s *Service) Report(ctx context.Context, ownerID string) (report.Report, error) {
	if err := requireOwner(ownerID); err != nil {
		return report.Report{}, err
	}
	products, err := s.products.GetAll(ctx, ownerID)
	if err != nil {
		return report.Report{}, err
	}
	categories, err := s.categories.GetAll(ctx, ownerID)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(products, categories, s.now()), nil
}

func (s *Service) Summary(ctx context.Context, ownerID string) (Summary, error) {
	rep, err := s.Report(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	history, err := s.history.Load(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		ProductCount:    rep.ProductCount,
		CategoryCount:   rep.CategoryCount,
		TotalUnits:      rep.TotalUnits,
		StockValueCents: rep.TotalValueCents,
		HistorySize:     len(history),
	}
	for _, section := range rep.Sections {
		if section.IsUncategorized {
			sum.UncategorizedProducts = len(section.Lines)
		}
	}
	return sum, nil
}

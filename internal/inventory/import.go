package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/ges-stock/internal/currency"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"go.uber.org/zap"
)

var ErrInvalidCSV = errors.New("invalid CSV")

var importColumns = []string{"name", "quantity", "price", "category"}

type RowError struct {
	Row         int    `json:"row"`
	Field       string `json:"field,omitempty"`
	Description string `json:"description"`
}

type ImportResult struct {
	Imported []models.Product `json:"imported"`
	Errors   []RowError       `json:"errors"`
}

// ImportProducts adds one product per CSV row. The header must name the
// columns name, quantity, price and category in any order; price is in major
// units and category is matched by name, ignoring case. Rows that fail
// validation are reported and skipped. A storage failure stops the import
// and is returned along with what was imported so far.
func (s *Service) ImportProducts(ctx context.Context, ownerID string, r io.Reader) (ImportResult, error) {
	result := ImportResult{Imported: []models.Product{}, Errors: []RowError{}}
	if err := requireOwner(ownerID); err != nil {
		return result, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("%w: missing header", ErrInvalidCSV)
	}
	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			return result, fmt.Errorf("%w: missing column %q", ErrInvalidCSV, col)
		}
	}

	categories, err := s.categories.GetAll(ctx, ownerID)
	if err != nil {
		return result, err
	}
	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if _, dup := byName[key]; !dup {
			byName[key] = c.ID
		}
	}

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("%w: row %d: %v", ErrInvalidCSV, rowNum, err)
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		in := ProductInput{
			Name:       field("name"),
			Quantity:   parseInt(field("quantity")),
			PriceCents: parsePriceCents(field("price")),
			CategoryID: byName[strings.ToLower(field("category"))],
		}
		if in.CategoryID == "" && field("category") != "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Field: "category", Description: fmt.Sprintf("Category %q does not exist", field("category"))})
			continue
		}

		created, err := s.addProduct(ctx, ownerID, in, categories)
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Field: v.Field, Description: v.Description})
			}
			continue
		}
		if err != nil {
			s.log.Error("import aborted", zap.String("owner_id", ownerID), zap.Int("row", rowNum), zap.Error(err))
			return result, err
		}
		result.Imported = append(result.Imported, created)
	}

	s.log.Info("products imported",
		zap.String("owner_id", ownerID),
		zap.Int("imported", len(result.Imported)),
		zap.Int("rejected_rows", len(result.Errors)))
	return result, nil
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parsePriceCents(s string) int64 {
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return 0
	}
	return currency.ToCents(v)
}

package inventory

import (
	"strings"

	"github.com/rogerio-castellano/ges-stock/internal/models"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationErrors is returned when input is rejected before anything is
// written.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Description)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ProductInput is what a caller supplies to add or edit a product.
type ProductInput struct {
	Name       string
	Quantity   int
	PriceCents int64
	CategoryID string
}

func validateProduct(in ProductInput, categories []models.Category) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Description: "Name is required"})
	}
	if in.Quantity <= 0 {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Quantity must be greater than zero"})
	}
	if in.PriceCents <= 0 {
		errs = append(errs, ValidationError{Field: "price", Description: "Price must be greater than zero"})
	}
	switch {
	case in.CategoryID == "":
		errs = append(errs, ValidationError{Field: "category", Description: "Category is required"})
	case !hasCategory(categories, in.CategoryID):
		errs = append(errs, ValidationError{Field: "category", Description: "Category does not exist"})
	}
	return errs
}

func validateCategoryName(name string) ValidationErrors {
	if strings.TrimSpace(name) == "" {
		return ValidationErrors{{Field: "name", Description: "Name is required"}}
	}
	return nil
}

func hasCategory(categories []models.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

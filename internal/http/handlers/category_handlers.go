package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/ges-stock/internal/auth"
)

// GetCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} CategoryResponse
// @Failure 500 {string} string "Internal error"
// @Router /categories [get]
// @Security BearerAuth
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := inventoryService.Categories(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		writeError(w, r, err, "fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{ID: c.ID, Name: c.Name}
	}
	respond(w, http.StatusOK, response)
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} CategoryResponse
// @Failure 400 {array} inventory.ValidationError
// @Router /categories [post]
// @Security BearerAuth
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	created, err := inventoryService.AddCategory(r.Context(), auth.OwnerID(r.Context()), req.Name)
	if err != nil {
		writeError(w, r, err, "create category")
		return
	}
	respond(w, http.StatusCreated, CategoryResponse{ID: created.ID, Name: created.Name})
}

// DeleteCategoryHandler godoc
// @Summary Delete a category
// @Description Products in the category are kept and become uncategorized.
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /categories/{id} [delete]
// @Security BearerAuth
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := inventoryService.DeleteCategory(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		writeError(w, r, err, "delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

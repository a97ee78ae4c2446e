package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/ges-stock/internal/auth"
	"github.com/rogerio-castellano/ges-stock/internal/inventory"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
)

// categoriesFor loads the categories used to resolve category names. A
// failure only degrades names to "Uncategorized".
func categoriesFor(r *http.Request) []models.Category {
	categories, err := inventoryService.Categories(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		return nil
	}
	return categories
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} inventory.ValidationError
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	created, err := inventoryService.AddProduct(r.Context(), auth.OwnerID(r.Context()), req.input())
	if err != nil {
		writeError(w, r, err, "create product")
		return
	}
	respond(w, http.StatusCreated, toProductResponse(created, categoriesFor(r)))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
// @Security BearerAuth
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := inventoryService.Product(r.Context(), auth.OwnerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "fetch product")
		return
	}
	respond(w, http.StatusOK, toProductResponse(product, categoriesFor(r)))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := inventoryService.DeleteProduct(r.Context(), auth.OwnerID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} inventory.ValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	updated, err := inventoryService.EditProduct(r.Context(), auth.OwnerID(r.Context()), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, r, err, "update product")
		return
	}
	respond(w, http.StatusOK, toProductResponse(updated, categoriesFor(r)))
}

// FilterProductsHandler godoc
// @Summary List, filter and paginate products
// @Tags products
// @Produce json
// @Param name query string false "Filter by name"
// @Param category_id query string false "Filter by category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {array} inventory.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
// @Security BearerAuth
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, limit, errs := pageParams(r)

	filter := repo.ProductFilter{
		Name:       q.Get("name"),
		CategoryID: q.Get("category_id"),
		Offset:     offset,
		Limit:      limit,
	}

	var err error
	if filter.MinPrice, err = parseFloatPtr(q.Get("minPrice")); err != nil {
		errs = append(errs, inventory.ValidationError{Field: "minPrice", Description: "Minimum price must be a number"})
	}
	if filter.MaxPrice, err = parseFloatPtr(q.Get("maxPrice")); err != nil {
		errs = append(errs, inventory.ValidationError{Field: "maxPrice", Description: "Maximum price must be a number"})
	}
	if filter.MinQty, err = parseIntPtr(q.Get("minQty")); err != nil {
		errs = append(errs, inventory.ValidationError{Field: "minQty", Description: "Minimum quantity must be a number"})
	}
	if filter.MaxQty, err = parseIntPtr(q.Get("maxQty")); err != nil {
		errs = append(errs, inventory.ValidationError{Field: "maxQty", Description: "Maximum quantity must be a number"})
	}
	if len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	products, total, err := inventoryService.Products(r.Context(), auth.OwnerID(r.Context()), filter)
	if err != nil {
		writeError(w, r, err, "filter products")
		return
	}

	categories := categoriesFor(r)
	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range products {
		resp.Data[i] = toProductResponse(p, categories)
	}
	respond(w, http.StatusOK, resp)
}

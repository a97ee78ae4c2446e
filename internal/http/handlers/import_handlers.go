package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/ges-stock/internal/auth"
)

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, quantity, price, category (matched by name).
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := inventoryService.ImportProducts(r.Context(), auth.OwnerID(r.Context()), file)
	if err != nil {
		writeError(w, r, err, "import products")
		return
	}

	categories := categoriesFor(r)
	resp := ImportProductsResult{
		ImportedProductsCount: len(result.Imported),
		Products:              make([]ProductResponse, len(result.Imported)),
		Errors:                result.Errors,
	}
	for i, p := range result.Imported {
		resp.Products[i] = toProductResponse(p, categories)
	}
	respond(w, http.StatusOK, resp)
}

package handlers

import (
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/currency"
	"github.com/rogerio-castellano/ges-stock/internal/inventory"
	"github.com/rogerio-castellano/ges-stock/internal/models"
)

type ProductRequest struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	// Unit price in major units, rounded to cents
	Price      float64 `json:"price"`
	CategoryID string  `json:"category_id"`
}

func (p ProductRequest) input() inventory.ProductInput {
	return inventory.ProductInput{
		Name:       p.Name,
		Quantity:   p.Quantity,
		PriceCents: currency.ToCents(p.Price),
		CategoryID: p.CategoryID,
	}
}

type ProductResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	PriceFormatted string  `json:"price_formatted"`
	CategoryID     string  `json:"category_id"`
	CategoryName   string  `json:"category_name"`
}

func toProductResponse(p models.Product, categories []models.Category) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Quantity:       p.Quantity,
		Price:          p.Price,
		PriceFormatted: currency.FormatCents(p.PriceCents()),
		CategoryID:     p.CategoryID,
		CategoryName:   models.CategoryName(categories, p.CategoryID),
	}
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TransactionResponse struct {
	ID          string                    `json:"id"`
	Type        models.TransactionType    `json:"type"`
	Timestamp   string                    `json:"timestamp"`
	Description string                    `json:"description"`
	Details     models.TransactionDetails `json:"details,omitempty"`
}

func toTransactionResponse(tx models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		Timestamp:   tx.Timestamp,
		Description: tx.Description(),
		Details:     tx.Details,
	}
}

type TransactionsSearchResult struct {
	Data []TransactionResponse `json:"data"`
	Meta Meta                  `json:"meta,omitempty"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	CompanyName     string `json:"company_name"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
}

type ProfileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
}

func toProfileResponse(u models.User) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CompanyName: u.CompanyName,
	}
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                  `json:"imported"`
	Products              []ProductResponse    `json:"products"`
	Errors                []inventory.RowError `json:"errors"`
}

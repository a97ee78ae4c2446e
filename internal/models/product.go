package models

import "github.com/rogerio-castellano/ges-stock/internal/currency"

// Product is one stock line owned by a user. The json names match the records
// the mobile app already wrote to device storage.
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"nome"`
	Quantity   int     `json:"quantidade"`
	Price      float64 `json:"preco"`
	CategoryID string  `json:"categoriaId"`
	OwnerID    string  `json:"userId"`
}

// PriceCents returns the unit price in minor units.
func (p Product) PriceCents() int64 {
	return currency.ToCents(p.Price)
}

// SetPriceCents stores a minor-unit price as major units.
func (p *Product) SetPriceCents(cents int64) {
	p.Price = currency.ToMajor(cents)
}

// ValueCents is quantity times unit price, in minor units.
func (p Product) ValueCents() int64 {
	return int64(p.Quantity) * p.PriceCents()
}

// Package report builds the stock report and renders it as HTML or CSV.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/models"
)

type Line struct {
	ProductID     string `json:"productId"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	PriceCents    int64  `json:"priceCents"`
	SubtotalCents int64  `json:"subtotalCents"`
}

// Section groups the lines of one category.
type Section struct {
	CategoryID      string `json:"categoryId,omitempty"`
	CategoryName    string `json:"categoryName"`
	Lines           []Line `json:"lines"`
	Units           int    `json:"units"`
	ValueCents      int64  `json:"valueCents"`
	IsUncategorized bool   `json:"uncategorized"`
}

type Report struct {
	GeneratedAt     time.Time `json:"generatedAt"`
	ProductCount    int       `json:"productCount"`
	CategoryCount   int       `json:"categoryCount"`
	TotalUnits      int       `json:"totalUnits"`
	TotalValueCents int64     `json:"totalValueCents"`
	Sections        []Section `json:"sections"`
}

// Build groups products by category. Categories without products are left
// out and appear in name order. Products whose category id is empty or
// unknown go to a final Uncategorized section.
func Build(products []models.Product, categories []models.Category, generatedAt time.Time) Report {
	rep := Report{
		GeneratedAt:   generatedAt,
		ProductCount:  len(products),
		CategoryCount: len(categories),
		Sections:      []Section{},
	}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	byCategory := map[string][]models.Product{}
	var uncategorized []models.Product
	for _, p := range products {
		rep.TotalUnits += p.Quantity
		rep.TotalValueCents += p.ValueCents()
		if p.CategoryID == "" || !known[p.CategoryID] {
			uncategorized = append(uncategorized, p)
			continue
		}
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	sorted := append([]models.Category(nil), categories...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	for _, c := range sorted {
		items := byCategory[c.ID]
		if len(items) == 0 {
			continue
		}
		// ids are unique, but guard against a category listed twice
		delete(byCategory, c.ID)
		rep.Sections = append(rep.Sections, newSection(c.ID, c.Name, items))
	}

	if len(uncategorized) > 0 {
		s := newSection("", models.UncategorizedName, uncategorized)
		s.IsUncategorized = true
		rep.Sections = append(rep.Sections, s)
	}
	return rep
}

func newSection(id, name string, products []models.Product) Section {
	s := Section{CategoryID: id, CategoryName: name, Lines: make([]Line, 0, len(products))}
	for _, p := range products {
		line := Line{
			ProductID:     p.ID,
			Name:          p.Name,
			Quantity:      p.Quantity,
			PriceCents:    p.PriceCents(),
			SubtotalCents: p.ValueCents(),
		}
		s.Lines = append(s.Lines, line)
		s.Units += line.Quantity
		s.ValueCents += line.SubtotalCents
	}
	return s
}

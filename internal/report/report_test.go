package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func sample() ([]models.Product, []models.Category) {
	categories := []models.Category{
		{ID: "c2", Name: "Tools"},
		{ID: "c1", Name: "Electronics"},
		{ID: "c3", Name: "Empty"},
	}
	products := []models.Product{
		{ID: "p1", Name: "Hammer", Quantity: 3, Price: 12.5, CategoryID: "c2"},
		{ID: "p2", Name: "Cable", Quantity: 10, Price: 0.99, CategoryID: "c1"},
		{ID: "p3", Name: "Orphan", Quantity: 1, Price: 5, CategoryID: "gone"},
		{ID: "p4", Name: "Loose", Quantity: 2, Price: 1, CategoryID: ""},
		{ID: "p5", Name: "Saw", Quantity: 1, Price: 20, CategoryID: "c2"},
	}
	return products, categories
}

func TestBuild(t *testing.T) {
	products, categories := sample()
	rep := Build(products, categories, generatedAt)

	assert.Equal(t, generatedAt, rep.GeneratedAt)
	assert.Equal(t, 5, rep.ProductCount)
	assert.Equal(t, 3, rep.CategoryCount)
	assert.Equal(t, 17, rep.TotalUnits)
	// 3*1250 + 10*99 + 1*500 + 2*100 + 1*2000
	assert.Equal(t, int64(7440), rep.TotalValueCents)

	require.Len(t, rep.Sections, 3)
	assert.Equal(t, "Electronics", rep.Sections[0].CategoryName)
	assert.Equal(t, "Tools", rep.Sections[1].CategoryName)
	assert.Equal(t, models.UncategorizedName, rep.Sections[2].CategoryName)
	assert.True(t, rep.Sections[2].IsUncategorized)

	tools := rep.Sections[1]
	require.Len(t, tools.Lines, 2)
	assert.Equal(t, int64(3750), tools.Lines[0].SubtotalCents)
	assert.Equal(t, 4, tools.Units)
	assert.Equal(t, int64(5750), tools.ValueCents)

	var names []string
	for _, l := range rep.Sections[2].Lines {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Orphan", "Loose"}, names)
}

func TestBuild_Empty(t *testing.T) {
	rep := Build(nil, nil, generatedAt)
	assert.NotNil(t, rep.Sections)
	assert.Empty(t, rep.Sections)
	assert.Zero(t, rep.TotalValueCents)
}

func TestWriteHTML(t *testing.T) {
	products, categories := sample()
	products = append(products, models.Product{ID: "p6", Name: "<b>bold</b>", Quantity: 1, Price: 1, CategoryID: "c1"})

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, Build(products, categories, generatedAt)))

	out := buf.String()
	assert.Contains(t, out, "Category: Electronics")
	assert.Contains(t, out, "Products without category")
	assert.Contains(t, out, "$37.50")
	assert.Contains(t, out, "2025-06-01 09:00")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, out, "<b>bold</b>")
	assert.NotContains(t, out, "Category: Empty")
}

func TestWriteHTML_NoProducts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, Build(nil, nil, generatedAt)))
	assert.Contains(t, buf.String(), "No products registered.")
}

func TestWriteCSV(t *testing.T) {
	products, categories := sample()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Build(products, categories, generatedAt)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"category", "name", "quantity", "unit_price", "subtotal"}, rows[0])
	assert.Equal(t, []string{"Electronics", "Cable", "10", "$0.99", "$9.90"}, rows[1])
	assert.Equal(t, []string{"TOTAL", "", "17", "", "$74.40"}, rows[6])
}

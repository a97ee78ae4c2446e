package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTransaction_RoundTripsEveryVariant(t *testing.T) {
	history := []Transaction{
		{ID: "1", UserID: "u1", Type: TypeAddCategory, Timestamp: "2025-01-01T10:00:00.000Z", Details: CategoryAddedDetails{CategoryName: "Tools"}},
		{ID: "2", UserID: "u1", Type: TypeDeleteCategory, Timestamp: "2025-01-01T10:00:01.000Z", Details: CategoryDeletedDetails{CategoryName: "Tools"}},
		{ID: "3", UserID: "u1", Type: TypeAddProduct, Timestamp: "2025-01-01T10:00:02.000Z", Details: ProductAddedDetails{ProductID: "p1", ProductName: "Widget", QuantityAdded: 5, NewPrice: 9.99, ProductCategoryName: "Tools"}},
		{ID: "4", UserID: "u1", Type: TypeEditProduct, Timestamp: "2025-01-01T10:00:03.000Z", Details: ProductEditedDetails{ProductID: "p1", ProductName: "Widget", OldQuantity: 5, NewQuantity: 7, OldPrice: 9.99, NewPrice: 10.5, ProductCategoryName: "Tools"}},
		{ID: "5", UserID: "u1", Type: TypeDeleteProduct, Timestamp: "2025-01-01T10:00:04.000Z", Details: ProductDeletedDetails{ProductID: "p1", ProductName: "Widget", QuantityRemoved: 7, OldPrice: 10.5, ProductCategoryName: UncategorizedName}},
		{ID: "6", UserID: "u1", Type: TypeEditProfile, Timestamp: "2025-01-01T10:00:05.000Z", Details: ProfileEditedDetails{OldFirstName: nil, NewFirstName: strPtr("Ana"), OldLastName: strPtr("S"), NewLastName: strPtr("Silva"), OldCompanyName: nil, NewCompanyName: strPtr("Loja")}},
		{ID: "7", UserID: "u1", Type: TypeChangePassword, Timestamp: "2025-01-01T10:00:06.000Z"},
		{ID: "8", UserID: "u1", Type: TypeLogout, Timestamp: "2025-01-01T10:00:07.000Z"},
	}

	data, err := json.Marshal(history)
	require.NoError(t, err)

	var decoded []Transaction
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(history))
	for i := range history {
		assert.Equal(t, history[i].ID, decoded[i].ID)
		assert.Equal(t, history[i].UserID, decoded[i].UserID)
		assert.Equal(t, history[i].Type, decoded[i].Type)
		assert.Equal(t, history[i].Timestamp, decoded[i].Timestamp)
		assert.Equal(t, history[i].Details, decoded[i].Details)
	}

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestTransaction_WireFormatMatchesStoredHistory(t *testing.T) {
	stored := `{"id":"1718000000000","userId":"user_2x","type":"add_product","timestamp":"2024-06-10T06:13:20.000Z",` +
		`"details":{"productName":"Caneta","quantityAdded":10,"newPrice":2.5,"productCategoryName":"Papelaria"}}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(stored), &tx))

	assert.Equal(t, TypeAddProduct, tx.Type)
	assert.Equal(t, "user_2x", tx.UserID)
	assert.Equal(t, ProductAddedDetails{ProductName: "Caneta", QuantityAdded: 10, NewPrice: 2.5, ProductCategoryName: "Papelaria"}, tx.Details)

	out, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(out))
}

func TestTransaction_NoDetailsOmitsField(t *testing.T) {
	out, err := json.Marshal(Transaction{ID: "1", UserID: "u1", Type: TypeLogout, Timestamp: "2025-01-01T00:00:00.000Z"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","userId":"u1","type":"logout","timestamp":"2025-01-01T00:00:00.000Z"}`, string(out))
}

func TestTransaction_UnknownTypeSurvives(t *testing.T) {
	stored := `{"id":"9","userId":"u1","type":"adjust_stock","timestamp":"2025-01-01T00:00:00.000Z","details":{"delta":-3,"note":"broken"}}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(stored), &tx))
	assert.False(t, tx.Type.Valid())
	assert.Equal(t, UnknownDetails{Kind: "adjust_stock", Fields: map[string]any{"delta": -3.0, "note": "broken"}}, tx.Details)
	assert.Equal(t, "Unknown transaction (adjust_stock).", tx.Description())

	out, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(out))
}

func TestTransaction_MismatchedDetailsKeptAsStored(t *testing.T) {
	stored := `{"id":"1","userId":"u1","type":"add_product","timestamp":"2025-01-01T00:00:00.000Z",` +
		`"details":{"productName":"Caneta","quantityAdded":"5","newPrice":null}}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(stored), &tx))

	assert.Equal(t, TypeAddProduct, tx.Type)
	require.IsType(t, UnknownDetails{}, tx.Details)
	assert.Equal(t, TypeAddProduct, tx.Details.Type())
	assert.Equal(t, map[string]any{"productName": "Caneta", "quantityAdded": "5", "newPrice": nil}, tx.Details.(UnknownDetails).Fields)
	assert.Equal(t, "Product added.", tx.Description())

	out, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(out))
}

func TestTransaction_StoredKeysPreserved(t *testing.T) {
	tests := map[string]string{
		"missing profile key": `{"id":"1","userId":"u1","type":"edit_profile","timestamp":"2025-01-01T00:00:00.000Z",` +
			`"details":{"oldFirstName":null,"newFirstName":"Ana"}}`,
		"extra details key": `{"id":"2","userId":"u1","type":"add_product","timestamp":"2025-01-01T00:00:00.000Z",` +
			`"details":{"productName":"Caneta","quantityAdded":5,"newPrice":2.5,"productCategoryName":"Papelaria","extra":"x"}}`,
		"details not an object": `{"id":"3","userId":"u1","type":"add_category","timestamp":"2025-01-01T00:00:00.000Z","details":"Tools"}`,
	}
	for name, stored := range tests {
		t.Run(name, func(t *testing.T) {
			var tx Transaction
			require.NoError(t, json.Unmarshal([]byte(stored), &tx))

			out, err := json.Marshal(tx)
			require.NoError(t, err)
			assert.JSONEq(t, stored, string(out))
		})
	}
}

func TestTransaction_Description(t *testing.T) {
	tests := []struct {
		tx   Transaction
		want string
	}{
		{Transaction{Type: TypeAddCategory, Details: CategoryAddedDetails{CategoryName: "Tools"}}, `Category "Tools" added.`},
		{Transaction{Type: TypeDeleteCategory, Details: CategoryDeletedDetails{CategoryName: "Tools"}}, `Category "Tools" deleted.`},
		{Transaction{Type: TypeAddProduct, Details: ProductAddedDetails{ProductName: "Widget", QuantityAdded: 5, ProductCategoryName: "Tools"}}, `Product "Widget" (5 units) added to category "Tools".`},
		{Transaction{Type: TypeEditProduct, Details: ProductEditedDetails{ProductName: "Widget", OldQuantity: 5, NewQuantity: 7, OldPrice: 9.99, NewPrice: 10.5}}, `Product "Widget" edited. Qty: 5 -> 7. Price: 9.99 -> 10.50.`},
		{Transaction{Type: TypeDeleteProduct, Details: ProductDeletedDetails{ProductName: "Widget", QuantityRemoved: 7, ProductCategoryName: "Tools"}}, `Product "Widget" (7 units) deleted from category "Tools".`},
		{Transaction{Type: TypeChangePassword}, "Password changed."},
		{Transaction{Type: TypeLogout}, "Logged out."},
		{Transaction{Type: TypeEditProfile}, "Profile updated."},
		{Transaction{Type: TypeEditProduct, Details: UnknownDetails{Kind: TypeEditProduct}}, "Product edited."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tx.Description())
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 89_000_000, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "2025-03-04T08:06:07.089Z", FormatTimestamp(ts))
}

func TestTransactionType_Valid(t *testing.T) {
	for _, typ := range TransactionTypes() {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, TransactionType("rename_category").Valid())
}

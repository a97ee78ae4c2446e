package txlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/ids"
	"github.com/rogerio-castellano/ges-stock/internal/kv"
	"github.com/rogerio-castellano/ges-stock/internal/logger"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	kv.Store
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("write refused")
}

func newTestLog(store kv.Store) *Log {
	return New(store, ids.NewTimestamp(), logger.Nop())
}

func TestLoad_EmptyHistory(t *testing.T) {
	l := newTestLog(kv.NewMemoryStore())

	history, err := l.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestAppend_NewestFirst(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(kv.NewMemoryStore())

	l.Append(ctx, "u1", models.TypeAddCategory, models.CategoryAddedDetails{CategoryName: "Tools"})
	l.Append(ctx, "u1", models.TypeAddProduct, models.ProductAddedDetails{ProductName: "Hammer", QuantityAdded: 1})
	l.Append(ctx, "u1", models.TypeDeleteProduct, models.ProductDeletedDetails{ProductName: "Hammer", QuantityRemoved: 1})

	history, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 3)

	var types []models.TransactionType
	for _, tx := range history {
		types = append(types, tx.Type)
		assert.Equal(t, "u1", tx.UserID)
		assert.NotEmpty(t, tx.ID)
	}
	assert.Equal(t, []models.TransactionType{models.TypeDeleteProduct, models.TypeAddProduct, models.TypeAddCategory}, types)
}

func TestAppend_RecordShape(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(kv.NewMemoryStore())
	l.now = func() time.Time { return time.Date(2025, 5, 1, 12, 30, 0, 250_000_000, time.UTC) }

	l.Append(ctx, "u1", models.TypeLogout, nil)

	history, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TypeLogout, history[0].Type)
	assert.Equal(t, "2025-05-01T12:30:00.250Z", history[0].Timestamp)
	assert.Nil(t, history[0].Details)
}

func TestAppend_TruncatesToCapacity(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(kv.NewMemoryStore())

	for i := 0; i < Capacity+1; i++ {
		l.Append(ctx, "u1", models.TypeAddCategory, models.CategoryAddedDetails{CategoryName: fmt.Sprintf("cat-%d", i)})

		history, err := l.Load(ctx, "u1")
		require.NoError(t, err)
		require.LessOrEqual(t, len(history), Capacity)
	}

	history, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, Capacity)

	assert.Equal(t, models.CategoryAddedDetails{CategoryName: fmt.Sprintf("cat-%d", Capacity)}, history[0].Details)
	assert.Equal(t, models.CategoryAddedDetails{CategoryName: "cat-1"}, history[Capacity-1].Details)
	for _, tx := range history {
		assert.NotEqual(t, models.CategoryAddedDetails{CategoryName: "cat-0"}, tx.Details, "oldest entry must be dropped")
	}
}

func TestAppend_OwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(kv.NewMemoryStore())

	l.Append(ctx, "u1", models.TypeLogout, nil)

	history, err := l.Load(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAppend_FailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := failingStore{Store: kv.NewMemoryStore()}
	l := newTestLog(store)

	assert.NotPanics(t, func() {
		l.Append(ctx, "u1", models.TypeChangePassword, nil)
	})

	history, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAppend_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	l := newTestLog(store)

	l.Append(ctx, "", models.TypeLogout, nil)
	l.Append(ctx, "u1", models.TypeAddProduct, models.CategoryAddedDetails{CategoryName: "wrong"})

	history, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAppend_KeepsLegacyEntriesAsStored(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	l := newTestLog(store)

	legacy := []string{
		`{"id":"1718000000001","userId":"u1","type":"add_product","timestamp":"2024-06-10T06:13:20.001Z",` +
			`"details":{"productName":"Caneta","quantityAdded":"5","newPrice":null,"extra":"x"}}`,
		`{"id":"1718000000000","userId":"u1","type":"edit_profile","timestamp":"2024-06-10T06:13:20.000Z",` +
			`"details":{"oldFirstName":null,"newFirstName":"Ana"}}`,
	}
	require.NoError(t, store.Set(ctx, "user_u1_transactions", "["+legacy[0]+","+legacy[1]+"]"))

	history, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.TypeAddProduct, history[0].Type)
	assert.Equal(t, models.TypeAddProduct, history[0].Details.Type())

	l.Append(ctx, "u1", models.TypeLogout, nil)

	raw, found, err := store.Get(ctx, "user_u1_transactions")
	require.NoError(t, err)
	require.True(t, found)

	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 3)
	assert.Contains(t, string(entries[0]), `"type":"logout"`)
	assert.JSONEq(t, legacy[0], string(entries[1]))
	assert.JSONEq(t, legacy[1], string(entries[2]))
}

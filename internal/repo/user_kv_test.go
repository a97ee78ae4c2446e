package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rogerio-castellano/ges-stock/internal/ids"
	"github.com/rogerio-castellano/ges-stock/internal/kv"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	r := NewKVUserRepository(kv.NewMemoryStore(), ids.UUID{})

	created, err := r.CreateUser(ctx, models.User{Email: " Ana@Example.com ", FirstName: "Ana", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ana@example.com", created.Email)

	byEmail, err := r.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)

	_, err = r.CreateUser(ctx, models.User{Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)

	created.CompanyName = "Loja da Ana"
	_, err = r.UpdateUser(ctx, created)
	require.NoError(t, err)

	byID, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loja da Ana", byID.CompanyName)

	_, err = r.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = r.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = r.UpdateUser(ctx, models.User{ID: "missing"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// indexFailingStore refuses writes to the email index while fail is set.
type indexFailingStore struct {
	kv.Store
	fail bool
}

func (s *indexFailingStore) Set(ctx context.Context, key, value string) error {
	if s.fail && strings.HasPrefix(key, "account_email_") {
		return errDiskFull
	}
	return s.Store.Set(ctx, key, value)
}

type sequenceIDs struct{ n int }

func (g *sequenceIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func TestCreateUser_IndexFailureLeavesNoAccount(t *testing.T) {
	ctx := context.Background()
	store := &indexFailingStore{Store: kv.NewMemoryStore(), fail: true}
	r := NewKVUserRepository(store, &sequenceIDs{})

	_, err := r.CreateUser(ctx, models.User{Email: "ana@example.com", PasswordHash: "h"})
	require.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)

	_, err = r.GetByID(ctx, "id-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = r.GetByEmail(ctx, "ana@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	store.fail = false
	created, err := r.CreateUser(ctx, models.User{Email: "ana@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	byEmail, err := r.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

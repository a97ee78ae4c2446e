package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "user_u1_produtos")
	require.NoError(t, err)
	assert.False(t, found, "unwritten key must not be found")

	require.NoError(t, s.Set(ctx, "user_u1_produtos", `[{"id":"1"}]`))
	v, found, err := s.Get(ctx, "user_u1_produtos")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Set(ctx, "user_u1_produtos", `[]`))
	v, _, err = s.Get(ctx, "user_u1_produtos")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "set must overwrite")

	_, found, err = s.Get(ctx, "user_u2_produtos")
	require.NoError(t, err)
	assert.False(t, found, "keys are independent")

	require.NoError(t, s.Delete(ctx, "user_u1_produtos"))
	_, found, err = s.Get(ctx, "user_u1_produtos")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Delete(ctx, "never_written"), "deleting a missing key is not an error")
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	require.NoError(t, s.Close())
	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(context.Background(), "k", "v"), ErrClosed)
}

func TestSQLiteStore_ClosesOnMigrateFailure(t *testing.T) {
	var opened *gorm.DB
	orig := migrateSQLite
	migrateSQLite = func(db *gorm.DB) error {
		opened = db
		return errors.New("schema locked")
	}
	t.Cleanup(func() { migrateSQLite = orig })

	_, err := NewSQLiteStore(filepath.Join(t.TempDir(), "inventory.db"))
	require.ErrorContains(t, err, "schema locked")
	require.NotNil(t, opened)

	sqlDB, err := opened.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "connection must be closed")
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "user_u1_categorias", `[{"id":"c1"}]`))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, found, err := reopened.Get(ctx, "user_u1_categorias")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"c1"}]`, v)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client)
	defer s.Close()

	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "user_u9_transactions", "[]"))
	assert.True(t, mr.Exists("user_u9_transactions"))
}

func TestOpen_RedisAndMemory(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()

	s, err := Open(ctx, Options{Driver: "redis", RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	s.Close()

	s, err = Open(ctx, Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(ctx, Options{Driver: "etcd"})
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	s, err := NewPostgresStore(context.Background(), dsn)
	require.NoError(t, err)
	defer s.Close()

	t.Cleanup(func() {
		_, _ = s.db.Exec(`DELETE FROM kv_store WHERE key LIKE 'user_u%'`)
	})

	exerciseStore(t, s)
}

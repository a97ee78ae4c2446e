package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rogerio-castellano/ges-stock/internal/kv"
)

// Kind names one of the per-owner collections.
type Kind string

const (
	KindProducts     Kind = "produtos"
	KindCategories   Kind = "categorias"
	KindTransactions Kind = "transactions"
)

// Key is the storage key of an owner's collection, e.g. "user_u1_produtos".
func Key(ownerID string, kind Kind) string {
	return "user_" + ownerID + "_" + string(kind)
}

// ErrNoChange tells Collection.Update to skip the write.
var ErrNoChange = errors.New("no change")

// Collection stores every record of one kind for an owner as a single JSON
// array. Share one Collection per store and kind: Update only serialises
// callers that go through the same instance.
type Collection[T any] struct {
	store kv.Store
	kind  Kind
	locks keyLocks
}

func NewCollection[T any](store kv.Store, kind Kind) *Collection[T] {
	return &Collection[T]{store: store, kind: kind}
}

// Load returns the owner's records, or an empty slice if none were ever saved.
func (c *Collection[T]) Load(ctx context.Context, ownerID string) ([]T, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	key := Key(ownerID, c.kind)

	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrPersistence, key, err)
	}

	records := []T{}
	if !found || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrPersistence, key, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// SaveAll replaces the owner's whole collection with a single write.
func (c *Collection[T]) SaveAll(ctx context.Context, ownerID string, records []T) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	key := Key(ownerID, c.kind)

	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersistence, key, err)
	}
	if err := c.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrPersistence, key, err)
	}
	return nil
}

// Update loads the collection, applies fn and saves the result while holding
// the lock for the owner's key. If fn returns ErrNoChange nothing is written
// and the loaded records are returned; any other error aborts the update.
func (c *Collection[T]) Update(ctx context.Context, ownerID string, fn func([]T) ([]T, error)) ([]T, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}

	unlock := c.locks.lock(Key(ownerID, c.kind))
	defer unlock()

	records, err := c.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	updated, err := fn(records)
	if errors.Is(err, ErrNoChange) {
		return records, nil
	}
	if err != nil {
		return nil, err
	}

	if err := c.SaveAll(ctx, ownerID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// keyLocks hands out one mutex per key. An entry lives only while some caller
// holds or waits for it.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyLocks) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyLocks) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rogerio-castellano/ges-stock/internal/ids"
	"github.com/rogerio-castellano/ges-stock/internal/kv"
	"github.com/rogerio-castellano/ges-stock/internal/models"
)

// KVUserRepository stores each account under "account_<id>" and indexes it
// by lower-cased email under "account_email_<email>".
type KVUserRepository struct {
	store kv.Store
	ids   ids.Generator
	mu    sync.Mutex
}

func NewKVUserRepository(store kv.Store, gen ids.Generator) *KVUserRepository {
	return &KVUserRepository{store: store, ids: gen}
}

func accountKey(id string) string {
	return "account_" + id
}

func emailKey(email string) string {
	return "account_email_" + normalizeEmail(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *KVUserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, taken, err := r.store.Get(ctx, emailKey(u.Email))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if taken {
		return models.User{}, fmt.Errorf("%w: email %s already registered", ErrDuplicatedValueUnique, normalizeEmail(u.Email))
	}

	u.ID = r.ids.NewID()
	u.Email = normalizeEmail(u.Email)
	if err := r.put(ctx, u); err != nil {
		return models.User{}, err
	}
	if err := r.store.Set(ctx, emailKey(u.Email), u.ID); err != nil {
		// without its index the account could never log in
		if derr := r.store.Delete(ctx, accountKey(u.ID)); derr != nil {
			err = errors.Join(err, derr)
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return u, nil
}

func (r *KVUserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	raw, found, err := r.store.Get(ctx, accountKey(id))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.User{}, fmt.Errorf("%w: decode account %s: %w", ErrPersistence, id, err)
	}
	return u, nil
}

func (r *KVUserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	id, found, err := r.store.Get(ctx, emailKey(email))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdateUser overwrites an existing account. The email index is not touched.
func (r *KVUserRepository) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.GetByID(ctx, u.ID); err != nil {
		return models.User{}, err
	}
	if err := r.put(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *KVUserRepository) put(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: encode account: %w", ErrPersistence, err)
	}
	if err := r.store.Set(ctx, accountKey(u.ID), string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

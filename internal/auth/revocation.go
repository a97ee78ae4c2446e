package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/kv"
)

// Revocations is a denylist of token ids kept in the key-value store, so a
// logged out token stays rejected across restarts.
type Revocations struct {
	store kv.Store
	now   func() time.Time
}

func NewRevocations(store kv.Store) *Revocations {
	return &Revocations{store: store, now: time.Now}
}

func revokedKey(tokenID string) string {
	return "revoked_token_" + tokenID
}

// Revoke stores the token id until expiresAt.
func (r *Revocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := r.store.Set(ctx, revokedKey(tokenID), expiresAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Revocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	until, found, err := r.store.Get(ctx, revokedKey(tokenID))
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	if !found {
		return false, nil
	}

	expiresAt, err := time.Parse(time.RFC3339, until)
	if err != nil || r.now().Before(expiresAt) {
		return true, nil
	}
	// Past expiry the token is rejected on its own, so the entry can go.
	_ = r.store.Delete(ctx, revokedKey(tokenID))
	return true, nil
}

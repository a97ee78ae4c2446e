// Package kv provides the string key-value stores that back every persisted
// collection. Values are opaque strings; callers own the encoding.
package kv

import (
	"context"
	"errors"
	"fmt"
)

var ErrClosed = errors.New("store closed")

// Store is a flat string key-value namespace.
type Store interface {
	// Get returns the value stored under key. found is false when the key was
	// never written or has been deleted.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Options struct {
	Driver      string
	SQLitePath  string
	DatabaseURL string
	RedisAddr   string
}

// Open builds the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(opts.SQLitePath)
	case "postgres":
		return NewPostgresStore(ctx, opts.DatabaseURL)
	case "redis":
		return NewRedisStore(ctx, opts.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

package store

import (
	"context"
	"errors"
	"log/slog"
)

// Collection binds one entity slice to its store key.
//
// Load falls back to an empty slice without writing anything back; Save
// failures are logged and tolerated so a full disk or locked database never
// breaks the in-memory session (the current state simply isn't durable).
type Collection[T any] struct {
	store  Store
	key    string
	logger *slog.Logger
}

// NewCollection creates a collection view over key.
func NewCollection[T any](s Store, key string, logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{store: s, key: key, logger: logger}
}

// Key returns the backing store key.
func (c *Collection[T]) Key() string { return c.key }

// Load returns the stored slice, or an empty one when the key is absent or
// unreadable.
func (c *Collection[T]) Load(ctx context.Context) []T {
	var items []T
	err := c.store.Load(ctx, c.key, &items)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Error("failed to load collection", "key", c.key, "error", err)
		}
		return nil
	}
	return items
}

// Save persists the slice. Errors are reported to the diagnostic log and
// swallowed.
func (c *Collection[T]) Save(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	if err := c.store.Save(ctx, c.key, items); err != nil {
		c.logger.Error("failed to persist collection", "key", c.key, "error", err)
	}
}

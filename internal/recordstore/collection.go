package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"docverify/internal/repository"
)

// SchemaVersion is the version written into every persisted collection.
const SchemaVersion = 1

const maxConflictRetries = 5

var (
	// ErrPersistence marks failures to read or write the backing store.
	ErrPersistence = errors.New("persistence failure")
	// ErrCorrupt marks stored data that cannot be decoded.
	ErrCorrupt = errors.New("stored collection is corrupt")
	// ErrUnsupportedSchema marks data written by a newer schema.
	ErrUnsupportedSchema = errors.New("unsupported schema version")
)

type envelope[T any] struct {
	SchemaVersion int `json:"schemaVersion"`
	Items         []T `json:"items"`
}

// Collection is an ordered, versioned sequence of T persisted under one key.
// Appends within a process are serialized; appends from other processes are
// detected through the repository's version stamp and retried.
type Collection[T any] struct {
	repo repository.StateRepository
	key  string
	mu   sync.Mutex
}

// NewCollection binds a collection to a state key.
func NewCollection[T any](repo repository.StateRepository, key string) *Collection[T] {
	return &Collection[T]{repo: repo, key: key}
}

// Key returns the state key the collection is stored under.
func (c *Collection[T]) Key() string { return c.key }

// Load returns the stored items in insertion order and the version they were read at.
// A missing or cleared key yields an empty sequence. Undecodable data yields ErrCorrupt.
func (c *Collection[T]) Load(ctx context.Context) ([]T, int64, error) {
	snap, err := c.repo.Load(ctx, c.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []T{}, snap.Version, nil
		}
		return nil, 0, fmt.Errorf("%w: load %s: %w", ErrPersistence, c.key, err)
	}
	items, err := decode[T](snap.Data)
	if err != nil {
		return nil, snap.Version, fmt.Errorf("load %s: %w", c.key, err)
	}
	return items, snap.Version, nil
}

// Update applies fn to the current items and persists the result with a
// compare-and-set, retrying when another writer moved the version on.
// Stored data that cannot be decoded is never overwritten; Clear is the
// only way past it.
func (c *Collection[T]) Update(ctx context.Context, fn func(current []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		current, version, err := c.Load(ctx)
		if err != nil {
			if errors.Is(err, ErrPersistence) {
				return err
			}
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(envelope[T]{SchemaVersion: SchemaVersion, Items: next})
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.key, err)
		}

		_, err = c.repo.Save(ctx, c.key, raw, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return fmt.Errorf("%w: save %s: %w", ErrPersistence, c.key, err)
		}
	}
	return fmt.Errorf("%w: save %s: %w", ErrPersistence, c.key, repository.ErrVersionConflict)
}

// Append adds items to the end of the collection.
func (c *Collection[T]) Append(ctx context.Context, items ...T) error {
	return c.Update(ctx, func(current []T) ([]T, error) {
		return append(current, items...), nil
	})
}

// Clear deletes the whole collection.
func (c *Collection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.repo.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("%w: clear %s: %w", ErrPersistence, c.key, err)
	}
	return nil
}

// decode accepts the versioned envelope and the legacy bare-array layout.
func decode[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return items, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if env.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, env.SchemaVersion)
	}
	if env.Items == nil {
		env.Items = []T{}
	}
	return env.Items, nil
}

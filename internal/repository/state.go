package repository

import (
	"context"
	"errors"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, filesystem, memory).

var (
	// ErrNotFound is returned by Load when no value exists under the key.
	ErrNotFound = errors.New("state not found")
	// ErrVersionConflict is returned by Save when the stored version moved on.
	ErrVersionConflict = errors.New("state version conflict")
)

// AnyVersion disables the version check on Save (last write wins).
const AnyVersion int64 = -1

// Snapshot is a persisted value together with its version stamp.
// A key that was never written has version 0. A deleted key keeps counting:
// Load reports ErrNotFound together with the deletion's version, and the
// next Save must expect that version.
type Snapshot struct {
	Data    []byte
	Version int64
}

// StateRepository is a versioned key/value store for serialized application state.
// No business logic here, strictly persistence operations.
type StateRepository interface {
	// Load returns the value stored under key, or ErrNotFound. For a deleted
	// key the returned Snapshot still carries the version to expect on Save.
	Load(ctx context.Context, key string) (Snapshot, error)

	// Save writes data under key if the stored version equals expectedVersion
	// (0 meaning "must not exist yet"), returning the new version.
	// It returns ErrVersionConflict when another writer got there first.
	Save(ctx context.Context, key string, data []byte, expectedVersion int64) (int64, error)

	// Delete removes the value under key and advances its version, so writers
	// that loaded the key before the delete fail their compare-and-set.
	// Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backing medium is reachable.
	Ping(ctx context.Context) error
}

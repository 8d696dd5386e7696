package memory

import (
	"context"
	"sync"

	"docverify/internal/repository"
)

type entry struct {
	data    []byte
	version int64
	deleted bool
}

// StateMemory keeps state in process memory. It is safe for concurrent use.
type StateMemory struct {
	mu     sync.Mutex
	values map[string]entry
}

// NewStateMemory creates an empty in-memory state repository.
func NewStateMemory() *StateMemory {
	return &StateMemory{values: make(map[string]entry)}
}

var _ repository.StateRepository = (*StateMemory)(nil)

func (m *StateMemory) Load(_ context.Context, key string) (repository.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.values[key]
	if !ok {
		return repository.Snapshot{}, repository.ErrNotFound
	}
	if e.deleted {
		return repository.Snapshot{Version: e.version}, repository.ErrNotFound
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return repository.Snapshot{Data: out, Version: e.version}, nil
}

func (m *StateMemory) Save(_ context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.values[key].version
	if expectedVersion != repository.AnyVersion && expectedVersion != current {
		return 0, repository.ErrVersionConflict
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.values[key] = entry{data: stored, version: current + 1}
	return current + 1, nil
}

func (m *StateMemory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.values[key]
	if !ok || e.deleted {
		return nil
	}
	m.values[key] = entry{version: e.version + 1, deleted: true}
	return nil
}

func (m *StateMemory) Ping(context.Context) error { return nil }

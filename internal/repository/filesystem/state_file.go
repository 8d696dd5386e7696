package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"docverify/internal/repository"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// fileEnvelope is the on-disk layout of one key.
// A deleted key stays on disk as a tombstone so its version keeps increasing.
type fileEnvelope struct {
	Version int64           `json:"version"`
	Deleted bool            `json:"deleted,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// StateFile stores each key as a JSON file under a directory.
// Writes go to a temp file that is renamed into place, so a crash never
// leaves a half-written value behind. Values must be valid JSON.
type StateFile struct {
	dir string
	mu  sync.Mutex
}

// NewStateFile creates the directory if needed.
func NewStateFile(dir string) (*StateFile, error) {
	if dir == "" {
		dir = "./data/state"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &StateFile{dir: dir}, nil
}

var _ repository.StateRepository = (*StateFile)(nil)

func (s *StateFile) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid state key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *StateFile) read(key string) (fileEnvelope, error) {
	p, err := s.path(key)
	if err != nil {
		return fileEnvelope{}, err
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileEnvelope{}, repository.ErrNotFound
		}
		return fileEnvelope{}, fmt.Errorf("read state file: %w", err)
	}
	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fileEnvelope{}, fmt.Errorf("decode state file: %w", err)
	}
	return env, nil
}

func (s *StateFile) Load(_ context.Context, key string) (repository.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read(key)
	if err != nil {
		return repository.Snapshot{}, err
	}
	if env.Deleted {
		return repository.Snapshot{Version: env.Version}, repository.ErrNotFound
	}
	return repository.Snapshot{Data: []byte(env.Data), Version: env.Version}, nil
}

func (s *StateFile) Save(_ context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	if !json.Valid(data) {
		return 0, fmt.Errorf("state value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	env, err := s.read(key)
	switch {
	case err == nil:
		current = env.Version
	case errors.Is(err, repository.ErrNotFound):
	default:
		// A corrupt file can only be replaced unconditionally.
		if expectedVersion != repository.AnyVersion {
			return 0, err
		}
	}
	if expectedVersion != repository.AnyVersion && expectedVersion != current {
		return 0, repository.ErrVersionConflict
	}

	next := fileEnvelope{Version: current + 1, Data: json.RawMessage(data)}
	raw, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("encode state file: %w", err)
	}
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := writeAtomic(p, raw); err != nil {
		return 0, err
	}
	return next.Version, nil
}

func (s *StateFile) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read(key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		// Nobody can hold a version of an unreadable file, so a fresh tombstone is safe.
		env = fileEnvelope{}
	case env.Deleted:
		return nil
	}

	raw, err := json.Marshal(fileEnvelope{Version: env.Version + 1, Deleted: true, Data: json.RawMessage("null")})
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	if err := writeAtomic(p, raw); err != nil {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// Ping checks that the state directory is still there.
func (s *StateFile) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat state dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("state path %s is not a directory", s.dir)
	}
	return nil
}

func writeAtomic(path string, raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".state-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename state file: %w", err)
	}
	return nil
}

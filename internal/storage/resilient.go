package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"docverify/internal/resilience"
)

// Resilient runs writes to an underlying Storage through a resilience executor.
// Put is retried only when the reader can be rewound.
type Resilient struct {
	next Storage
	exec *resilience.Executor
}

// NewResilient wraps next.
func NewResilient(next Storage, exec *resilience.Executor) *Resilient {
	return &Resilient{next: next, exec: exec}
}

var _ Storage = (*Resilient)(nil)

func (s *Resilient) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	seeker, rewindable := r.(io.Seeker)
	var start int64
	if rewindable {
		pos, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			rewindable = false
		}
		start = pos
	}

	var info ObjectInfo
	attempt := 0
	err := s.exec.Execute(ctx, "storage.put", func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			if _, err := seeker.Seek(start, io.SeekStart); err != nil {
				return fmt.Errorf("%w: %w", errNoRewind, err)
			}
		}
		var err error
		info, err = s.next.Put(ctx, key, r, opt)
		return err
	}, func(err error) resilience.Classification {
		if !rewindable || errors.Is(err, errNoRewind) {
			return resilience.Classification{RecordFailure: true}
		}
		return resilience.DefaultClassifier(err)
	})
	return info, err
}

func (s *Resilient) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	return s.next.Get(ctx, key)
}

func (s *Resilient) Delete(ctx context.Context, key string) error {
	return s.exec.Execute(ctx, "storage.delete", func(ctx context.Context) error {
		return s.next.Delete(ctx, key)
	}, classify)
}

func (s *Resilient) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return s.next.PresignGet(ctx, key, expiry)
}

var errNoRewind = errors.New("content reader cannot be rewound")

func classify(err error) resilience.Classification {
	if errors.Is(err, ErrNotFound) {
		return resilience.Classification{}
	}
	return resilience.DefaultClassifier(err)
}

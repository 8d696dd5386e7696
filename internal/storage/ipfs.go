package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"docverify/internal/sim"
)

// IPFSGateway is the public gateway simulated content URLs point at.
const IPFSGateway = "https://ipfs.io/ipfs/"

type ipfsObject struct {
	data []byte
	info ObjectInfo
}

// SimulatedIPFS pretends to pin content on IPFS. It returns a fabricated
// "Qm" identifier after an artificial delay and keeps the bytes in memory so
// the content can be read back within the process.
type SimulatedIPFS struct {
	delay  time.Duration
	rand   io.Reader
	logger *zap.Logger

	mu      sync.RWMutex
	objects map[string]ipfsObject
}

// NewSimulatedIPFS returns a simulated node that waits delay per upload.
func NewSimulatedIPFS(delay time.Duration, logger *zap.Logger) *SimulatedIPFS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedIPFS{
		delay:   delay,
		rand:    rand.Reader,
		logger:  logger.With(zap.String("component", "simulated_ipfs")),
		objects: make(map[string]ipfsObject),
	}
}

var _ Storage = (*SimulatedIPFS)(nil)

// Put ignores key and returns the new content identifier as Key.
func (s *SimulatedIPFS) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := sim.Sleep(ctx, s.delay); err != nil {
		return ObjectInfo{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("read content: %w", err)
	}
	suffix, err := sim.Base36(s.rand, 46)
	if err != nil {
		return ObjectInfo{}, err
	}
	cid := "Qm" + suffix

	info := ObjectInfo{
		Key:          cid,
		Size:         int64(len(data)),
		ETag:         cid,
		ContentType:  opt.ContentType,
		LastModified: time.Now().UTC(),
		Metadata:     opt.Metadata,
	}
	s.mu.Lock()
	s.objects[cid] = ipfsObject{data: data, info: info}
	s.mu.Unlock()

	s.logger.Info("ipfs_upload_simulated",
		zap.String("file_name", key),
		zap.String("cid", cid),
		zap.String("gateway", IPFSGateway+cid),
	)
	return info, nil
}

func (s *SimulatedIPFS) Get(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (s *SimulatedIPFS) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// PresignGet returns the public gateway URL; IPFS content needs no signature.
func (s *SimulatedIPFS) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return IPFSGateway + key, nil
}

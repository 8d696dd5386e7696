// Package hashing computes content digests and derives the transaction
// identifiers stored on verification records.
package hashing

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"docverify/internal/model"
	"docverify/internal/sim"
)

// MaxTxIDLength caps every identifier the engine hands out.
const MaxTxIDLength = 66

// ErrDigest marks a content read failure that forced a fallback identifier.
var ErrDigest = errors.New("digest failure")

// DigestResult is the outcome of hashing one file. Kind tells a genuine
// content digest apart from a fallback identifier.
type DigestResult struct {
	Kind   model.DigestKind
	Digest string
	TxID   string
	Reason error
}

// IsFallback reports whether the identifier is unrelated to the content.
func (r DigestResult) IsFallback() bool { return r.Kind == model.DigestKindFallback }

// Engine hashes content and asks an Anchor for the transaction identifier.
type Engine struct {
	anchor Anchor
	rand   io.Reader
	now    func() time.Time
	logger *zap.Logger
}

// NewEngine returns an engine anchoring digests with anchor.
func NewEngine(anchor Anchor, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		anchor: anchor,
		rand:   rand.Reader,
		now:    time.Now,
		logger: logger.With(zap.String("component", "hash_engine")),
	}
}

// Anchor exposes the ledger the engine writes to.
func (e *Engine) Anchor() Anchor { return e.anchor }

// Digest returns the lowercase hex SHA-256 of everything read from r.
func Digest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ComputeDigest hashes r and anchors the digest. A read failure does not
// fail the call: it yields a fallback result carrying the cause in Reason.
// Context cancellation and anchor failures are returned as errors.
func (e *Engine) ComputeDigest(ctx context.Context, r io.Reader) (DigestResult, error) {
	if err := ctx.Err(); err != nil {
		return DigestResult{}, err
	}
	if r == nil {
		return e.fallback(fmt.Errorf("%w: no content", ErrDigest))
	}

	digest, err := Digest(r)
	if err != nil {
		return e.fallback(fmt.Errorf("%w: %w", ErrDigest, err))
	}

	txID, err := e.anchor.Anchor(ctx, digest)
	if err != nil {
		return DigestResult{}, fmt.Errorf("anchor digest: %w", err)
	}
	return DigestResult{Kind: model.DigestKindSHA256, Digest: digest, TxID: txID}, nil
}

func (e *Engine) fallback(reason error) (DigestResult, error) {
	txID, err := FallbackID(e.rand, e.now())
	if err != nil {
		return DigestResult{}, fmt.Errorf("%w: %w", reason, err)
	}
	e.logger.Warn("digest_fallback", zap.String("tx_id", txID), zap.Error(reason))
	return DigestResult{Kind: model.DigestKindFallback, TxID: txID, Reason: reason}, nil
}

// FallbackID builds "0x" + hex milliseconds + random base-36 characters.
func FallbackID(r io.Reader, now time.Time) (string, error) {
	suffix, err := sim.Base36(r, 11)
	if err != nil {
		return "", err
	}
	return truncate("0x" + strconv.FormatInt(now.UnixMilli(), 16) + suffix), nil
}

func truncate(id string) string {
	if len(id) > MaxTxIDLength {
		return id[:MaxTxIDLength]
	}
	return id
}

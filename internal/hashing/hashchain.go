package hashing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"docverify/internal/recordstore"
	"docverify/internal/repository"
)

// ChainKey is the state key the local hash chain is stored under.
const ChainKey = "anchorChain"

const (
	hashchainNetwork = "Local hash chain"
	genesisHash      = "0000000000000000000000000000000000000000000000000000000000000000"
)

// ErrShortDigest is returned when a digest is too short to derive an identifier.
var ErrShortDigest = errors.New("digest must have at least 40 hex characters")

// ChainEntry is one link of the hash chain.
type ChainEntry struct {
	Seq        int64     `json:"seq"`
	Digest     string    `json:"digest"`
	PrevHash   string    `json:"prevHash"`
	Hash       string    `json:"hash"`
	TxID       string    `json:"txId"`
	AnchoredAt time.Time `json:"anchoredAt"`
}

// HashChainAnchor appends every digest to a persisted chain in which each
// link commits to its predecessor. Verification recomputes the whole chain,
// so edits to stored entries are detected.
type HashChainAnchor struct {
	chain  *recordstore.Collection[ChainEntry]
	now    func() time.Time
	logger *zap.Logger
}

// NewHashChainAnchor returns an anchor persisting its chain through repo.
func NewHashChainAnchor(repo repository.StateRepository, logger *zap.Logger) *HashChainAnchor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HashChainAnchor{
		chain:  recordstore.NewCollection[ChainEntry](repo, ChainKey),
		now:    time.Now,
		logger: logger.With(zap.String("component", "hashchain_anchor")),
	}
}

func (a *HashChainAnchor) Network() string { return hashchainNetwork }

// Anchor links digest to the chain head. The identifier is "0x" + the first
// 40 digest characters + the first 24 characters of the link hash.
func (a *HashChainAnchor) Anchor(ctx context.Context, digest string) (string, error) {
	if len(digest) < 40 {
		return "", ErrShortDigest
	}
	// Refuse to build on a chain that no longer decodes.
	if _, _, err := a.chain.Load(ctx); err != nil {
		return "", err
	}

	var entry ChainEntry
	err := a.chain.Update(ctx, func(current []ChainEntry) ([]ChainEntry, error) {
		prev, seq := genesisHash, int64(1)
		if n := len(current); n > 0 {
			prev, seq = current[n-1].Hash, current[n-1].Seq+1
		}
		at := a.now().UTC()
		hash := linkHash(prev, digest, seq, at)
		entry = ChainEntry{
			Seq:        seq,
			Digest:     digest,
			PrevHash:   prev,
			Hash:       hash,
			TxID:       "0x" + digest[:40] + hash[:24],
			AnchoredAt: at,
		}
		return append(current, entry), nil
	})
	if err != nil {
		return "", fmt.Errorf("append chain entry: %w", err)
	}

	a.logger.Info("digest_anchored", zap.Int64("seq", entry.Seq), zap.String("tx_id", entry.TxID))
	return entry.TxID, nil
}

// Verify checks that txID is in the chain and that every link up to the head is intact.
func (a *HashChainAnchor) Verify(ctx context.Context, txID string) (Verification, error) {
	entries, _, err := a.chain.Load(ctx)
	if err != nil {
		return Verification{}, err
	}

	v := Verification{
		TransactionHash: txID,
		Network:         hashchainNetwork,
		CheckedAt:       a.now().UTC(),
	}

	if bad, err := checkChain(entries); err != nil {
		v.Detail = err.Error()
		a.logger.Warn("chain_integrity_failed", zap.Int64("seq", bad), zap.Error(err))
		return v, nil
	}

	for _, e := range entries {
		if e.TxID != txID {
			continue
		}
		v.Verified = true
		v.BlockNumber = e.Seq
		v.Confirmations = entries[len(entries)-1].Seq - e.Seq + 1
		return v, nil
	}
	v.Detail = "transaction not found"
	return v, nil
}

// checkChain returns the sequence number of the first broken link.
func checkChain(entries []ChainEntry) (int64, error) {
	prev := genesisHash
	for i, e := range entries {
		if e.Seq != int64(i+1) {
			return e.Seq, fmt.Errorf("entry %d has sequence %d", i+1, e.Seq)
		}
		if e.PrevHash != prev {
			return e.Seq, fmt.Errorf("entry %d does not link to its predecessor", e.Seq)
		}
		if len(e.Digest) < 40 || linkHash(e.PrevHash, e.Digest, e.Seq, e.AnchoredAt) != e.Hash {
			return e.Seq, fmt.Errorf("entry %d hash mismatch", e.Seq)
		}
		if e.TxID != "0x"+e.Digest[:40]+e.Hash[:24] {
			return e.Seq, fmt.Errorf("entry %d identifier mismatch", e.Seq)
		}
		prev = e.Hash
	}
	return 0, nil
}

func linkHash(prev, digest string, seq int64, at time.Time) string {
	h := sha256.Sum256([]byte(strings.Join([]string{
		prev,
		digest,
		strconv.FormatInt(seq, 10),
		strconv.FormatInt(at.UnixNano(), 10),
	}, "|")))
	return hex.EncodeToString(h[:])
}

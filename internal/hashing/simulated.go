package hashing

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"docverify/internal/sim"
)

const (
	simulatedNetwork   = "Ethereum (Simulated)"
	simulatedBlockBase = 15_000_000
	maxVerifyDelay     = 200 * time.Millisecond
)

// SimulatedAnchor fabricates Ethereum-style transaction identifiers from the
// digest prefix and random characters. Nothing is recorded anywhere, so
// verification can only check the identifier's shape.
type SimulatedAnchor struct {
	delay       time.Duration
	verifyDelay time.Duration
	rand        io.Reader
	now         func() time.Time
	logger      *zap.Logger
}

// NewSimulatedAnchor returns an anchor that waits delay per transaction.
func NewSimulatedAnchor(delay time.Duration, logger *zap.Logger) *SimulatedAnchor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedAnchor{
		delay:       delay,
		verifyDelay: min(delay, maxVerifyDelay),
		rand:        rand.Reader,
		now:         time.Now,
		logger:      logger.With(zap.String("component", "simulated_anchor")),
	}
}

func (a *SimulatedAnchor) Network() string { return simulatedNetwork }

// Anchor returns "0x" + the first 40 digest characters + 13 random base-36 characters.
func (a *SimulatedAnchor) Anchor(ctx context.Context, digest string) (string, error) {
	if err := sim.Sleep(ctx, a.delay); err != nil {
		return "", err
	}
	suffix, err := sim.Base36(a.rand, 13)
	if err != nil {
		return "", err
	}
	prefix := digest
	if len(prefix) > 40 {
		prefix = prefix[:40]
	}
	txID := truncate("0x" + prefix + suffix)

	a.logger.Info("transaction_simulated",
		zap.String("file_hash", digest),
		zap.String("tx_id", txID),
		zap.String("network", simulatedNetwork),
	)
	return txID, nil
}

// Verify accepts any "0x" identifier and reports made-up block data.
func (a *SimulatedAnchor) Verify(ctx context.Context, txID string) (Verification, error) {
	if err := sim.Sleep(ctx, a.verifyDelay); err != nil {
		return Verification{}, err
	}
	return Verification{
		TransactionHash: txID,
		Verified:        strings.HasPrefix(txID, "0x"),
		BlockNumber:     simulatedBlockBase + a.randInt(1_000_000),
		Confirmations:   12 + a.randInt(100),
		Network:         simulatedNetwork,
		Simulated:       true,
		CheckedAt:       a.now().UTC(),
	}, nil
}

func (a *SimulatedAnchor) randInt(n int64) int64 {
	v, err := rand.Int(a.rand, big.NewInt(n))
	if err != nil {
		return 0
	}
	return v.Int64()
}

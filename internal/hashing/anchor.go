package hashing

import (
	"context"
	"time"
)

// Anchor records a content digest with a ledger and checks identifiers it issued.
type Anchor interface {
	// Anchor registers digest and returns its transaction identifier.
	Anchor(ctx context.Context, digest string) (string, error)
	// Verify reports whether txID is known to the ledger.
	Verify(ctx context.Context, txID string) (Verification, error)
	// Network names the ledger for display.
	Network() string
}

// Verification is the outcome of checking a transaction identifier.
type Verification struct {
	TransactionHash string    `json:"transactionHash"`
	Verified        bool      `json:"verified"`
	BlockNumber     int64     `json:"blockNumber"`
	Confirmations   int64     `json:"confirmations"`
	Network         string    `json:"network"`
	Simulated       bool      `json:"simulated"`
	Detail          string    `json:"detail,omitempty"`
	CheckedAt       time.Time `json:"timestamp"`
}

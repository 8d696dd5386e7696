// Package history keeps the append-only audit trail of user actions.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docverify/internal/model"
	"docverify/internal/recordstore"
	"docverify/internal/repository"
)

// Key is the state key history entries are stored under.
const Key = "actionHistory"

// Categories used across the product.
const (
	CategoryUpload = "Upload"
	CategorySignIn = "Sign In"
	CategoryWallet = "Wallet"
)

// Log records history entries. Recording never fails the caller.
type Log struct {
	entries *recordstore.Collection[model.HistoryEntry]
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a history log persisted through repo.
func New(repo repository.StateRepository, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{
		entries: recordstore.NewCollection[model.HistoryEntry](repo, Key),
		logger:  logger.With(zap.String("component", "history")),
		now:     time.Now,
	}
}

// Record appends one entry. An empty hash is stored as null.
// Persistence failures are logged and swallowed.
func (l *Log) Record(ctx context.Context, category, action, details, hash string) {
	entry := model.HistoryEntry{
		ID:        newID(),
		Type:      category,
		Action:    action,
		Details:   details,
		Timestamp: l.now().UTC(),
	}
	if hash != "" {
		h := hash
		entry.BlockchainHash = &h
	}

	if err := l.entries.Append(ctx, entry); err != nil {
		l.logger.Warn("history_record_failed",
			zap.String("type", category),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// All returns every entry in the order it was recorded.
func (l *Log) All(ctx context.Context) []model.HistoryEntry {
	entries, _, err := l.entries.Load(ctx)
	if err != nil {
		l.logger.Warn("history_load_failed", zap.Error(err))
		return []model.HistoryEntry{}
	}
	return entries
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

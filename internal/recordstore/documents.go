package recordstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"docverify/internal/model"
	"docverify/internal/repository"
)

// DocumentsKey is the state key verification records are stored under.
const DocumentsKey = "uploadedDocuments"

var (
	ErrInvalidRecord = errors.New("invalid document record")
	ErrDuplicateID   = errors.New("duplicate document id")
)

// DocumentStore is the ordered collection of verification records.
// Stored order is insertion order; RenderView presents it most-recent-first.
type DocumentStore struct {
	docs   *Collection[model.DocumentRecord]
	logger *zap.Logger
}

// NewDocumentStore creates a store persisted through repo.
func NewDocumentStore(repo repository.StateRepository, logger *zap.Logger) *DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentStore{
		docs:   NewCollection[model.DocumentRecord](repo, DocumentsKey),
		logger: logger.With(zap.String("component", "document_store")),
	}
}

// Append adds one record and persists the whole collection.
func (s *DocumentStore) Append(ctx context.Context, rec model.DocumentRecord) error {
	return s.AppendAll(ctx, []model.DocumentRecord{rec})
}

// AppendAll adds records in order with a single persisted write.
// Either every record is stored or none is.
func (s *DocumentStore) AppendAll(ctx context.Context, recs []model.DocumentRecord) error {
	if len(recs) == 0 {
		return nil
	}
	for _, r := range recs {
		if r.ID == "" || r.BlockchainHash == "" {
			return fmt.Errorf("%w: id and blockchainHash are required", ErrInvalidRecord)
		}
	}

	return s.docs.Update(ctx, func(current []model.DocumentRecord) ([]model.DocumentRecord, error) {
		seen := make(map[string]struct{}, len(current)+len(recs))
		for _, r := range current {
			seen[r.ID] = struct{}{}
		}
		for _, r := range recs {
			if _, dup := seen[r.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
			}
			seen[r.ID] = struct{}{}
		}
		return append(current, recs...), nil
	})
}

// LoadAll returns every record in insertion order. Read or decode failures
// are logged and yield an empty sequence.
func (s *DocumentStore) LoadAll(ctx context.Context) []model.DocumentRecord {
	recs, _, err := s.docs.Load(ctx)
	if err != nil {
		s.logger.Warn("load_documents_failed", zap.Error(err))
		return []model.DocumentRecord{}
	}
	return recs
}

// RenderView returns the records most-recent-first as a new slice.
func (s *DocumentStore) RenderView(ctx context.Context) []model.DocumentRecord {
	view := s.LoadAll(ctx)
	slices.Reverse(view)
	return view
}

// Find looks a record up by id.
func (s *DocumentStore) Find(ctx context.Context, id string) (model.DocumentRecord, bool) {
	for _, r := range s.LoadAll(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return model.DocumentRecord{}, false
}

// Clear destroys every stored record.
func (s *DocumentStore) Clear(ctx context.Context) error {
	return s.docs.Clear(ctx)
}

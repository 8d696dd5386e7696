// Package events announces verified documents to other services.
package events

import (
	"context"
	"time"

	"docverify/internal/model"
)

// DocumentVerified is the payload published once a record is persisted.
type DocumentVerified struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	FileName       string           `json:"fileName"`
	FileType       model.FileType   `json:"fileType"`
	FileSize       int64            `json:"fileSize"`
	BlockchainHash string           `json:"blockchainHash"`
	DigestKind     model.DigestKind `json:"digestKind,omitempty"`
	ContentDigest  string           `json:"contentDigest,omitempty"`
	ContentRef     string           `json:"contentRef,omitempty"`
	UploadDate     time.Time        `json:"uploadDate"`
}

// NewDocumentVerified builds the event for rec.
func NewDocumentVerified(rec model.DocumentRecord) DocumentVerified {
	return DocumentVerified{
		ID:             rec.ID,
		Name:           rec.Name,
		FileName:       rec.FileName,
		FileType:       rec.FileType,
		FileSize:       rec.FileSize,
		BlockchainHash: rec.BlockchainHash,
		DigestKind:     rec.DigestKind,
		ContentDigest:  rec.ContentDigest,
		ContentRef:     rec.ContentRef,
		UploadDate:     rec.UploadDate,
	}
}

// Publisher sends domain events.
type Publisher interface {
	PublishDocumentVerified(ctx context.Context, rec model.DocumentRecord) error
	Close()
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishDocumentVerified(context.Context, model.DocumentRecord) error { return nil }
func (Noop) Close()                                                               {}

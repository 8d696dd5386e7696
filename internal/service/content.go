package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"docverify/internal/model"
	"docverify/internal/storage"
)

// ContentLinkTTL bounds how long a content link stays valid.
const ContentLinkTTL = 15 * time.Minute

// ContentLink points at a record's content in the content store.
type ContentLink struct {
	ID         string    `json:"id"`
	ContentRef string    `json:"contentRef"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// StoredContent is an open handle on a record's content.
type StoredContent struct {
	Record model.DocumentRecord
	Info   storage.ObjectInfo
	Body   io.ReadCloser
}

// ContentType prefers what the store reports over what was recorded at upload.
func (c *StoredContent) ContentType() string {
	switch {
	case c.Info.ContentType != "":
		return c.Info.ContentType
	case c.Record.ContentType != "":
		return c.Record.ContentType
	default:
		return "application/octet-stream"
	}
}

// contentRecord finds a record whose content was stored. Fallback records,
// records made with content storage off, and legacy records have none.
func (s *documentService) contentRecord(ctx context.Context, id string) (*model.DocumentRecord, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.content == nil || rec.ContentRef == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, id)
	}
	return rec, nil
}

func (s *documentService) ContentURL(ctx context.Context, id string) (*ContentLink, error) {
	rec, err := s.contentRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.content.PresignGet(ctx, rec.ContentRef, ContentLinkTTL)
	if err != nil {
		return nil, contentError(id, err)
	}
	return &ContentLink{
		ID:         rec.ID,
		ContentRef: rec.ContentRef,
		URL:        url,
		ExpiresAt:  s.now().Add(ContentLinkTTL).UTC(),
	}, nil
}

func (s *documentService) OpenContent(ctx context.Context, id string) (*StoredContent, error) {
	rec, err := s.contentRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	body, info, err := s.content.Get(ctx, rec.ContentRef)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("content_missing", zap.String("id", id), zap.String("content_ref", rec.ContentRef))
		}
		return nil, contentError(id, err)
	}
	return &StoredContent{Record: *rec, Info: info, Body: body}, nil
}

func contentError(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNoContent, id)
	}
	return fmt.Errorf("content %s: %w", id, err)
}

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"docverify/internal/events"
	"docverify/internal/hashing"
	"docverify/internal/history"
	"docverify/internal/metrics"
	"docverify/internal/model"
	"docverify/internal/recordstore"
	"docverify/internal/sim"
	"docverify/internal/storage"
)

var tracer = otel.Tracer("docverify/internal/service")

// UploadFile is one file of a submission. Open may be called more than once.
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.DocumentRecord `json:"data"`
	Total int                    `json:"total"`
}

// VerifyResult pairs a record with the ledger's answer for its identifier.
type VerifyResult struct {
	Document     model.DocumentRecord `json:"document"`
	Verification hashing.Verification `json:"verification"`
}

// DocumentService defines the use cases for verification records.
type DocumentService interface {
	// Submit hashes every file, builds one record per file and stores the
	// batch in a single write. Nothing is stored when any step fails.
	// An empty batch is a no-op.
	Submit(ctx context.Context, files []UploadFile, title, description string) ([]model.DocumentRecord, error)

	// List returns records most-recent-first using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	Get(ctx context.Context, id string) (*model.DocumentRecord, error)

	// Verify checks a record's blockchainHash with the anchor.
	Verify(ctx context.Context, id string) (*VerifyResult, error)

	// Clear removes every record.
	Clear(ctx context.Context) error

	// ContentURL returns a time-limited link to a record's stored content.
	ContentURL(ctx context.Context, id string) (*ContentLink, error)

	// OpenContent streams a record's stored content. The caller closes Body.
	OpenContent(ctx context.Context, id string) (*StoredContent, error)
}

// DocumentDeps wires a DocumentService. Content, Events and Metrics are optional.
type DocumentDeps struct {
	Records     *recordstore.DocumentStore
	History     *history.Log
	Engine      *hashing.Engine
	Content     storage.Storage
	Events      events.Publisher
	Metrics     *metrics.UploadMetrics
	Logger      *zap.Logger
	UploadDelay time.Duration
}

type documentService struct {
	records     *recordstore.DocumentStore
	history     *history.Log
	engine      *hashing.Engine
	content     storage.Storage
	events      events.Publisher
	metrics     *metrics.UploadMetrics
	logger      *zap.Logger
	uploadDelay time.Duration
	now         func() time.Time
	newID       func() (uuid.UUID, error)
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(d DocumentDeps) DocumentService {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pub := d.Events
	if pub == nil {
		pub = events.Noop{}
	}
	return &documentService{
		records:     d.Records,
		history:     d.History,
		engine:      d.Engine,
		content:     d.Content,
		events:      pub,
		metrics:     d.Metrics,
		logger:      logger.With(zap.String("component", "document_service")),
		uploadDelay: d.UploadDelay,
		now:         time.Now,
		newID:       uuid.NewV7,
	}
}

func (s *documentService) Submit(ctx context.Context, files []UploadFile, title, description string) ([]model.DocumentRecord, error) {
	if len(files) == 0 {
		return []model.DocumentRecord{}, nil
	}

	ctx, span := tracer.Start(ctx, "DocumentService.Submit", trace.WithAttributes(attribute.Int("upload.files", len(files))))
	defer span.End()

	start := time.Now()
	s.metrics.StartBatch()

	recs, err := s.submit(ctx, files, title, description)

	s.metrics.FinishBatch(time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("upload_failed", zap.Int("files", len(files)), zap.Error(err))
		return nil, err
	}
	s.metrics.ObserveDocuments(recs, nil)

	// The batch is committed; its history and events must not depend on the caller staying connected.
	ctx = context.WithoutCancel(ctx)
	for _, r := range recs {
		s.history.Record(ctx, history.CategoryUpload, "Document Uploaded",
			fmt.Sprintf("Uploaded %q (%s) with blockchain verification", r.Name, humanize.IBytes(uint64(r.FileSize))),
			r.BlockchainHash,
		)
		if err := s.events.PublishDocumentVerified(ctx, r); err != nil {
			s.logger.Warn("publish_document_verified_failed", zap.String("id", r.ID), zap.Error(err))
		}
	}

	s.logger.Info("upload_committed", zap.Int("documents", len(recs)), zap.Duration("elapsed", time.Since(start)))
	return recs, nil
}

func (s *documentService) submit(ctx context.Context, files []UploadFile, title, description string) ([]model.DocumentRecord, error) {
	recs := make([]model.DocumentRecord, 0, len(files))
	var written []string

	for i, f := range files {
		rec, ref, err := s.process(ctx, f, title, description)
		if ref != "" {
			written = append(written, ref)
		}
		if err != nil {
			s.rollback(ctx, written)
			return nil, &UploadError{Kind: UploadProcessing, File: f.Name, Index: i, Err: err}
		}
		recs = append(recs, rec)
	}

	if err := s.records.AppendAll(ctx, recs); err != nil {
		s.rollback(ctx, written)
		s.metrics.ObserveDocuments(recs, err)
		return nil, &UploadError{Kind: UploadPersistence, Err: err}
	}
	return recs, nil
}

// process turns one file into a record. ref is the content reference
// written for the file, if any, so the caller can roll it back.
func (s *documentService) process(ctx context.Context, f UploadFile, title, description string) (rec model.DocumentRecord, ref string, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.process", trace.WithAttributes(
		attribute.String("file.name", f.Name),
		attribute.Int64("file.size", f.Size),
	))
	defer span.End()

	if err := sim.Sleep(ctx, s.uploadDelay); err != nil {
		return rec, "", err
	}

	contentType := model.ResolveContentType(f.ContentType, f.Name)
	fileType := model.DetectFileType(contentType, f.Name)

	digest, err := s.digest(ctx, f)
	if err != nil {
		return rec, "", err
	}
	span.SetAttributes(attribute.String("digest.kind", string(digest.Kind)))

	id, err := s.newID()
	if err != nil {
		return rec, "", fmt.Errorf("generate id: %w", err)
	}

	name := strings.TrimSpace(title)
	if name == "" {
		name = model.DisplayName(f.Name)
	}

	rec = model.DocumentRecord{
		ID:             id.String(),
		Name:           name,
		Description:    description,
		FileName:       f.Name,
		FileType:       fileType,
		FileSize:       f.Size,
		ContentType:    contentType,
		UploadDate:     s.now().UTC(),
		BlockchainHash: digest.TxID,
		DigestKind:     digest.Kind,
		ContentDigest:  digest.Digest,
		Verified:       true,
	}

	// Unreadable content has nothing to store or preview.
	if digest.IsFallback() {
		return rec, "", nil
	}

	if s.content != nil {
		ref, err = s.putContent(ctx, f, rec)
		if err != nil {
			return rec, "", err
		}
		rec.ContentRef = ref
	}

	if fileType == model.FileTypeImage {
		thumb, err := thumbnail(f, contentType)
		if err != nil {
			s.logger.Warn("thumbnail_failed", zap.String("file", f.Name), zap.Error(err))
		}
		rec.Thumbnail = thumb
	}
	return rec, ref, nil
}

// digest hashes the file. Failing to open or read it yields a fallback
// identifier instead of an error.
func (s *documentService) digest(ctx context.Context, f UploadFile) (hashing.DigestResult, error) {
	var r io.Reader
	if f.Open != nil {
		rc, err := f.Open()
		if err == nil {
			defer rc.Close()
			r = rc
		} else {
			s.logger.Warn("open_file_failed", zap.String("file", f.Name), zap.Error(err))
		}
	}
	return s.engine.ComputeDigest(ctx, r)
}

func (s *documentService) putContent(ctx context.Context, f UploadFile, rec model.DocumentRecord) (string, error) {
	if f.Open == nil {
		return "", fmt.Errorf("content unavailable")
	}
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open content: %w", err)
	}
	defer rc.Close()

	key := "documents/" + rec.ID + strings.ToLower(filepath.Ext(f.Name))
	info, err := s.content.Put(ctx, key, rc, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: rec.ContentType,
		Metadata: map[string]string{
			"original-filename": f.Name,
			"blockchain-hash":   rec.BlockchainHash,
		},
	})
	if err != nil {
		return "", fmt.Errorf("store content: %w", err)
	}
	return info.Key, nil
}

func (s *documentService) rollback(ctx context.Context, refs []string) {
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := s.content.Delete(ctx, ref); err != nil {
			s.logger.Error("rollback_delete_failed", zap.String("ref", ref), zap.Error(err))
		}
	}
}

func thumbnail(f UploadFile, contentType string) (string, error) {
	if f.Open == nil {
		return "", fmt.Errorf("content unavailable")
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// List returns paginated records most-recent-first.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	view := s.records.RenderView(ctx)
	total := len(view)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return &DocumentListResult{Items: view[offset:end], Total: total}, nil
}

// Get returns a record by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, ok := s.records.Find(ctx, id)
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *documentService) Verify(ctx context.Context, id string) (*VerifyResult, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Verify")
	defer span.End()

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.engine.Anchor().Verify(ctx, rec.BlockchainHash)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("verify %s: %w", id, err)
	}
	return &VerifyResult{Document: *rec, Verification: v}, nil
}

// Clear removes every record. Stored content is left in place.
func (s *documentService) Clear(ctx context.Context) error {
	if err := s.records.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("documents_cleared")
	return nil
}

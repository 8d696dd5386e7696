package service

import (
	"errors"
	"fmt"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrNotFound         = errors.New("document not found")
	ErrNoContent        = errors.New("document has no stored content")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// UploadErrorKind separates failures before anything was written from
// failures to persist the batch.
type UploadErrorKind string

const (
	UploadProcessing  UploadErrorKind = "processing"
	UploadPersistence UploadErrorKind = "persistence"
)

// UploadError is returned by Submit. No record of the failed batch is stored.
type UploadError struct {
	Kind UploadErrorKind
	// File and Index identify the file that failed processing; empty for persistence failures.
	File  string
	Index int
	Err   error
}

func (e *UploadError) Error() string {
	if e.Kind == UploadProcessing && e.File != "" {
		return fmt.Sprintf("upload failed: processing %q (file %d): %v", e.File, e.Index+1, e.Err)
	}
	return fmt.Sprintf("upload failed: %s: %v", e.Kind, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// IsPersistence reports whether err is an UploadError caused by the record store.
func IsPersistence(err error) bool {
	var ue *UploadError
	return errors.As(err, &ue) && ue.Kind == UploadPersistence
}

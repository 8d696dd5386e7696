package model

import (
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// FileType is the coarse category a document is displayed under.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypePDF      FileType = "pdf"
	FileTypeText     FileType = "text"
	FileTypeDocument FileType = "document"
)

// DigestKind tells a genuine content digest apart from a placeholder identifier.
type DigestKind string

const (
	DigestKindSHA256   DigestKind = "sha256"
	DigestKindFallback DigestKind = "fallback"
)

// DocumentRecord is the verification record kept for one uploaded document.
// Records are immutable once created; the store only ever appends or clears them.
type DocumentRecord struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	FileName       string     `json:"fileName"`
	FileType       FileType   `json:"fileType"`
	FileSize       int64      `json:"fileSize"`
	ContentType    string     `json:"contentType,omitempty"`
	UploadDate     time.Time  `json:"uploadDate"`
	BlockchainHash string     `json:"blockchainHash"`
	DigestKind     DigestKind `json:"digestKind,omitempty"`
	ContentDigest  string     `json:"contentDigest,omitempty"`
	ContentRef     string     `json:"contentRef,omitempty"`
	Verified       bool       `json:"verified"`
	Thumbnail      string     `json:"thumbnail,omitempty"`
}

// DetectFileType maps a MIME type to a FileType. When contentType is empty the
// extension of fileName is used to guess one.
func DetectFileType(contentType, fileName string) FileType {
	ct := ResolveContentType(contentType, fileName)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return FileTypeImage
	case ct == "application/pdf":
		return FileTypePDF
	case strings.HasPrefix(ct, "text/"):
		return FileTypeText
	default:
		return FileTypeDocument
	}
}

// ResolveContentType returns contentType without parameters, falling back to
// the extension-based type and finally to application/octet-stream.
func ResolveContentType(contentType, fileName string) string {
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			return mt
		}
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); byExt != "" {
		if mt, _, err := mime.ParseMediaType(byExt); err == nil {
			return mt
		}
	}
	return "application/octet-stream"
}

// DisplayName strips the last extension from a file name ("scan.jpg" -> "scan").
func DisplayName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

package handler

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docverify/internal/model"
	"docverify/internal/service"
)

// uploadResponse is returned by POST /documents.
type uploadResponse struct {
	Data    []model.DocumentRecord `json:"data"`
	Message string                 `json:"message,omitempty"`
}

// ListDocuments returns records most-recent-first.
//
// @Summary List verification records
// @Tags documents
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Failure 400 {object} errorPayload
// @Router /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocuments hashes and records every file of a multipart submission.
// Files are read from the repeated "files" field and the single "file" field.
//
// @Summary Upload documents
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "documents"
// @Param title formData string false "title applied to every file"
// @Param description formData string false "description"
// @Success 201 {object} uploadResponse
// @Success 200 {object} uploadResponse "no files selected"
// @Failure 422 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /documents [post]
func UploadDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form expected")
		}

		headers := append(form.File["files"], form.File["file"]...)
		if len(headers) == 0 {
			return c.Status(fiber.StatusOK).JSON(uploadResponse{Data: []model.DocumentRecord{}, Message: "no files selected"})
		}

		files := make([]service.UploadFile, 0, len(headers))
		for _, fh := range headers {
			files = append(files, uploadFile(fh))
		}

		recs, err := svc.Submit(c.UserContext(), files, formValue(form, "title"), formValue(form, "description"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{Data: recs})
	}
}

func uploadFile(fh *multipart.FileHeader) service.UploadFile {
	return service.UploadFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// GetDocument returns a single record.
//
// @Summary Get a verification record
// @Tags documents
// @Produce json
// @Param id path string true "record id"
// @Success 200 {object} model.DocumentRecord
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), strings.TrimSpace(c.Params("id")))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// VerifyDocument checks a record's transaction identifier with the anchor.
//
// @Summary Verify a record's blockchain hash
// @Tags documents
// @Produce json
// @Param id path string true "record id"
// @Success 200 {object} service.VerifyResult
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/verify [get]
func VerifyDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Verify(c.UserContext(), strings.TrimSpace(c.Params("id")))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ClearDocuments removes every record.
//
// @Summary Remove all verification records
// @Tags documents
// @Success 204
// @Router /documents [delete]
func ClearDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Clear(c.UserContext()); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentContent streams a record's stored file.
//
// @Summary Download a record's stored content
// @Tags documents
// @Produce octet-stream
// @Param id path string true "record id"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/content [get]
func DocumentContent(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		content, err := svc.OpenContent(c.UserContext(), strings.TrimSpace(c.Params("id")))
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Attachment(content.Record.FileName)
		c.Set(fiber.HeaderContentType, content.ContentType())
		// fasthttp closes the body once it has been written.
		if content.Info.Size > 0 {
			return c.SendStream(content.Body, int(content.Info.Size))
		}
		return c.SendStream(content.Body)
	}
}

// DocumentLink returns a time-limited URL for a record's stored content.
//
// @Summary Link to a record's stored content
// @Tags documents
// @Produce json
// @Param id path string true "record id"
// @Success 200 {object} service.ContentLink
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/link [get]
func DocumentLink(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		link, err := svc.ContentURL(c.UserContext(), strings.TrimSpace(c.Params("id")))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(link)
	}
}

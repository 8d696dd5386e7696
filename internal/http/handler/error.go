package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docverify/internal/http/middleware"
	"docverify/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response. message must be safe to show clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeServiceError maps service errors onto status codes without leaking internals.
func writeServiceError(c *fiber.Ctx, err error) error {
	var ue *service.UploadError
	switch {
	case errors.As(err, &ue) && ue.Kind == service.UploadPersistence:
		return writeError(c, fiber.StatusServiceUnavailable, "UPLOAD_NOT_PERSISTED", "documents could not be saved, nothing was stored")
	case errors.As(err, &ue):
		msg := "upload failed, nothing was stored"
		if ue.File != "" {
			msg = "could not process " + ue.File + ", nothing was stored"
		}
		return writeError(c, fiber.StatusUnprocessableEntity, "UPLOAD_FAILED", msg)
	case errors.Is(err, service.ErrNoContent):
		return writeError(c, fiber.StatusNotFound, "CONTENT_NOT_STORED", "no stored content for this document")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrEmailRequired):
		return writeError(c, fiber.StatusBadRequest, "EMAIL_REQUIRED", "email is required")
	case errors.Is(err, service.ErrPasswordMismatch):
		return writeError(c, fiber.StatusBadRequest, "PASSWORD_MISMATCH", "passwords do not match")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

package http

import (
	"errors"
	"fmt"
	"log/slog"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/parser"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// ApiError is the JSON body of every failed request.
type ApiError struct {
	Code       int      `json:"-"`
	Message    string   `json:"error"`
	Detail     string   `json:"detail,omitempty"`
	Violations []string `json:"violations,omitempty"`
	RequestID  string   `json:"requestId,omitempty"`
}

func NewApiError(code int, message, detail string) *ApiError {
	return &ApiError{Code: code, Message: message, Detail: detail}
}

var (
	ErrBadRequest = func(detail string) *ApiError { return NewApiError(fiber.StatusBadRequest, "Bad Request", detail) }
	ErrNotFound   = func(detail string) *ApiError { return NewApiError(fiber.StatusNotFound, "Not Found", detail) }
	ErrInternal   = func(detail string) *ApiError {
		return NewApiError(fiber.StatusInternalServerError, "Internal Server Error", detail)
	}
)

func (e *ApiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// toApiError maps package sentinels to HTTP responses.
func toApiError(err error) *ApiError {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return NewApiError(fe.Code, fe.Message, "")
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		e := ErrBadRequest("resume payload does not match schema")
		e.Violations = verr.Violations
		return e
	}

	switch {
	case errors.Is(err, model.ErrInvalidResume):
		return ErrBadRequest(err.Error())
	case errors.Is(err, domain.ErrDraftNotFound):
		return ErrNotFound("draft not found")
	case errors.Is(err, domain.ErrUnknownTemplate):
		return ErrBadRequest(err.Error())
	case errors.Is(err, parser.ErrNoFile):
		return ErrBadRequest("no file uploaded")
	case errors.Is(err, parser.ErrTooLarge):
		return NewApiError(fiber.StatusRequestEntityTooLarge, "File Too Large", err.Error())
	case errors.Is(err, parser.ErrUnsupportedType):
		return NewApiError(fiber.StatusUnsupportedMediaType, "Unsupported File Type", err.Error())
	case errors.Is(err, parser.ErrUnreadable):
		return NewApiError(fiber.StatusUnprocessableEntity, "Unreadable Document", err.Error())
	case errors.Is(err, parser.ErrNoText):
		return NewApiError(fiber.StatusUnprocessableEntity, "Unreadable Document", err.Error())
	case errors.Is(err, parser.ErrRemote):
		return NewApiError(fiber.StatusBadGateway, "Failed to parse resume", "")
	case errors.Is(err, usecase.ErrNoBrowser):
		return NewApiError(fiber.StatusServiceUnavailable, "Service Unavailable", err.Error())
	default:
		return ErrInternal("")
	}
}

// ErrorHandler writes err as an ApiError. Server errors are logged with the
// request id; their cause never reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	apiErr := toApiError(err)
	reqID := requestID(c)
	if apiErr.Code >= fiber.StatusInternalServerError {
		slog.Error("request failed", "error", err, "path", c.Path(), "request_id", reqID)
	}
	body := *apiErr
	body.RequestID = reqID
	return c.Status(body.Code).JSON(body)
}

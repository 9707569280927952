package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is the application-level error type. Code is a stable machine
// readable identifier; Message is safe to show to clients. Err holds the
// underlying cause and is never serialized.
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates an error for invalid client input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message}
}

// NewFormError creates a validation error carrying per-field messages, the
// shape form handlers echo back alongside the submitted values.
func NewFormError(fields map[string]string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: "Validation failed", Fields: fields}
}

// NewUnauthorizedError creates an error for requests the caller may not make.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message}
}

// NewNotFoundError creates an error for a missing resource. id may be a
// numeric ID or a natural key such as a slug or username.
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewInternalError wraps an unexpected failure without leaking its details.
func NewInternalError(err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", Err: err}
}

// RespondWithError writes a uniform JSON error body. Unknown error types are
// masked behind a generic internal error so callers never see raw messages.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewInternalError(err)
	}
	body := fiber.Map{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	return c.Status(status).JSON(fiber.Map{"error": body})
}

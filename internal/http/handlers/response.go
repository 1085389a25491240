// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// the structured error envelope, the validation error envelope with its
// accumulated field failures, and helpers for common success shapes. The goal
// is to guarantee uniform responses for both success and failure cases.
//
// Example validation error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "validation_failed",
//	  "message": "Validation failed",
//	  "errors": [
//	    { "field": "title", "message": "Please enter a valid title" },
//	    { "field": "id", "message": "The task id is not valid" }
//	  ]
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-todo-backend/internal/http/middleware"
	"github.com/tbourn/go-todo-backend/internal/i18n"
	"github.com/tbourn/go-todo-backend/internal/validation"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: optional correlation ID, echoed from X-Request-ID, used
//     to correlate server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Message: a human-readable, localized error description.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (localized, safe to show to users)
	Message string `json:"message" example:"task not found"`
}

// FieldError is one entry of the accumulated validation failure list.
type FieldError struct {
	Field   string `json:"field" example:"title"`
	Message string `json:"message" example:"Please enter a valid title"`
}

// ValidationErrorResponse is the envelope for requests rejected by the
// validation pipeline. Errors holds every rule failure in declaration
// order; the list is never partial.
type ValidationErrorResponse struct {
	RequestID string       `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string       `json:"code" example:"validation_failed"`
	Message   string       `json:"message" example:"Validation failed"`
	Errors    []FieldError `json:"errors"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failValidation renders the accumulated rule failures as a 400 response.
// Field messages and the summary line are resolved against loc, so the
// same failure list localizes per request.
func failValidation(c *gin.Context, loc i18n.Localizer, failures []validation.Failure) {
	errs := make([]FieldError, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, FieldError{
			Field:   f.Field,
			Message: loc.Message(f.MessageKey),
		})
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      ErrCodeValidationFailed,
		Message:   loc.Message(i18n.KeyValidationFailed),
		Errors:    errs,
	})
}

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Package services defines the business logic for todos. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrTodoNotFound indicates that the requested todo does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrEmptyTitle is returned when a create or update reaches the service
	// with an empty title. The validation pipeline normally rejects such
	// requests earlier; this is the service's own guard against misuse.
	ErrEmptyTitle = errors.New("title is empty")
)

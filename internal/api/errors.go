// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mglucas0123/JavaCraft-Dev/internal/converter"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error constructors for consistent error handling

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(resource string, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewConversionError maps a converter pipeline error to its API shape.
// Fatal extraction and hierarchy problems are the client's input, not a
// server fault, so they surface as 422 with a stable code.
func NewConversionError(err error) *APIError {
	switch {
	case errors.Is(err, converter.ErrNoClassFound):
		return &APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "NO_CLASS_FOUND",
			Message: "no model class declaration found in source",
		}
	case errors.Is(err, converter.ErrNoPartsFound):
		return &APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "NO_PARTS_FOUND",
			Message: "no model parts found in source",
		}
	case errors.Is(err, converter.ErrConflictingHierarchy):
		return &APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "CONFLICTING_HIERARCHY",
			Message: "part hierarchy is cyclic or conflicting",
			Details: err.Error(),
		}
	case errors.Is(err, converter.ErrInputTooLarge):
		return &APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    "INPUT_TOO_LARGE",
			Message: "source exceeds the maximum input size",
		}
	default:
		return NewInternalError("conversion failed", err)
	}
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNKNOWN_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		}
	}

	// Send JSON response
	if !c.Response().Committed {
		c.JSON(apiErr.Status, apiErr)
	}
}

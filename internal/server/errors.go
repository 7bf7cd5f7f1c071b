package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

// ErrValidation indicates request validation failure. Message is shown to the client.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidFileType indicates an upload with an unsupported extension
type ErrInvalidFileType struct {
	Extension string
	Allowed   []string
}

func (e *ErrInvalidFileType) Error() string {
	return "Invalid file type. Allowed types: " + strings.Join(e.Allowed, ", ")
}

// ErrPayloadTooLarge indicates a request body over the configured limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fileTypeErr   *ErrInvalidFileType
		tooLargeErr   *ErrPayloadTooLarge
		notFoundErr   *ErrNotFound
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &fileTypeErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFoundErr), errors.Is(err, pipeline.ErrStoreDisabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the text placed in the error envelope
func clientMessage(err error) string {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}

package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	// ErrInput marks unreadable or malformed input. The request is aborted.
	ErrInput = errors.New("input error")
	// ErrService marks a failed grammar checker call. The affected text is
	// passed through uncorrected.
	ErrService = errors.New("service error")
	// ErrSave marks a failure to serialise or store the output.
	ErrSave = errors.New("save error")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func (e *BadRequestError) Unwrap() error {
	return ErrBadRequest
}

func NewBadRequestError(message string) error {
	return &BadRequestError{Message: message}
}

type InputError struct {
	Message       string
	OriginalError error
}

func (e *InputError) Error() string {
	if e.OriginalError == nil {
		return fmt.Sprintf("input error: %s", e.Message)
	}
	return fmt.Sprintf("input error: %s (original error: %v)", e.Message, e.OriginalError)
}

func (e *InputError) Unwrap() []error {
	return unwrapWith(ErrInput, e.OriginalError)
}

func NewInputError(message string, originalError error) *InputError {
	return &InputError{Message: message, OriginalError: originalError}
}

type ServiceError struct {
	Message       string
	StatusCode    int
	OriginalError error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("service error: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("service error: %s (original error: %v)", e.Message, e.OriginalError)
}

func (e *ServiceError) Unwrap() []error {
	return unwrapWith(ErrService, e.OriginalError)
}

func NewServiceError(message string, statusCode int, originalError error) *ServiceError {
	return &ServiceError{Message: message, StatusCode: statusCode, OriginalError: originalError}
}

type SaveError struct {
	Message       string
	OriginalError error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save error: %s (original error: %v)", e.Message, e.OriginalError)
}

func (e *SaveError) Unwrap() []error {
	return unwrapWith(ErrSave, e.OriginalError)
}

func NewSaveError(message string, originalError error) *SaveError {
	return &SaveError{Message: message, OriginalError: originalError}
}

func unwrapWith(sentinel, original error) []error {
	if original == nil {
		return []error{sentinel}
	}
	return []error{sentinel, original}
}

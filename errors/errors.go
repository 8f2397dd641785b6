/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrService is returned when the remote store rejects a request or is unreachable
	ErrService = errors.New("service request failed")

	// ErrNotFound is returned when a point read targets an item that does not exist
	ErrNotFound = errors.New("item not found")

	// ErrConflict is returned when a create-only write collides with an existing id
	ErrConflict = errors.New("item already exists")

	// ErrInvalidInput is returned when input validation fails before any request is sent
	ErrInvalidInput = errors.New("invalid input")
)

// ServiceError represents a network, auth, or service-side failure of a single request.
type ServiceError struct {
	Op      string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NotFoundError represents a point read of a nonexistent (id, partition key) pair.
type NotFoundError struct {
	Container    string
	ID           string
	PartitionKey string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %q with partition key %q not found in container %q", e.ID, e.PartitionKey, e.Container)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError represents a create-only write whose id already exists in the partition.
type ConflictError struct {
	Container string
	ID        string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("item %q already exists in container %q", e.ID, e.Container)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError represents an input validation error caught client-side.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewServiceError creates a new ServiceError wrapping the underlying cause
func NewServiceError(op, message string, cause error) error {
	return &ServiceError{Op: op, Message: message, Cause: cause}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(container, id, partitionKey string) error {
	return &NotFoundError{Container: container, ID: id, PartitionKey: partitionKey}
}

// NewConflictError creates a new ConflictError
func NewConflictError(container, id string) error {
	return &ConflictError{Container: container, ID: id}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsService checks if an error is a service error
func IsService(err error) bool {
	return errors.Is(err, ErrService)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

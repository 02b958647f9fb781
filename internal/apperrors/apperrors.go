package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")

	ErrStorage     = errors.New("storage failure")
	ErrAggregation = errors.New("rating aggregation failed")

	ErrDisputeResolved = errors.New("dispute is already resolved")
)

type ContractorAlreadyExistsError struct{ Email string }

func (e *ContractorAlreadyExistsError) Error() string {
	return fmt.Sprintf("contractor with email '%s' already exists", e.Email)
}
func (e *ContractorAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

type CategoryAlreadyExistsError struct{ Slug string }

func (e *CategoryAlreadyExistsError) Error() string {
	return fmt.Sprintf("category with slug '%s' already exists", e.Slug)
}
func (e *CategoryAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

type UserAlreadyExistsError struct{ Email string }

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email '%s' already exists", e.Email)
}
func (e *UserAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// StorageError marks a failure of the underlying data store. The caller may
// retry at its discretion; this layer never retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage failure: %v", e.Op, e.Err)
}
func (e *StorageError) Unwrap() error        { return e.Err }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// AggregationError marks a failed rating recompute after the triggering
// review mutation already succeeded, leaving the contractor's summary pair
// stale. It is surfaced distinctly so the caller can retry or schedule a
// reconciliation instead of dropping the inconsistency.
type AggregationError struct {
	ContractorID string
	Err          error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to recompute rating for contractor '%s': %v", e.ContractorID, e.Err)
}
func (e *AggregationError) Unwrap() error        { return e.Err }
func (e *AggregationError) Is(target error) bool { return target == ErrAggregation }

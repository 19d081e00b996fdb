// Package apperrors defines the typed errors the service layer returns.
// Handlers branch on the concrete type to pick an HTTP status; messages
// are surfaced to the caller verbatim.
package apperrors

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CodeNotFound             = "NOT_FOUND"
	CodeQuotaExceeded        = "QUOTA_EXCEEDED"
	CodeConflict             = "CONFLICT"
	CodeReferentialViolation = "REFERENTIAL_VIOLATION"
)

// NotFoundError reports that the entity named Entity with the given ID
// does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Code() string { return CodeNotFound }

func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// QuotaExceededError reports that a plan-tier limit blocked a create.
type QuotaExceededError struct {
	PlanTier string
	Resource string
	Limit    int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("plan %s allows at most %d %s", e.PlanTier, e.Limit, e.Resource)
}

func (e *QuotaExceededError) Code() string { return CodeQuotaExceeded }

// ConflictError reports a duplicate unique key, such as an organization
// slug that is already taken or a user who is already a member.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Code() string { return CodeConflict }

func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ReferentialViolationError reports that a referenced foreign key does
// not exist or belongs to the wrong parent.
type ReferentialViolationError struct {
	Message string
}

func (e *ReferentialViolationError) Error() string { return e.Message }

func (e *ReferentialViolationError) Code() string { return CodeReferentialViolation }

func NewReferentialViolation(format string, args ...interface{}) *ReferentialViolationError {
	return &ReferentialViolationError{Message: fmt.Sprintf(format, args...)}
}

// NewComponentMismatch builds the itemized error for maintenance-window
// creation: every offending component id is listed.
func NewComponentMismatch(statusPageID uint, ids []uint) *ReferentialViolationError {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return &ReferentialViolationError{
		Message: fmt.Sprintf("components do not belong to status page %d: %s",
			statusPageID, strings.Join(parts, ", ")),
	}
}

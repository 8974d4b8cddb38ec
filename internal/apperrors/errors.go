package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the actor is not authorized for the attempted action.
var ErrForbidden = errors.New("action forbidden")

// ErrConflict indicates that the resource is in a state that does not permit the action.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrPeriodLocked indicates an attempt to post into a date not covered by an open fiscal period.
var ErrPeriodLocked = errors.New("fiscal period is closed or missing for the posting date")

// ErrUnbalanced indicates that a journal entry's debit and credit totals differ.
var ErrUnbalanced = errors.New("journal entry debits and credits do not balance")

// ErrAlreadyPosted indicates that a journal entry already exists for the source document.
var ErrAlreadyPosted = errors.New("source document already has a posted journal entry")

// ErrAlreadyReversed indicates that the journal entry has already been reversed.
var ErrAlreadyReversed = errors.New("journal entry already reversed")

// ErrStaleRequest indicates a decision on an approval request that is no longer pending.
var ErrStaleRequest = errors.New("approval request is no longer pending")

// AppError carries a repository-level failure with an HTTP-ish code and a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError constructs an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

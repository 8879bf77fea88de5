package common

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "validation"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal"
)

// Reason is a stable, machine-readable kind attached to business-rule
// violations on top of the coarse Code. Clients branch on it; messages are
// for humans only.
type Reason string

const (
	ReasonDuplicateApplication   Reason = "duplicate_application"
	ReasonInternshipClosed       Reason = "internship_closed"
	ReasonDeadlinePassed         Reason = "deadline_passed"
	ReasonFeedbackRequired       Reason = "feedback_required"
	ReasonFacultyApprovalMissing Reason = "faculty_approval_missing"
	ReasonInvalidStateForEdit    Reason = "invalid_state_for_edit"
	ReasonHasApplications        Reason = "has_applications"
	ReasonMissingField           Reason = "missing_field"
)

type Error struct {
	Code    Code
	Reason  Reason
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewDomainError(code Code, reason Reason, message string) error {
	return &Error{Code: code, Reason: reason, Message: message}
}

func NewValidationError(message string, fields map[string]string) error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// NewMissingFieldError reports absent required fields by name.
func NewMissingFieldError(fields map[string]string) error {
	return &Error{Code: CodeValidation, Reason: ReasonMissingField, Message: "missing required field", Fields: fields}
}

func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

func ReasonIs(err error, reason Reason) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Reason == reason
	}
	return false
}

func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

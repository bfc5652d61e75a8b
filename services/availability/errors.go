package availability

import (
	"errors"
	"fmt"
)

// ValidationError is a user-facing problem with a proposed slot set. Two values
// match under errors.Is when their codes are equal.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

func newValidationError(base *ValidationError, format string, args ...interface{}) error {
	return &ValidationError{
		Code:    base.Code,
		Message: fmt.Sprintf("%s: %s", base.Message, fmt.Sprintf(format, args...)),
	}
}

var (
	ErrNoValidSlots     = &ValidationError{Code: "noValidSlots", Message: "add at least one complete, available time slot"}
	ErrDuplicateDay     = &ValidationError{Code: "duplicateDay", Message: "each day may only have one time slot"}
	ErrInvalidDay       = &ValidationError{Code: "invalidDay", Message: "unknown day"}
	ErrInvalidTime      = &ValidationError{Code: "invalidTime", Message: "times must use the HH:MM format"}
	ErrInvalidTimeRange = &ValidationError{Code: "invalidTimeRange", Message: "start time must be before end time"}
	ErrLastSlot         = &ValidationError{Code: "lastSlot", Message: "at least one time slot is required"}
)

var (
	ErrSlotIndex    = errors.New("slot index out of range")
	ErrUnknownField = errors.New("unknown slot field")
	ErrFieldValue   = errors.New("invalid value for slot field")
)

package scheduling

import (
	"errors"
	"fmt"

	"medibook/backend/internal/domain"
)

var (
	// ErrPastDate rejects booking dates before today.
	ErrPastDate = errors.New("date is in the past")
	// ErrTooFarAhead rejects dates beyond the configured advance window.
	ErrTooFarAhead = errors.New("date is too far ahead")
	// ErrForbidden rejects lifecycle operations by anyone other than the
	// appointment's patient.
	ErrForbidden = errors.New("appointment belongs to a different patient")
	// ErrAlreadyRegistered rejects patient registration when the phone or
	// email is already taken.
	ErrAlreadyRegistered = errors.New("patient already registered")
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// SlotUnavailableError reports a rejected slot together with the slots that
// were actually free when the rejection happened, so callers can offer
// alternatives. A lost race against a concurrent booking surfaces as this
// same error.
type SlotUnavailableError struct {
	Time    domain.TimeOfDay
	Slots   []domain.TimeOfDay
	Message string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot %s is not available", e.Time)
}

// InvalidStateError reports a cancel or reschedule attempt against an
// appointment already in a terminal status.
type InvalidStateError struct {
	Status domain.AppointmentStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("appointment is %s", e.Status)
}

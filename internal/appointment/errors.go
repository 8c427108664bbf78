package appointment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// ValidationError reports missing or malformed caller input. The store is
// never touched once one is raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports that the requested slot already has an appointment
// for the same doctor. It carries the slot fields so the presentation layer
// can compose its own message.
type ConflictError struct {
	DoctorName string
	Date       time.Time
	Time       time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("an appointment is already booked with Dr. %s on %s at %s",
		e.DoctorName, e.Date.Format(DateLayout), e.Time.Format(TimeLayout))
}

// StoreError wraps a driver failure so callers can match ErrStoreUnavailable
// without losing the underlying cause.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

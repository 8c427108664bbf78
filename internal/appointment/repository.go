package appointment

import (
	"context"
	"time"
)

// Store contains all DB interactions needed by the service. Row absence is
// reported as ErrAppointmentNotFound; driver failures as errors matching
// ErrStoreUnavailable.
type Store interface {
	Insert(ctx context.Context, appt Appointment) (int64, error)
	SelectAll(ctx context.Context) ([]Appointment, error)

	// For conflict checks. excludeID, when non-nil, removes that appointment
	// from consideration so a reschedule does not collide with itself.
	SelectBySlot(ctx context.Context, doctorName string, date, timeOfDay time.Time, excludeID *int64) (*Appointment, error)

	SelectDoctorByID(ctx context.Context, id int64) (string, error)

	// Deletes and updates report rows affected so the caller can tell a
	// missing record apart from a store failure.
	DeleteByID(ctx context.Context, id int64) (int64, error)
	UpdateDateTimeByID(ctx context.Context, id int64, date, timeOfDay time.Time) (int64, error)
}

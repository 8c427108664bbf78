package appointment

import (
	"context"
	"errors"
	"time"
)

// ConflictChecker answers whether a (doctor, date, time) slot is already
// occupied by an existing appointment. It is read-only.
type ConflictChecker struct {
	store Store
}

func NewConflictChecker(store Store) ConflictChecker {
	return ConflictChecker{store: store}
}

// HasConflict reports whether any appointment other than excludeID occupies
// the slot. excludeID may be nil when no appointment should be excluded.
func (c ConflictChecker) HasConflict(ctx context.Context, doctorName string, date, timeOfDay time.Time, excludeID *int64) (bool, error) {
	_, err := c.store.SelectBySlot(ctx, doctorName, date, timeOfDay, excludeID)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

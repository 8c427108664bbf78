package appointment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// BookRequest carries the raw form fields for a new appointment.
type BookRequest struct {
	PatientName string
	Contact     string
	DoctorName  string
	Date        string
	Time        string
}

// Service orchestrates booking, viewing, cancellation, and rescheduling
// against the store. It holds no state between calls; every operation
// re-reads current store state before deciding.
type Service struct {
	store    Store
	conflict ConflictChecker
	log      zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		conflict: NewConflictChecker(store),
		log:      log,
	}
}

// Book validates the request, rejects slots that already hold an appointment
// for the same doctor, and inserts the record. On success it returns the
// store-assigned appointment ID; on any failure nothing is persisted.
func (s *Service) Book(ctx context.Context, req BookRequest) (int64, error) {
	for _, f := range []struct{ name, value string }{
		{"patient name", req.PatientName},
		{"contact", req.Contact},
		{"doctor name", req.DoctorName},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			return 0, &ValidationError{Field: f.name, Reason: "is required"}
		}
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return 0, &ValidationError{Field: "date", Reason: "must look like " + DateLayout}
	}
	timeOfDay, err := ParseTime(req.Time)
	if err != nil {
		return 0, &ValidationError{Field: "time", Reason: "must look like " + TimeLayout}
	}

	taken, err := s.conflict.HasConflict(ctx, req.DoctorName, date, timeOfDay, nil)
	if err != nil {
		return 0, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return 0, &ConflictError{DoctorName: req.DoctorName, Date: date, Time: timeOfDay}
	}

	id, err := s.store.Insert(ctx, Appointment{
		PatientName: req.PatientName,
		Contact:     req.Contact,
		DoctorName:  req.DoctorName,
		Date:        date,
		Time:        timeOfDay,
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			// Another writer won the slot between the check and the insert;
			// the unique index turned the race into a clean rejection.
			return 0, conflict
		}
		return 0, fmt.Errorf("insert appointment: %w", err)
	}

	s.log.Info().
		Int64("appointment_id", id).
		Str("doctor", req.DoctorName).
		Str("date", req.Date).
		Str("time", req.Time).
		Msg("appointment booked")

	return id, nil
}

// ListAll returns every persisted appointment in store order.
func (s *Service) ListAll(ctx context.Context) ([]Appointment, error) {
	appts, err := s.store.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// Cancel permanently removes the appointment with the given ID. A missing
// record is reported as ErrAppointmentNotFound, not as a fault.
func (s *Service) Cancel(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	affected, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	s.log.Info().Int64("appointment_id", id).Msg("appointment cancelled")
	return nil
}

// Reschedule moves an existing appointment to a new date and time. Doctor,
// patient, and contact are never touched. The appointment's own current slot
// is excluded from the conflict check so a no-op reschedule succeeds.
func (s *Service) Reschedule(ctx context.Context, rawID, newDate, newTime string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(newDate) == "" {
		return &ValidationError{Field: "new date", Reason: "is required"}
	}
	if strings.TrimSpace(newTime) == "" {
		return &ValidationError{Field: "new time", Reason: "is required"}
	}

	date, err := ParseDate(newDate)
	if err != nil {
		return &ValidationError{Field: "new date", Reason: "must look like " + DateLayout}
	}
	timeOfDay, err := ParseTime(newTime)
	if err != nil {
		return &ValidationError{Field: "new time", Reason: "must look like " + TimeLayout}
	}

	doctor, err := s.store.SelectDoctorByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("load appointment: %w", err)
	}

	taken, err := s.conflict.HasConflict(ctx, doctor, date, timeOfDay, &id)
	if err != nil {
		return fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return &ConflictError{DoctorName: doctor, Date: date, Time: timeOfDay}
	}

	affected, err := s.store.UpdateDateTimeByID(ctx, id, date, timeOfDay)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			conflict.DoctorName = doctor
			return conflict
		}
		return fmt.Errorf("update appointment: %w", err)
	}
	if affected == 0 {
		// Record disappeared between the lookup and the update.
		return ErrAppointmentNotFound
	}

	s.log.Info().
		Int64("appointment_id", id).
		Str("new_date", newDate).
		Str("new_time", newTime).
		Msg("appointment rescheduled")

	return nil
}

func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: "appointment id", Reason: "is required"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "appointment id", Reason: "must be a positive integer"}
	}
	return id, nil
}

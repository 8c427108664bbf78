package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is the Postgres-backed Store. The appointments table carries a
// unique index on (doctor_name, appointment_date, appointment_time), so the
// double-booking invariant holds even if two writers race past the
// application-level conflict check.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

const uniqueViolation = "23505"

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var tod pgtype.Time

	err := row.Scan(
		&a.ID,
		&a.PatientName,
		&a.Contact,
		&a.DoctorName,
		&a.Date,
		&tod,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, &StoreError{Op: "scan appointment", Err: err}
	}

	a.Time = timeFromPg(tod)
	return &a, nil
}

func timeFromPg(t pgtype.Time) time.Time {
	return time.Time{}.Add(time.Duration(t.Microseconds) * time.Microsecond)
}

func timeToPg(t time.Time) pgtype.Time {
	us := (int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())) * 1e6
	return pgtype.Time{Microseconds: us, Valid: true}
}

// Interface methods

func (s *PgStore) Insert(ctx context.Context, appt Appointment) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO appointments (patient_name, contact, doctor_name, appointment_date, appointment_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING appointment_id
	`, appt.PatientName, appt.Contact, appt.DoctorName, appt.Date, timeToPg(appt.Time)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, &ConflictError{DoctorName: appt.DoctorName, Date: appt.Date, Time: appt.Time}
		}
		return 0, &StoreError{Op: "insert appointment", Err: err}
	}
	return id, nil
}

func (s *PgStore) SelectAll(ctx context.Context) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT appointment_id, patient_name, contact, doctor_name, appointment_date, appointment_time
		FROM appointments
		ORDER BY appointment_id
	`)
	if err != nil {
		return nil, &StoreError{Op: "select appointments", Err: err}
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "select appointments", Err: err}
	}

	return result, nil
}

func (s *PgStore) SelectBySlot(ctx context.Context, doctorName string, date, timeOfDay time.Time, excludeID *int64) (*Appointment, error) {
	if excludeID != nil {
		row := s.pool.QueryRow(ctx, `
			SELECT appointment_id, patient_name, contact, doctor_name, appointment_date, appointment_time
			FROM appointments
			WHERE doctor_name = $1 AND appointment_date = $2 AND appointment_time = $3 AND appointment_id != $4
		`, doctorName, date, timeToPg(timeOfDay), *excludeID)
		return scanAppointment(row)
	}

	row := s.pool.QueryRow(ctx, `
		SELECT appointment_id, patient_name, contact, doctor_name, appointment_date, appointment_time
		FROM appointments
		WHERE doctor_name = $1 AND appointment_date = $2 AND appointment_time = $3
	`, doctorName, date, timeToPg(timeOfDay))
	return scanAppointment(row)
}

func (s *PgStore) SelectDoctorByID(ctx context.Context, id int64) (string, error) {
	var doctor string
	err := s.pool.QueryRow(ctx, `
		SELECT doctor_name
		FROM appointments
		WHERE appointment_id = $1
	`, id).Scan(&doctor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAppointmentNotFound
		}
		return "", &StoreError{Op: "select doctor", Err: err}
	}
	return doctor, nil
}

func (s *PgStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM appointments
		WHERE appointment_id = $1
	`, id)
	if err != nil {
		return 0, &StoreError{Op: "delete appointment", Err: err}
	}
	return tag.RowsAffected(), nil
}

func (s *PgStore) UpdateDateTimeByID(ctx context.Context, id int64, date, timeOfDay time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE appointments
		SET appointment_date = $2,
		    appointment_time = $3
		WHERE appointment_id = $1
	`, id, date, timeToPg(timeOfDay))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, &ConflictError{Date: date, Time: timeOfDay}
		}
		return 0, &StoreError{Op: "update appointment", Err: err}
	}
	return tag.RowsAffected(), nil
}

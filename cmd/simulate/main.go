package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduler/internal/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/db"
)

// simulate drives the canonical booking lifecycle against a live store:
// book, double-book (rejected), reschedule, cancel, cancel again (not
// found). It exits non-zero on the first unexpected outcome.
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	logger.Info().Msg("simulate starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		logger.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply schema")
	}

	svc := appointment.NewService(appointment.NewPgStore(pool), logger)

	// A per-run doctor keeps reruns independent of leftover data.
	doctor := fmt.Sprintf("Smith-%d", time.Now().Unix())
	date := time.Now().AddDate(0, 0, 7).Format(appointment.DateLayout)
	nextDate := time.Now().AddDate(0, 0, 8).Format(appointment.DateLayout)

	id, err := svc.Book(ctx, appointment.BookRequest{
		PatientName: "Alice",
		Contact:     "555-1234",
		DoctorName:  doctor,
		Date:        date,
		Time:        "09:00",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("first booking should succeed")
	}
	logger.Info().Int64("id", id).Msg("booked")

	_, err = svc.Book(ctx, appointment.BookRequest{
		PatientName: "Bob",
		Contact:     "555-5678",
		DoctorName:  doctor,
		Date:        date,
		Time:        "09:00",
	})
	var conflict *appointment.ConflictError
	if !errors.As(err, &conflict) {
		logger.Fatal().Err(err).Msg("double booking should be rejected with a conflict")
	}
	logger.Info().Str("doctor", conflict.DoctorName).Msg("double booking rejected")

	rawID := fmt.Sprintf("%d", id)

	if err := svc.Reschedule(ctx, rawID, nextDate, "10:00"); err != nil {
		logger.Fatal().Err(err).Msg("reschedule should succeed")
	}
	logger.Info().Int64("id", id).Msg("rescheduled")

	if err := svc.Cancel(ctx, rawID); err != nil {
		logger.Fatal().Err(err).Msg("cancel should succeed")
	}
	logger.Info().Int64("id", id).Msg("cancelled")

	if err := svc.Cancel(ctx, rawID); !errors.Is(err, appointment.ErrAppointmentNotFound) {
		logger.Fatal().Err(err).Msg("second cancel should report not found")
	}
	logger.Info().Msg("second cancel reported not found")

	logger.Info().Msg("simulate complete")
}

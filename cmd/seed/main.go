package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduler/internal/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/db"
)

const appointmentCount = 200

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	logger.Info().Msg("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		logger.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		logger.Fatal().Err(err).Msg("apply schema")
	}

	gofakeit.Seed(time.Now().UnixNano())

	svc := appointment.NewService(appointment.NewPgStore(pool), zerolog.Nop())

	doctors := make([]string, 12)
	for i := range doctors {
		doctors[i] = gofakeit.LastName()
	}

	if err := seedAppointments(context.Background(), svc, doctors, appointmentCount); err != nil {
		logger.Fatal().Err(err).Msg("seed appointments")
	}

	logger.Info().Msg("seed complete")
}

// seedAppointments books count random appointments through the service so
// the slot invariant holds; takes for already-occupied slots are skipped.
func seedAppointments(ctx context.Context, svc *appointment.Service, doctors []string, count int) error {
	booked := 0
	skipped := 0

	for booked < count {
		day := gofakeit.Number(0, 29)
		date := time.Now().AddDate(0, 0, day).Format(appointment.DateLayout)
		slot := fmt.Sprintf("%02d:%02d", gofakeit.Number(9, 16), 30*gofakeit.Number(0, 1))

		_, err := svc.Book(ctx, appointment.BookRequest{
			PatientName: gofakeit.Name(),
			Contact:     gofakeit.Phone(),
			DoctorName:  doctors[gofakeit.Number(0, len(doctors)-1)],
			Date:        date,
			Time:        slot,
		})
		if err != nil {
			var conflict *appointment.ConflictError
			if errors.As(err, &conflict) {
				skipped++
				if skipped > count*10 {
					return errors.New("too many slot collisions, widen the slot range")
				}
				continue
			}
			return err
		}
		booked++
	}

	return nil
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduler/internal/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/config"
	"github.com/clinicdesk/clinic-scheduler/internal/db"
)

// desk is the interactive front desk form: it collects raw field values,
// hands them to the appointment service, and renders the outcome. All
// validation and parsing lives in the service.
type desk struct {
	svc *appointment.Service
	in  *bufio.Scanner
	out io.Writer
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()

	if err := db.EnsureSchema(rootCtx, pgPool); err != nil {
		logger.Fatal().Err(err).Msg("schema error")
	}

	d := &desk{
		svc: appointment.NewService(appointment.NewPgStore(pgPool), logger),
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}

	fmt.Fprintln(d.out, "Clinic Appointment Booking System")
	d.run(rootCtx)
}

func (d *desk) run(ctx context.Context) {
	for {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, "1) Book appointment")
		fmt.Fprintln(d.out, "2) View all appointments")
		fmt.Fprintln(d.out, "3) Cancel appointment")
		fmt.Fprintln(d.out, "4) Reschedule appointment")
		fmt.Fprintln(d.out, "5) Quit")

		choice, ok := d.prompt("Choose an option")
		if !ok {
			return
		}

		switch choice {
		case "1":
			d.book(ctx)
		case "2":
			d.view(ctx)
		case "3":
			d.cancel(ctx)
		case "4":
			d.reschedule(ctx)
		case "5", "q", "quit":
			return
		default:
			fmt.Fprintln(d.out, "Unknown option.")
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (d *desk) prompt(label string) (string, bool) {
	fmt.Fprintf(d.out, "%s: ", label)
	if !d.in.Scan() {
		return "", false
	}
	return d.in.Text(), true
}

func (d *desk) book(ctx context.Context) {
	var req appointment.BookRequest
	var ok bool

	if req.PatientName, ok = d.prompt("Patient name"); !ok {
		return
	}
	if req.Contact, ok = d.prompt("Contact"); !ok {
		return
	}
	if req.DoctorName, ok = d.prompt("Doctor name"); !ok {
		return
	}
	if req.Date, ok = d.prompt("Appointment date (YYYY-MM-DD)"); !ok {
		return
	}
	if req.Time, ok = d.prompt("Appointment time (HH:MM)"); !ok {
		return
	}

	id, err := d.svc.Book(ctx, req)
	if err != nil {
		d.report(err)
		return
	}
	fmt.Fprintf(d.out, "Appointment booked successfully! ID: %d\n", id)
}

func (d *desk) view(ctx context.Context) {
	appts, err := d.svc.ListAll(ctx)
	if err != nil {
		d.report(err)
		return
	}
	renderTable(d.out, appts)
}

func (d *desk) cancel(ctx context.Context) {
	id, ok := d.prompt("Appointment ID")
	if !ok {
		return
	}

	if err := d.svc.Cancel(ctx, id); err != nil {
		d.report(err)
		return
	}
	fmt.Fprintln(d.out, "Appointment canceled successfully!")
}

func (d *desk) reschedule(ctx context.Context) {
	id, ok := d.prompt("Appointment ID")
	if !ok {
		return
	}
	newDate, ok := d.prompt("New date (YYYY-MM-DD)")
	if !ok {
		return
	}
	newTime, ok := d.prompt("New time (HH:MM)")
	if !ok {
		return
	}

	if err := d.svc.Reschedule(ctx, id, newDate, newTime); err != nil {
		d.report(err)
		return
	}
	fmt.Fprintln(d.out, "Appointment rescheduled successfully!")
}

// report renders a service outcome the way the form would show a message
// box, composing user-facing text from the structured error fields.
func (d *desk) report(err error) {
	var validation *appointment.ValidationError
	var conflict *appointment.ConflictError

	switch {
	case errors.As(err, &validation):
		fmt.Fprintf(d.out, "Input error: %s.\n", validation.Error())
	case errors.As(err, &conflict):
		fmt.Fprintf(d.out, "An appointment is already booked with Dr. %s on %s at %s. Please choose a different time.\n",
			conflict.DoctorName,
			conflict.Date.Format(appointment.DateLayout),
			conflict.Time.Format(appointment.TimeLayout))
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		fmt.Fprintln(d.out, "No appointment found with that ID!")
	case errors.Is(err, appointment.ErrStoreUnavailable):
		fmt.Fprintf(d.out, "Database error: %v\n", err)
	default:
		fmt.Fprintf(d.out, "Error: %v\n", err)
	}
}

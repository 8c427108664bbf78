package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/clinicdesk/clinic-scheduler/internal/appointment"
)

// renderTable prints appointments as a fixed-width table so columns line up
// in a monospace terminal.
func renderTable(w io.Writer, appts []appointment.Appointment) {
	fmt.Fprintf(w, "%-5s %-20s %-15s %-20s %-12s %-8s\n",
		"ID", "Patient", "Contact", "Doctor", "Date", "Time")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for _, a := range appts {
		fmt.Fprintf(w, "%-5d %-20s %-15s %-20s %-12s %-8s\n",
			a.ID,
			a.PatientName,
			a.Contact,
			a.DoctorName,
			a.Date.Format(appointment.DateLayout),
			a.Time.Format(appointment.TimeLayout))
	}
}

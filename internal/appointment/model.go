package appointment

import "time"

// Input layouts for appointment fields. Dates and times arrive as raw text
// and are parsed here, never in the presentation layer.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a single booked slot. Date carries only the calendar day
// and Time only the minute-of-day component.
type Appointment struct {
	ID          int64
	PatientName string
	Contact     string
	DoctorName  string
	Date        time.Time
	Time        time.Time
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

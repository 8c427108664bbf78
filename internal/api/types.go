package api

// Date/time fields stay raw text end to end; the core owns parsing.

type BookAppointmentRequest struct {
	PatientName string `json:"patient_name"`
	Contact     string `json:"contact"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type RescheduleAppointmentRequest struct {
	NewDate string `json:"new_date"`
	NewTime string `json:"new_time"`
}

type BookAppointmentResponse struct {
	ID int64 `json:"id"`
}

type AppointmentResponse struct {
	ID          int64  `json:"id"`
	PatientName string `json:"patient_name"`
	Contact     string `json:"contact"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/clinic-scheduler/internal/appointment"
)

func bookAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		id, err := svc.Book(r.Context(), appointment.BookRequest{
			PatientName: req.PatientName,
			Contact:     req.Contact,
			DoctorName:  req.DoctorName,
			Date:        req.Date,
			Time:        req.Time,
		})
		if err != nil {
			handleServiceError(w, "booking_conflict", err)
			return
		}

		writeJSON(w, http.StatusCreated, BookAppointmentResponse{ID: id})
	}
}

func listAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.ListAll(r.Context())
		if err != nil {
			handleServiceError(w, "", err)
			return
		}

		resp := make([]AppointmentResponse, 0, len(appts))
		for _, a := range appts {
			resp = append(resp, AppointmentResponse{
				ID:          a.ID,
				PatientName: a.PatientName,
				Contact:     a.Contact,
				DoctorName:  a.DoctorName,
				Date:        a.Date.Format(appointment.DateLayout),
				Time:        a.Time.Format(appointment.TimeLayout),
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func cancelAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleServiceError(w, "", err)
			return
		}

		writeJSON(w, http.StatusOK, StatusResponse{Status: "cancelled"})
	}
}

func rescheduleAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RescheduleAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if err := svc.Reschedule(r.Context(), chi.URLParam(r, "id"), req.NewDate, req.NewTime); err != nil {
			handleServiceError(w, "slot_unavailable", err)
			return
		}

		writeJSON(w, http.StatusOK, StatusResponse{Status: "rescheduled"})
	}
}

// handleServiceError maps core outcomes to HTTP codes. conflictCode names
// the operation-specific flavor of a slot conflict.
func handleServiceError(w http.ResponseWriter, conflictCode string, err error) {
	var validation *appointment.ValidationError
	var conflict *appointment.ConflictError

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, "validation_error", validation.Error())
	case errors.As(err, &conflict):
		if conflictCode == "" {
			conflictCode = "slot_conflict"
		}
		writeError(w, http.StatusConflict, conflictCode, conflict.Error())
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", "no appointment found with that ID")
	case errors.Is(err, appointment.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

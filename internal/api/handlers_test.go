package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduler/internal/appointment"
)

// memStore is a map-backed appointment.Store for handler tests.
type memStore struct {
	nextID int64
	appts  map[int64]appointment.Appointment
	order  []int64
}

func newMemStore() *memStore {
	return &memStore{appts: make(map[int64]appointment.Appointment)}
}

func slotKey(doctor string, date, timeOfDay time.Time) string {
	return doctor + "|" + date.Format(appointment.DateLayout) + "|" + timeOfDay.Format(appointment.TimeLayout)
}

func (m *memStore) Insert(_ context.Context, appt appointment.Appointment) (int64, error) {
	for _, a := range m.appts {
		if slotKey(a.DoctorName, a.Date, a.Time) == slotKey(appt.DoctorName, appt.Date, appt.Time) {
			return 0, &appointment.ConflictError{DoctorName: appt.DoctorName, Date: appt.Date, Time: appt.Time}
		}
	}
	m.nextID++
	appt.ID = m.nextID
	m.appts[appt.ID] = appt
	m.order = append(m.order, appt.ID)
	return appt.ID, nil
}

func (m *memStore) SelectAll(_ context.Context) ([]appointment.Appointment, error) {
	out := make([]appointment.Appointment, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.appts[id])
	}
	return out, nil
}

func (m *memStore) SelectBySlot(_ context.Context, doctor string, date, timeOfDay time.Time, excludeID *int64) (*appointment.Appointment, error) {
	for _, id := range m.order {
		a := m.appts[id]
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if slotKey(a.DoctorName, a.Date, a.Time) == slotKey(doctor, date, timeOfDay) {
			return &a, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (m *memStore) SelectDoctorByID(_ context.Context, id int64) (string, error) {
	a, ok := m.appts[id]
	if !ok {
		return "", appointment.ErrAppointmentNotFound
	}
	return a.DoctorName, nil
}

func (m *memStore) DeleteByID(_ context.Context, id int64) (int64, error) {
	if _, ok := m.appts[id]; !ok {
		return 0, nil
	}
	delete(m.appts, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (m *memStore) UpdateDateTimeByID(_ context.Context, id int64, date, timeOfDay time.Time) (int64, error) {
	a, ok := m.appts[id]
	if !ok {
		return 0, nil
	}
	a.Date = date
	a.Time = timeOfDay
	m.appts[id] = a
	return 1, nil
}

func newTestRouter() http.Handler {
	store := newMemStore()
	svc := appointment.NewService(store, zerolog.Nop())
	return NewRouter(RouterConfig{
		Service: svc,
		Logger:  zerolog.Nop(),
		Env:     "test",
		Version: "test",
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bookBody() BookAppointmentRequest {
	return BookAppointmentRequest{
		PatientName: "Alice",
		Contact:     "555-1234",
		DoctorName:  "Smith",
		Date:        "2024-03-01",
		Time:        "09:00",
	}
}

func TestBookEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/appointments", bookBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp BookAppointmentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 1 {
		t.Errorf("expected id 1, got %d", resp.ID)
	}
}

func TestBookEndpoint_BadBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBookEndpoint_Validation(t *testing.T) {
	router := newTestRouter()

	body := bookBody()
	body.PatientName = ""

	rec := doJSON(t, router, http.MethodPost, "/appointments", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "validation_error" {
		t.Errorf("expected validation_error, got %q", resp.Error)
	}
}

func TestBookEndpoint_Conflict(t *testing.T) {
	router := newTestRouter()

	if rec := doJSON(t, router, http.MethodPost, "/appointments", bookBody()); rec.Code != http.StatusCreated {
		t.Fatalf("first booking failed: %d", rec.Code)
	}

	body := bookBody()
	body.PatientName = "Bob"

	rec := doJSON(t, router, http.MethodPost, "/appointments", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "booking_conflict" {
		t.Errorf("expected booking_conflict, got %q", resp.Error)
	}
}

func TestListEndpoint(t *testing.T) {
	router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/appointments", bookBody())

	rec := doJSON(t, router, http.MethodGet, "/appointments", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []AppointmentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(resp))
	}
	if resp[0].Date != "2024-03-01" || resp[0].Time != "09:00" {
		t.Errorf("unexpected date/time: %s %s", resp[0].Date, resp[0].Time)
	}
}

func TestCancelEndpoint(t *testing.T) {
	router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/appointments", bookBody())

	rec := doJSON(t, router, http.MethodDelete, "/appointments/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/appointments/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second cancel, got %d", rec.Code)
	}
}

func TestRescheduleEndpoint(t *testing.T) {
	router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/appointments", bookBody())

	rec := doJSON(t, router, http.MethodPost, "/appointments/1/reschedule",
		RescheduleAppointmentRequest{NewDate: "2024-03-02", NewTime: "10:00"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRescheduleEndpoint_SlotUnavailable(t *testing.T) {
	router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/appointments", bookBody())

	second := bookBody()
	second.PatientName = "Bob"
	second.Time = "10:00"
	doJSON(t, router, http.MethodPost, "/appointments", second)

	rec := doJSON(t, router, http.MethodPost, "/appointments/2/reschedule",
		RescheduleAppointmentRequest{NewDate: "2024-03-01", NewTime: "09:00"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "slot_unavailable" {
		t.Errorf("expected slot_unavailable, got %q", resp.Error)
	}
}

func TestRescheduleEndpoint_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/appointments/42/reschedule",
		RescheduleAppointmentRequest{NewDate: "2024-03-02", NewTime: "10:00"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRescheduleEndpoint_InvalidID(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/appointments/abc/reschedule",
		RescheduleAppointmentRequest{NewDate: "2024-03-02", NewTime: "10:00"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

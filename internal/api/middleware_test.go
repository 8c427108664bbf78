package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_GeneratesNew(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RequestIDMiddleware(next).ServeHTTP(rec, req)

	if seen == "" {
		t.Error("expected a request ID in the context")
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Error("expected the same request ID in the response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "my-custom-id")
	rec := httptest.NewRecorder()

	RequestIDMiddleware(next).ServeHTTP(rec, req)

	if seen != "my-custom-id" {
		t.Errorf("expected my-custom-id, got %q", seen)
	}
	if rec.Header().Get("X-Request-ID") != "my-custom-id" {
		t.Errorf("expected my-custom-id in response header, got %q", rec.Header().Get("X-Request-ID"))
	}
}

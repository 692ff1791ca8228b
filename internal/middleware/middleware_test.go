package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger_PassesThrough(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	w := httptest.NewRecorder()
	Logger(inner).ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected wrapped status to pass through, got %d", w.Code)
	}
	if w.Body.String() != "short and stout" {
		t.Errorf("Expected wrapped body to pass through, got %q", w.Body.String())
	}
}

func TestLogger_DefaultStatus(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	Logger(inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected implicit 200, got %d", w.Code)
	}
}

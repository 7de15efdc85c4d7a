package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/resourcehub/internal/app/features/home"
)

func TestServeRoot_RedirectsToResources(t *testing.T) {
	rec := httptest.NewRecorder()
	home.Routes(home.NewHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/resources" {
		t.Errorf("Location: got %q, want %q", loc, "/resources")
	}
}

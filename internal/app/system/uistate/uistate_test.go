package uistate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/resourcehub/internal/app/system/uistate"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

const testKey = "test-only-key-0123456789ABCDEF0123456789"

func newStore(t *testing.T) *uistate.Store {
	t.Helper()
	s, err := uistate.New(testKey, "", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

// carry copies the cookies set on rec into a new request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/resources", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestLoad_NoCookie(t *testing.T) {
	s := newStore(t)
	got := s.Load(httptest.NewRequest("GET", "/resources", nil))

	want := uistate.State{Page: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveThenLoad(t *testing.T) {
	s := newStore(t)
	rec := httptest.NewRecorder()

	st := uistate.State{CategoryIDs: []string{"4", "12"}, Search: "lens kit", Page: 3}
	if err := s.Save(rec, httptest.NewRequest("POST", "/resources/search", nil), st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := s.Load(carry(rec))
	if diff := cmp.Diff(st, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveThenLoad_IDsWithCommas(t *testing.T) {
	s := newStore(t)
	rec := httptest.NewRecorder()

	st := uistate.State{CategoryIDs: []string{"a,b", "c"}, Page: 1}
	if err := s.Save(rec, httptest.NewRequest("POST", "/resources/categories/a,b/toggle", nil), st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := s.Load(carry(rec))
	if diff := cmp.Diff(st.CategoryIDs, got.CategoryIDs); diff != "" {
		t.Errorf("category ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CookieAttributes(t *testing.T) {
	s := newStore(t)
	rec := httptest.NewRecorder()
	if err := s.Save(rec, httptest.NewRequest("GET", "/", nil), uistate.State{Page: 1}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != uistate.DefaultName {
		t.Errorf("Name: got %q, want %q", c.Name, uistate.DefaultName)
	}
	if !c.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if c.Secure {
		t.Error("expected non-Secure cookie in dev mode")
	}
}

func TestLoad_TamperedCookie(t *testing.T) {
	s := newStore(t)
	r := httptest.NewRequest("GET", "/resources", nil)
	r.AddCookie(&http.Cookie{Name: uistate.DefaultName, Value: "garbage"})

	got := s.Load(r)
	if got.Page != 1 || got.Search != "" || len(got.CategoryIDs) != 0 {
		t.Errorf("expected zero state for tampered cookie, got %+v", got)
	}
}

func TestLoad_OtherKeyRejected(t *testing.T) {
	a := newStore(t)
	b, err := uistate.New("another-key-ABCDEF0123456789abcdef0123", "", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := a.Save(rec, httptest.NewRequest("GET", "/", nil), uistate.State{Search: "x", Page: 2}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := b.Load(carry(rec))
	if got.Search != "" || got.Page != 1 {
		t.Errorf("cookie signed with another key was accepted: %+v", got)
	}
}

func TestNew_EmptyKeyGeneratesOne(t *testing.T) {
	s, err := uistate.New("", "custom", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := s.Save(rec, httptest.NewRequest("GET", "/", nil), uistate.State{Page: 4}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := s.Load(carry(rec)).Page; got != 4 {
		t.Errorf("Page: got %d, want 4", got)
	}
	if name := rec.Result().Cookies()[0].Name; name != "custom" {
		t.Errorf("cookie name: got %q, want custom", name)
	}
}

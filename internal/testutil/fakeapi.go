package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/resourcehub/internal/domain/models"
)

// APIRequest is one GraphQL request received by a FakeAPI.
type APIRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// FakeAPI is an in-process stand-in for the CMS GraphQL endpoint. It answers
// the categories query with Categories and the resources query with a slice
// of Resources honoring offset and limit. Filtering is not simulated;
// totalCount is len(Resources).
type FakeAPI struct {
	URL string

	mu         sync.Mutex
	Categories []models.Category
	Resources  []models.Resource
	Status     int // non-zero forces this HTTP status on every response
	requests   []APIRequest
}

// NewFakeAPI starts a FakeAPI that is shut down when the test ends.
func NewFakeAPI(t *testing.T, cats []models.Category, res []models.Resource) *FakeAPI {
	t.Helper()
	f := &FakeAPI{Categories: cats, Resources: res}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	f.URL = srv.URL
	return f
}

// SetStatus forces every later response to use status code.
func (f *FakeAPI) SetStatus(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Status = code
}

// Requests returns a copy of the requests seen so far.
func (f *FakeAPI) Requests() []APIRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]APIRequest(nil), f.requests...)
}

// ResourceRequests returns only the resources queries seen so far.
func (f *FakeAPI) ResourceRequests() []APIRequest {
	var out []APIRequest
	for _, r := range f.Requests() {
		if strings.Contains(r.Query, "query resources") {
			out = append(out, r)
		}
	}
	return out
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	status := f.Status
	cats := f.Categories
	res := f.Resources
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if strings.Contains(req.Query, "query allCategories") {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"entries": cats},
		})
		return
	}

	offset := intVar(req.Variables, "offset")
	limit := intVar(req.Variables, "limit")
	entries := []map[string]any{}
	for i := offset; i >= 0 && i < len(res) && i < offset+limit; i++ {
		entries = append(entries, map[string]any{
			"id":                 res[i].ID,
			"title":              res[i].Title,
			"commonSummary":      res[i].Summary,
			"commonUrl":          res[i].URL,
			"resourceType":       []models.Category{res[i].ResourceType},
			"resourceCategories": res[i].ResourceCategories,
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{
			"totalResources": len(res),
			"totalCount":     len(res),
			"entries":        entries,
		},
	})
}

func intVar(vars map[string]any, name string) int {
	if v, ok := vars[name].(float64); ok {
		return int(v)
	}
	return 0
}

package graphql_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/resourcehub/internal/app/system/graphql"
	"go.uber.org/zap"
)

func newServer(t *testing.T, h http.HandlerFunc) *graphql.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return graphql.New(srv.URL, srv.Client(), zap.NewNop())
}

func TestDo_PostsQueryAndVariables(t *testing.T) {
	var gotMethod, gotType, gotReqID string
	var gotBody map[string]any

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-ID")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = w.Write([]byte(`{"data":{"n":3}}`))
	})

	var out struct {
		N int `json:"n"`
	}
	err := c.Do(context.Background(), "query q { n }", map[string]any{"limit": 10}, &out)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method: got %q, want POST", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", gotType)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header")
	}
	if gotBody["query"] != "query q { n }" {
		t.Errorf("query: got %v", gotBody["query"])
	}
	vars, ok := gotBody["variables"].(map[string]any)
	if !ok || vars["limit"] != float64(10) {
		t.Errorf("variables: got %v", gotBody["variables"])
	}
	if out.N != 3 {
		t.Errorf("data: got %d, want 3", out.N)
	}
}

func TestDo_OmitsEmptyVariables(t *testing.T) {
	var raw string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	if err := c.Do(context.Background(), "{ x }", nil, nil); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if strings.Contains(raw, "variables") {
		t.Errorf("expected no variables member, got %s", raw)
	}
}

func TestDo_StatusError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := c.Do(context.Background(), "{ x }", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Error 500") {
		t.Errorf("error: got %q, want it to contain %q", err.Error(), "Error 500")
	}
	if !strings.HasPrefix(err.Error(), "Fetch ") {
		t.Errorf("error: got %q, want Fetch prefix", err.Error())
	}

	var fe *graphql.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	var se *graphql.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("expected wrapped *StatusError with code 500, got %v", se)
	}
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := graphql.New(url, nil, nil)
	err := c.Do(context.Background(), "{ x }", nil, nil)

	var fe *graphql.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T (%v)", err, err)
	}
	var se *graphql.StatusError
	if errors.As(err, &se) {
		t.Errorf("transport failure must not look like a status error")
	}
}

func TestDo_InvalidJSON(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	err := c.Do(context.Background(), "{ x }", nil, nil)
	var fe *graphql.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T (%v)", err, err)
	}
}

func TestDo_GraphQLErrorsWithoutData(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"bad field"},{"message":"other"}]}`))
	})

	err := c.Do(context.Background(), "{ x }", nil, nil)
	var re *graphql.ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ResponseError, got %T (%v)", err, err)
	}
	if len(re.Messages) != 2 || re.Messages[0] != "bad field" {
		t.Errorf("messages: got %v", re.Messages)
	}
}

func TestDo_GraphQLErrorsWithPartialData(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"n":1},"errors":[{"message":"partial"}]}`))
	})

	var out struct {
		N int `json:"n"`
	}
	if err := c.Do(context.Background(), "{ n }", nil, &out); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if out.N != 1 {
		t.Errorf("data: got %d, want 1", out.N)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Do(ctx, "{ x }", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

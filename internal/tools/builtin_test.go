package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *DataAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewDataAPI(srv.URL, "test-key", 5*time.Second)
}

func TestBuiltinRegistryTools(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})
	r := NewBuiltinRegistry(api)

	names := make([]string, 0)
	for _, def := range r.Definitions() {
		names = append(names, def.Name)
	}
	want := []string{"searchBills", "searchMembers", "searchNews", "smartSql"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("expected tools %v, got %v", want, names)
	}
}

func TestSearchExecutorRequest(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"bills":[{"number":"HR 1"}]}`))
	})
	r := NewBuiltinRegistry(api)

	out, err := r.Execute(context.Background(), "searchBills", json.RawMessage(`{"query":"climate","limit":5}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if gotPath != "/v1/bills/search" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotQuery != "climate" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if !json.Valid(out) {
		t.Fatalf("expected valid JSON, got %s", out)
	}
}

func TestSearchExecutorRequiresQuery(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	r := NewBuiltinRegistry(api)

	if _, err := r.Execute(context.Background(), "searchBills", json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected missing query to fail")
	}
}

func TestSmartSqlPostsQuestion(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/sql" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body sqlArgs
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Question != "how many bills passed?" {
			t.Fatalf("unexpected question: %q", body.Question)
		}
		w.Write([]byte(`{"rows":[{"count":12}]}`))
	})
	r := NewBuiltinRegistry(api)

	out, err := r.Execute(context.Background(), "smartSql", json.RawMessage(`{"question":"how many bills passed?"}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(string(out), "rows") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestDataAPIErrorStatus(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	r := NewBuiltinRegistry(api)

	if _, err := r.Execute(context.Background(), "searchBills", json.RawMessage(`{"query":"x"}`)); err == nil {
		t.Fatal("expected non-200 status to fail")
	}
}

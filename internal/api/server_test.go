package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/terrasmith/terrasmith/pkg/pipeline"
	"github.com/terrasmith/terrasmith/pkg/store"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil)
	runner.Store = store.NewMemoryStore()
	s := NewServer(runner, nil)
	return s, s.Router()
}

func TestHealth(t *testing.T) {
	_, router := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestBuildEndpoint(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/build",
		strings.NewReader(`{"template": "basic-mountain"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		BuildID   string          `json:"build_id"`
		State     string          `json:"state"`
		NodeCount int             `json:"node_count"`
		Document  json.RawMessage `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.State != "valid" || resp.BuildID == "" {
		t.Errorf("response = %+v", resp)
	}
	if resp.NodeCount != 2 {
		t.Errorf("node count = %d", resp.NodeCount)
	}
	if len(resp.Document) == 0 {
		t.Error("no document in response")
	}

	// The build must be retrievable afterwards.
	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/v1/builds/"+resp.BuildID, nil))
	if get.Code != http.StatusOK {
		t.Errorf("get build status = %d", get.Code)
	}

	doc := httptest.NewRecorder()
	router.ServeHTTP(doc, httptest.NewRequest(http.MethodGet, "/v1/builds/"+resp.BuildID+"/document", nil))
	if doc.Code != http.StatusOK {
		t.Errorf("get document status = %d", doc.Code)
	}
	if !strings.Contains(doc.Header().Get("Content-Disposition"), ".terrain") {
		t.Errorf("disposition = %q", doc.Header().Get("Content-Disposition"))
	}
}

func TestBuildEndpointErrors(t *testing.T) {
	_, router := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"template": `, http.StatusBadRequest},
		{"empty request", `{}`, http.StatusBadRequest},
		{"unknown template", `{"template": "ghost"}`, http.StatusNotFound},
		{"bad mode", `{"template": "basic-mountain", "mode": "loud"}`, http.StatusBadRequest},
		{"unconnected export", `{"nodes": [
			{"id": 1, "type": "Mountain"},
			{"id": 2, "type": "Export"}
		]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/build", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestTemplatesEndpoint(t *testing.T) {
	_, router := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/templates", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Templates []struct {
			Name      string `json:"name"`
			NodeCount int    `json:"node_count"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Templates) == 0 {
		t.Fatal("no templates listed")
	}
	for _, tpl := range resp.Templates {
		if tpl.NodeCount == 0 {
			t.Errorf("template %q has no nodes", tpl.Name)
		}
	}
}

func TestTypesEndpoint(t *testing.T) {
	_, router := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/types", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Types []struct {
			Name  string `json:"name"`
			Class string `json:"class"`
		} `json:"types"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	found := false
	for _, ti := range resp.Types {
		if ti.Name == "Erosion" {
			found = true
			if ti.Class != "limited" {
				t.Errorf("Erosion class = %q", ti.Class)
			}
		}
	}
	if !found {
		t.Error("Erosion missing from type listing")
	}
}

func TestGetBuildNotFound(t *testing.T) {
	_, router := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/builds/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

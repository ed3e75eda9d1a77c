package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/terrasmith/terrasmith/pkg/errors"
	"github.com/terrasmith/terrasmith/pkg/pipeline"
	"github.com/terrasmith/terrasmith/pkg/template"
)

// buildResponse is the JSON shape returned by POST /v1/build.
type buildResponse struct {
	BuildID     string          `json:"build_id"`
	State       string          `json:"state"`
	RequestHash string          `json:"request_hash"`
	Repaired    bool            `json:"repaired"`
	CacheHit    bool            `json:"cache_hit"`
	NodeCount   int             `json:"node_count"`
	EdgeCount   int             `json:"edge_count"`
	Document    json.RawMessage `json:"document,omitempty"`
	Defects     []string        `json:"defects,omitempty"`
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if result == nil {
			writeError(w, err)
			return
		}
		// Failed runs still carry diagnostics worth returning.
		resp := resultToResponse(result)
		for _, d := range result.ConnectionDefects {
			resp.Defects = append(resp.Defects, d.Message)
		}
		for _, d := range result.Defects {
			resp.Defects = append(resp.Defects, d.String())
		}
		writeJSON(w, statusForCode(errors.GetCode(err)), resp)
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(result))
}

func resultToResponse(result *pipeline.Result) buildResponse {
	return buildResponse{
		BuildID:     result.BuildID,
		State:       result.State.String(),
		RequestHash: result.RequestHash,
		Repaired:    result.Repaired,
		CacheHit:    result.CacheHit,
		NodeCount:   result.Stats.NodeCount,
		EdgeCount:   result.Stats.EdgeCount,
		Document:    json.RawMessage(result.Document),
	}
}

func (s *Server) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		writeError(w, errors.New(errors.ErrCodeStoreUnavailable, "no store configured"))
		return
	}

	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	recs, err := st.List(r.Context(), limit)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "list builds"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"builds": recs})
}

func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		writeError(w, errors.New(errors.ErrCodeStoreUnavailable, "no store configured"))
		return
	}

	rec, err := st.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeNotFound, err, "build"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		writeError(w, errors.New(errors.ErrCodeStoreUnavailable, "no store configured"))
		return
	}

	rec, err := st.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeNotFound, err, "build"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rec.ID+`.terrain"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Document)
}

// templateInfo is the JSON shape of one template listing entry.
type templateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NodeCount   int    `json:"node_count"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	out := make([]templateInfo, 0)
	for _, tpl := range template.All() {
		out = append(out, templateInfo{
			Name:        tpl.Name,
			Description: tpl.Description,
			NodeCount:   len(tpl.Nodes),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": out})
}

// typeInfo is the JSON shape of one node type listing entry.
type typeInfo struct {
	Name       string   `json:"name"`
	Class      string   `json:"class"`
	Properties []string `json:"properties"`
	Ports      []string `json:"ports"`
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	reg := s.runner.Registry

	out := make([]typeInfo, 0, reg.Len())
	for _, name := range reg.Names() {
		def, err := reg.Definition(name)
		if err != nil {
			continue
		}
		info := typeInfo{Name: def.Name, Class: def.Class.String()}
		for _, p := range def.Properties {
			info.Properties = append(info.Properties, p.Key)
		}
		for _, p := range def.Ports {
			info.Ports = append(info.Ports, p.Name)
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"types": out})
}
